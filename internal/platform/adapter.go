// Package platform chứa các adapter nói chuyện với wire protocol thật của
// từng platform (Facebook, Instagram, LinkedIn) đằng sau một contract thống nhất.
// Caller không bao giờ phải branch theo cấu trúc lỗi riêng của từng platform:
// mọi lỗi publish đều được normalize về PublishResult{Success: false, Error, Platform}.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pullnova_marketing/config"
	accountmodels "pullnova_marketing/internal/api/account/models"
	"pullnova_marketing/internal/common"
)

// PublishPayload là payload thống nhất cho mọi adapter
type PublishPayload struct {
	Text      string   // Text của bài đăng (caption/message/commentary)
	ImageURLs []string // Danh sách URL ảnh (có thể rỗng)
}

// PublishResult là kết quả publish đã normalize.
// Success = true yêu cầu ExternalPostID khác rỗng.
type PublishResult struct {
	Success        bool                   // Publish thành công hay không
	ExternalPostID string                 // ID bài đăng trên platform (khi thành công)
	Error          string                 // Mô tả lỗi đã normalize (khi thất bại)
	Platform       string                 // Platform của adapter
	Raw            map[string]interface{} // Response thô cuối cùng từ platform (để chẩn đoán)
}

// EngagementData là số liệu tương tác đã normalize từ một bài đăng.
// Platform không cung cấp metric nào thì metric đó bằng 0.
type EngagementData struct {
	Likes       int64
	Comments    int64
	Shares      int64
	Saves       int64
	Impressions int64
	Reach       int64
	Clicks      int64
}

// Adapter là contract thống nhất của một platform
type Adapter interface {
	// Platform trả về tên platform của adapter
	Platform() string

	// Publish đăng một payload bằng tài khoản đã kết nối.
	// Không trả về error Go: mọi thất bại đều nằm trong PublishResult.
	Publish(ctx context.Context, account *accountmodels.ConnectedAccount, payload PublishPayload) PublishResult

	// FetchEngagement lấy số liệu tương tác của một bài đã đăng
	FetchEngagement(ctx context.Context, account *accountmodels.ConnectedAccount, externalPostID string) (EngagementData, error)
}

// Set chứa các adapter theo tên platform, tập đóng dispatch
type Set struct {
	adapters map[string]Adapter
}

// NewSet tạo bộ adapter đầy đủ từ configuration
func NewSet(cfg *config.Configuration) *Set {
	return &Set{
		adapters: map[string]Adapter{
			accountmodels.PlatformFacebook:  NewFacebookAdapter(cfg.FacebookGraphBaseURL),
			accountmodels.PlatformInstagram: NewInstagramAdapter(cfg.FacebookGraphBaseURL, cfg.IgPollMaxAttempts, time.Duration(cfg.IgPollDelaySeconds)*time.Second),
			accountmodels.PlatformLinkedIn:  NewLinkedInAdapter(cfg.LinkedInAPIBaseURL),
		},
	}
}

// ForPlatform trả về adapter cho một platform
func (s *Set) ForPlatform(name string) (Adapter, error) {
	adapter, ok := s.adapters[name]
	if !ok {
		return nil, common.NewError(common.ErrCodePlatform,
			fmt.Sprintf("không có adapter cho platform: %s", name), common.StatusBadRequest, nil)
	}
	return adapter, nil
}

// failure tạo một PublishResult thất bại đã normalize
func failure(platform, errMsg string, raw map[string]interface{}) PublishResult {
	return PublishResult{
		Success:  false,
		Error:    errMsg,
		Platform: platform,
		Raw:      raw,
	}
}

// success tạo một PublishResult thành công
func success(platform, externalPostID string, raw map[string]interface{}) PublishResult {
	return PublishResult{
		Success:        true,
		ExternalPostID: externalPostID,
		Platform:       platform,
		Raw:            raw,
	}
}

// postJSON gửi POST với body JSON, trả về body đã decode và status code.
// Response không phải JSON hợp lệ vẫn trả về map chứa body thô.
func postJSON(ctx context.Context, url string, payload map[string]interface{}, headers map[string]string) (map[string]interface{}, int, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// postJSONWithResponse như postJSON nhưng trả thêm *http.Response đã đọc xong body
// (dùng khi cần đọc response header, ví dụ LinkedIn trả post id qua header).
func postJSONWithResponse(ctx context.Context, url string, payload map[string]interface{}, headers map[string]string) (map[string]interface{}, *http.Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return nil, resp, err
	}
	return body, resp, nil
}

// getJSON gửi GET, trả về body đã decode và status code
func getJSON(ctx context.Context, url string, headers map[string]string) (map[string]interface{}, int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, 0, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// decodeBody đọc và decode body JSON; body không phải JSON được giữ lại dạng thô
func decodeBody(resp *http.Response) (map[string]interface{}, error) {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(bodyBytes) == 0 {
		return map[string]interface{}{}, nil
	}

	var body map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return map[string]interface{}{"raw_body": string(bodyBytes)}, nil
	}
	return body, nil
}

// extractString đọc một field string từ body đã decode
func extractString(body map[string]interface{}, key string) string {
	if value, ok := body[key].(string); ok {
		return value
	}
	return ""
}

// extractPlatformError trả về mô tả lỗi nếu body chứa field "error".
// Platform trả về field error là hard failure cho publication đó.
func extractPlatformError(body map[string]interface{}) (string, bool) {
	errValue, ok := body["error"]
	if !ok || errValue == nil {
		return "", false
	}
	switch v := errValue.(type) {
	case string:
		return v, true
	case map[string]interface{}:
		if msg, ok := v["message"].(string); ok && msg != "" {
			return msg, true
		}
		return fmt.Sprintf("%v", v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// extractNumber đọc một field số từ body đã decode (JSON numbers decode thành float64)
func extractNumber(value interface{}) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
