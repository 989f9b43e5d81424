package platform

import (
	"context"
	"fmt"
	"net/url"

	accountmodels "pullnova_marketing/internal/api/account/models"
	"pullnova_marketing/internal/logger"
)

// FacebookAdapter đăng bài lên Facebook Page qua Graph API.
// Ba kiểu bài đăng:
//   - một ảnh: POST /{pageId}/photos {url, caption}
//   - nhiều ảnh: upload từng ảnh unpublished lấy media id, rồi tạo feed post
//     với attached_media tham chiếu tất cả các id (album)
//   - chỉ text: POST /{pageId}/feed {message}
//
// Response có field "error" là hard failure cho publication đó.
type FacebookAdapter struct {
	baseURL string
}

// NewFacebookAdapter tạo adapter Facebook với base URL của Graph API
func NewFacebookAdapter(baseURL string) *FacebookAdapter {
	return &FacebookAdapter{baseURL: baseURL}
}

// Platform trả về tên platform
func (a *FacebookAdapter) Platform() string {
	return accountmodels.PlatformFacebook
}

// Publish đăng payload lên Facebook Page của tài khoản
func (a *FacebookAdapter) Publish(ctx context.Context, account *accountmodels.ConnectedAccount, payload PublishPayload) PublishResult {
	log := logger.GetAppLogger()

	if account.AccessToken == "" {
		return failure(a.Platform(), "tài khoản thiếu access token", nil)
	}

	switch {
	case len(payload.ImageURLs) == 1:
		return a.publishSinglePhoto(ctx, account, payload)
	case len(payload.ImageURLs) > 1:
		return a.publishAlbum(ctx, account, payload)
	default:
		log.WithFields(map[string]interface{}{
			"pageId": account.ExternalPageId,
		}).Debug("📘 [FACEBOOK] Đăng bài text-only lên feed")
		return a.publishFeed(ctx, account, map[string]interface{}{
			"message":      payload.Text,
			"access_token": account.AccessToken,
		})
	}
}

// publishSinglePhoto đăng một ảnh duy nhất với caption
func (a *FacebookAdapter) publishSinglePhoto(ctx context.Context, account *accountmodels.ConnectedAccount, payload PublishPayload) PublishResult {
	endpoint := fmt.Sprintf("%s/%s/photos", a.baseURL, account.ExternalPageId)
	body, _, err := postJSON(ctx, endpoint, map[string]interface{}{
		"url":          payload.ImageURLs[0],
		"caption":      payload.Text,
		"access_token": account.AccessToken,
	}, nil)
	if err != nil {
		return failure(a.Platform(), fmt.Sprintf("lỗi khi gọi photos endpoint: %v", err), nil)
	}
	return a.resultFromBody(body)
}

// publishAlbum upload từng ảnh unpublished rồi tạo feed post với attached_media
func (a *FacebookAdapter) publishAlbum(ctx context.Context, account *accountmodels.ConnectedAccount, payload PublishPayload) PublishResult {
	endpoint := fmt.Sprintf("%s/%s/photos", a.baseURL, account.ExternalPageId)

	var attachedMedia []map[string]interface{}
	for _, imageURL := range payload.ImageURLs {
		body, _, err := postJSON(ctx, endpoint, map[string]interface{}{
			"url":          imageURL,
			"published":    false,
			"access_token": account.AccessToken,
		}, nil)
		if err != nil {
			return failure(a.Platform(), fmt.Sprintf("lỗi khi upload ảnh unpublished: %v", err), nil)
		}
		if errMsg, hasErr := extractPlatformError(body); hasErr {
			return failure(a.Platform(), errMsg, body)
		}
		mediaID := extractString(body, "id")
		if mediaID == "" {
			return failure(a.Platform(), "platform không trả về media id cho ảnh unpublished", body)
		}
		attachedMedia = append(attachedMedia, map[string]interface{}{"media_fbid": mediaID})
	}

	return a.publishFeed(ctx, account, map[string]interface{}{
		"message":        payload.Text,
		"attached_media": attachedMedia,
		"access_token":   account.AccessToken,
	})
}

// publishFeed tạo một bài đăng trên feed của page
func (a *FacebookAdapter) publishFeed(ctx context.Context, account *accountmodels.ConnectedAccount, feedPayload map[string]interface{}) PublishResult {
	endpoint := fmt.Sprintf("%s/%s/feed", a.baseURL, account.ExternalPageId)
	body, _, err := postJSON(ctx, endpoint, feedPayload, nil)
	if err != nil {
		return failure(a.Platform(), fmt.Sprintf("lỗi khi gọi feed endpoint: %v", err), nil)
	}
	return a.resultFromBody(body)
}

// resultFromBody normalize response của Graph API: field "error" là hard failure,
// thành công yêu cầu platform trả về post id.
func (a *FacebookAdapter) resultFromBody(body map[string]interface{}) PublishResult {
	if errMsg, hasErr := extractPlatformError(body); hasErr {
		return failure(a.Platform(), errMsg, body)
	}
	postID := extractString(body, "id")
	if postID == "" {
		return failure(a.Platform(), "platform không trả về post id", body)
	}
	return success(a.Platform(), postID, body)
}

// FetchEngagement lấy số liệu tương tác của một bài đăng Facebook:
// reactions/comments/shares từ fields của post, impressions/reach/clicks
// từ insights. Facebook không có khái niệm "saves" nên saves luôn bằng 0.
func (a *FacebookAdapter) FetchEngagement(ctx context.Context, account *accountmodels.ConnectedAccount, externalPostID string) (EngagementData, error) {
	var data EngagementData

	fields := url.QueryEscape("reactions.summary(total_count),comments.summary(total_count),shares")
	endpoint := fmt.Sprintf("%s/%s?fields=%s&access_token=%s", a.baseURL, externalPostID, fields, url.QueryEscape(account.AccessToken))
	body, _, err := getJSON(ctx, endpoint, nil)
	if err != nil {
		return data, err
	}
	if errMsg, hasErr := extractPlatformError(body); hasErr {
		return data, fmt.Errorf("facebook trả về lỗi khi đọc post: %s", errMsg)
	}

	data.Likes = extractSummaryCount(body, "reactions")
	data.Comments = extractSummaryCount(body, "comments")
	if shares, ok := body["shares"].(map[string]interface{}); ok {
		data.Shares = extractNumber(shares["count"])
	}

	metrics := url.QueryEscape("post_impressions,post_impressions_unique,post_clicks")
	insightsEndpoint := fmt.Sprintf("%s/%s/insights?metric=%s&access_token=%s", a.baseURL, externalPostID, metrics, url.QueryEscape(account.AccessToken))
	insightsBody, _, err := getJSON(ctx, insightsEndpoint, nil)
	if err != nil {
		return data, err
	}
	if errMsg, hasErr := extractPlatformError(insightsBody); hasErr {
		return data, fmt.Errorf("facebook trả về lỗi khi đọc insights: %s", errMsg)
	}

	insights := extractInsightValues(insightsBody)
	data.Impressions = insights["post_impressions"]
	data.Reach = insights["post_impressions_unique"]
	data.Clicks = insights["post_clicks"]

	return data, nil
}

// extractSummaryCount đọc field.summary.total_count từ response của Graph API
func extractSummaryCount(body map[string]interface{}, field string) int64 {
	fieldValue, ok := body[field].(map[string]interface{})
	if !ok {
		return 0
	}
	summary, ok := fieldValue["summary"].(map[string]interface{})
	if !ok {
		return 0
	}
	return extractNumber(summary["total_count"])
}

// extractInsightValues đọc data[].{name, values[0].value} từ response insights
func extractInsightValues(body map[string]interface{}) map[string]int64 {
	result := make(map[string]int64)
	dataList, ok := body["data"].([]interface{})
	if !ok {
		return result
	}
	for _, item := range dataList {
		metric, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := metric["name"].(string)
		values, ok := metric["values"].([]interface{})
		if !ok || len(values) == 0 {
			continue
		}
		first, ok := values[0].(map[string]interface{})
		if !ok {
			continue
		}
		result[name] = extractNumber(first["value"])
	}
	return result
}
