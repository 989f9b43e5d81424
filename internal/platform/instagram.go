package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	accountmodels "pullnova_marketing/internal/api/account/models"
	"pullnova_marketing/internal/logger"
)

// Trạng thái container trả về từ endpoint poll
const (
	igContainerFinished   = "FINISHED"
	igContainerError      = "ERROR"
	igContainerInProgress = "IN_PROGRESS"
)

// InstagramAdapter đăng bài lên Instagram qua Graph API với lifecycle
// container bất đồng bộ ba pha: tạo container -> poll status -> media_publish.
//
// Luật của giao thức, phải giữ đúng từng chi tiết:
//   - Bắt buộc có ít nhất một ảnh; text-only fail ngay với "requires image".
//   - Chỉ gọi media_publish SAU khi container đạt status_code = FINISHED.
//   - Container trả về ERROR là hard failure: bỏ container, KHÔNG poll lại.
//   - Số lần poll có giới hạn; hết budget là timeout failure, container bị bỏ.
type InstagramAdapter struct {
	baseURL         string
	pollMaxAttempts int
	pollDelay       time.Duration
}

// NewInstagramAdapter tạo adapter Instagram với chính sách poll từ config
func NewInstagramAdapter(baseURL string, pollMaxAttempts int, pollDelay time.Duration) *InstagramAdapter {
	return &InstagramAdapter{
		baseURL:         baseURL,
		pollMaxAttempts: pollMaxAttempts,
		pollDelay:       pollDelay,
	}
}

// Platform trả về tên platform
func (a *InstagramAdapter) Platform() string {
	return accountmodels.PlatformInstagram
}

// Publish đăng payload lên tài khoản Instagram business
func (a *InstagramAdapter) Publish(ctx context.Context, account *accountmodels.ConnectedAccount, payload PublishPayload) PublishResult {
	if account.AccessToken == "" {
		return failure(a.Platform(), "tài khoản thiếu access token", nil)
	}

	// Instagram không có bài text-only
	if len(payload.ImageURLs) == 0 {
		return failure(a.Platform(), "requires image", nil)
	}

	var containerID string
	var result PublishResult
	if len(payload.ImageURLs) == 1 {
		containerID, result = a.createContainer(ctx, account, map[string]interface{}{
			"image_url":    payload.ImageURLs[0],
			"caption":      payload.Text,
			"access_token": account.AccessToken,
		})
	} else {
		containerID, result = a.createCarousel(ctx, account, payload)
	}
	if containerID == "" {
		return result
	}

	// Pha 2: poll đến khi FINISHED / ERROR / hết budget
	if pollResult := a.pollContainer(ctx, account, containerID); !pollResult.Success {
		return pollResult
	}

	// Pha 3: chỉ đến đây khi container đã FINISHED
	return a.publishContainer(ctx, account, containerID)
}

// createContainer tạo một media container, trả về container id hoặc PublishResult thất bại
func (a *InstagramAdapter) createContainer(ctx context.Context, account *accountmodels.ConnectedAccount, containerPayload map[string]interface{}) (string, PublishResult) {
	endpoint := fmt.Sprintf("%s/%s/media", a.baseURL, account.ExternalPageId)
	body, _, err := postJSON(ctx, endpoint, containerPayload, nil)
	if err != nil {
		return "", failure(a.Platform(), fmt.Sprintf("lỗi khi tạo media container: %v", err), nil)
	}
	if errMsg, hasErr := extractPlatformError(body); hasErr {
		return "", failure(a.Platform(), errMsg, body)
	}
	containerID := extractString(body, "id")
	if containerID == "" {
		return "", failure(a.Platform(), "platform không trả về container id", body)
	}
	return containerID, PublishResult{}
}

// createCarousel tạo một container cho mỗi ảnh (is_carousel_item) rồi tạo
// container cha kiểu CAROUSEL tham chiếu các item id và caption.
func (a *InstagramAdapter) createCarousel(ctx context.Context, account *accountmodels.ConnectedAccount, payload PublishPayload) (string, PublishResult) {
	var childIDs []string
	for _, imageURL := range payload.ImageURLs {
		childID, result := a.createContainer(ctx, account, map[string]interface{}{
			"image_url":        imageURL,
			"is_carousel_item": true,
			"access_token":     account.AccessToken,
		})
		if childID == "" {
			return "", result
		}
		childIDs = append(childIDs, childID)
	}

	return a.createContainer(ctx, account, map[string]interface{}{
		"media_type":   "CAROUSEL",
		"children":     strings.Join(childIDs, ","),
		"caption":      payload.Text,
		"access_token": account.AccessToken,
	})
}

// pollContainer poll status của container đến khi FINISHED, ERROR hoặc hết
// số lần thử. Trả về PublishResult với Success = true CHỈ khi FINISHED —
// không có trường hợp nào khác được phép đi tiếp đến media_publish.
func (a *InstagramAdapter) pollContainer(ctx context.Context, account *accountmodels.ConnectedAccount, containerID string) PublishResult {
	log := logger.GetAppLogger()
	endpoint := fmt.Sprintf("%s/%s?fields=status_code,status&access_token=%s",
		a.baseURL, containerID, url.QueryEscape(account.AccessToken))

	for attempt := 1; attempt <= a.pollMaxAttempts; attempt++ {
		body, _, err := getJSON(ctx, endpoint, nil)
		if err != nil {
			return failure(a.Platform(), fmt.Sprintf("lỗi khi poll container: %v", err), nil)
		}
		if errMsg, hasErr := extractPlatformError(body); hasErr {
			return failure(a.Platform(), errMsg, body)
		}

		statusCode := extractString(body, "status_code")
		log.WithFields(map[string]interface{}{
			"containerId": containerID,
			"attempt":     attempt,
			"statusCode":  statusCode,
		}).Debug("📷 [INSTAGRAM] Poll media container")

		switch statusCode {
		case igContainerFinished:
			return PublishResult{Success: true, Platform: a.Platform(), Raw: body}
		case igContainerError:
			// Hard failure: container này không bao giờ được poll lại
			status := extractString(body, "status")
			if status == "" {
				status = "container ở trạng thái ERROR"
			}
			return failure(a.Platform(), status, body)
		}

		// IN_PROGRESS hoặc trạng thái chưa biết: chờ rồi thử lại trong budget
		if attempt < a.pollMaxAttempts {
			select {
			case <-ctx.Done():
				return failure(a.Platform(), fmt.Sprintf("poll bị hủy: %v", ctx.Err()), nil)
			case <-time.After(a.pollDelay):
			}
		}
	}

	// Hết budget: container bị bỏ, không bao giờ re-poll
	return failure(a.Platform(),
		fmt.Sprintf("container không đạt FINISHED sau %d lần poll", a.pollMaxAttempts), nil)
}

// publishContainer gọi media_publish với container id để lấy post id cuối cùng
func (a *InstagramAdapter) publishContainer(ctx context.Context, account *accountmodels.ConnectedAccount, containerID string) PublishResult {
	endpoint := fmt.Sprintf("%s/%s/media_publish", a.baseURL, account.ExternalPageId)
	body, _, err := postJSON(ctx, endpoint, map[string]interface{}{
		"creation_id":  containerID,
		"access_token": account.AccessToken,
	}, nil)
	if err != nil {
		return failure(a.Platform(), fmt.Sprintf("lỗi khi gọi media_publish: %v", err), nil)
	}
	if errMsg, hasErr := extractPlatformError(body); hasErr {
		return failure(a.Platform(), errMsg, body)
	}
	postID := extractString(body, "id")
	if postID == "" {
		return failure(a.Platform(), "platform không trả về post id sau media_publish", body)
	}
	return success(a.Platform(), postID, body)
}

// FetchEngagement lấy số liệu tương tác từ media insights của Instagram.
// Instagram không expose clicks cho media thường nên clicks luôn bằng 0.
func (a *InstagramAdapter) FetchEngagement(ctx context.Context, account *accountmodels.ConnectedAccount, externalPostID string) (EngagementData, error) {
	var data EngagementData

	metrics := url.QueryEscape("likes,comments,shares,saved,impressions,reach")
	endpoint := fmt.Sprintf("%s/%s/insights?metric=%s&access_token=%s",
		a.baseURL, externalPostID, metrics, url.QueryEscape(account.AccessToken))
	body, _, err := getJSON(ctx, endpoint, nil)
	if err != nil {
		return data, err
	}
	if errMsg, hasErr := extractPlatformError(body); hasErr {
		return data, fmt.Errorf("instagram trả về lỗi khi đọc insights: %s", errMsg)
	}

	insights := extractInsightValues(body)
	data.Likes = insights["likes"]
	data.Comments = insights["comments"]
	data.Shares = insights["shares"]
	data.Saves = insights["saved"]
	data.Impressions = insights["impressions"]
	data.Reach = insights["reach"]

	return data, nil
}
