package platform

import (
	"context"
	"fmt"

	accountmodels "pullnova_marketing/internal/api/account/models"
)

// LinkedInAdapter đăng UGC post lên LinkedIn.
// Chỉ hỗ trợ bài text (shareMediaCategory = NONE) — LinkedIn image upload
// là một flow đăng ký asset nhiều bước nằm ngoài phạm vi hiện tại.
//
// Chi tiết dễ bỏ sót của giao thức: post id nằm trong response HEADER
// X-RestLi-Id, không nằm trong JSON body.
type LinkedInAdapter struct {
	baseURL string
}

// NewLinkedInAdapter tạo adapter LinkedIn với base URL của API
func NewLinkedInAdapter(baseURL string) *LinkedInAdapter {
	return &LinkedInAdapter{baseURL: baseURL}
}

// Platform trả về tên platform
func (a *LinkedInAdapter) Platform() string {
	return accountmodels.PlatformLinkedIn
}

// Publish tạo một UGC post với author urn:li:person:<id>
func (a *LinkedInAdapter) Publish(ctx context.Context, account *accountmodels.ConnectedAccount, payload PublishPayload) PublishResult {
	if account.AccessToken == "" {
		return failure(a.Platform(), "tài khoản thiếu access token", nil)
	}

	endpoint := fmt.Sprintf("%s/v2/ugcPosts", a.baseURL)
	ugcPayload := map[string]interface{}{
		"author":         fmt.Sprintf("urn:li:person:%s", account.ExternalPageId),
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary": map[string]interface{}{
					"text": payload.Text,
				},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]interface{}{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	headers := map[string]string{
		"Authorization":             fmt.Sprintf("Bearer %s", account.AccessToken),
		"X-Restli-Protocol-Version": "2.0.0",
	}

	body, resp, err := postJSONWithResponse(ctx, endpoint, ugcPayload, headers)
	if err != nil {
		return failure(a.Platform(), fmt.Sprintf("lỗi khi gọi ugcPosts endpoint: %v", err), nil)
	}
	if errMsg, hasErr := extractPlatformError(body); hasErr {
		return failure(a.Platform(), errMsg, body)
	}
	if resp.StatusCode >= 400 {
		msg := extractString(body, "message")
		if msg == "" {
			msg = fmt.Sprintf("linkedin trả về status %d", resp.StatusCode)
		}
		return failure(a.Platform(), msg, body)
	}

	// Post id nằm trong header, không nằm trong body
	postID := resp.Header.Get("X-RestLi-Id")
	if postID == "" {
		return failure(a.Platform(), "linkedin không trả về X-RestLi-Id header", body)
	}
	return success(a.Platform(), postID, body)
}

// FetchEngagement đọc socialActions của một post: likes và comments.
// LinkedIn không expose shares/saves/impressions/reach/clicks qua endpoint
// này nên các metric đó bằng 0.
func (a *LinkedInAdapter) FetchEngagement(ctx context.Context, account *accountmodels.ConnectedAccount, externalPostID string) (EngagementData, error) {
	var data EngagementData

	endpoint := fmt.Sprintf("%s/v2/socialActions/%s", a.baseURL, externalPostID)
	headers := map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", account.AccessToken),
	}
	body, statusCode, err := getJSON(ctx, endpoint, headers)
	if err != nil {
		return data, err
	}
	if statusCode >= 400 {
		msg := extractString(body, "message")
		if msg == "" {
			msg = fmt.Sprintf("linkedin trả về status %d", statusCode)
		}
		return data, fmt.Errorf("linkedin trả về lỗi khi đọc socialActions: %s", msg)
	}

	if likes, ok := body["likesSummary"].(map[string]interface{}); ok {
		data.Likes = extractNumber(likes["totalLikes"])
	}
	if comments, ok := body["commentsSummary"].(map[string]interface{}); ok {
		data.Comments = extractNumber(comments["aggregatedTotalComments"])
	}

	return data, nil
}
