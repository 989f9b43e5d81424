package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlatformAll là khóa platform cho summary gộp tất cả các platform
const PlatformAll = "all"

// MetricSample là một lần quan sát hiệu quả của một publication đã sent.
// Samples là append-only: không update/delete — lịch sử là audit trail.
type MetricSample struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của sample

	ContentID      primitive.ObjectID `json:"contentId" bson:"contentId" index:"single:1"` // Content item của bài đăng
	AccountID      primitive.ObjectID `json:"accountId" bson:"accountId"`                  // Tài khoản đã đăng
	ExternalPostID string             `json:"externalPostId" bson:"externalPostId"`        // ID bài đăng trên platform
	Platform       string             `json:"platform" bson:"platform" index:"single:1"`   // Platform của bài đăng
	CapturedAt     int64              `json:"capturedAt" bson:"capturedAt" index:"single:1"` // Thời điểm thu thập (UnixMilli)

	Likes       int64 `json:"likes" bson:"likes"`             // Số lượt thích
	Comments    int64 `json:"comments" bson:"comments"`       // Số bình luận
	Shares      int64 `json:"shares" bson:"shares"`           // Số lượt chia sẻ
	Saves       int64 `json:"saves" bson:"saves"`             // Số lượt lưu
	Impressions int64 `json:"impressions" bson:"impressions"` // Số lần hiển thị
	Reach       int64 `json:"reach" bson:"reach"`             // Số người tiếp cận
	Clicks      int64 `json:"clicks" bson:"clicks"`           // Số lượt click

	EngagementRate float64 `json:"engagementRate" bson:"engagementRate"` // (likes+comments+shares+saves)/reach*100, 0 khi reach = 0

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// DailySummary là aggregate theo (ngày, platform) trên các MetricSample của ngày đó.
// Upsert idempotent theo khóa (date, platform): tính lại cho cùng ngày sẽ ghi đè,
// không cộng dồn.
type DailySummary struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của summary

	Date     string `json:"date" bson:"date" index:"single:1"`         // Khóa ngày YYYY-MM-DD (UTC)
	Platform string `json:"platform" bson:"platform" index:"single:1"` // Platform hoặc "all"

	SampleCount    int64   `json:"sampleCount" bson:"sampleCount"`       // Số sample trong ngày
	Likes          int64   `json:"likes" bson:"likes"`                   // Tổng lượt thích
	Comments       int64   `json:"comments" bson:"comments"`             // Tổng bình luận
	Shares         int64   `json:"shares" bson:"shares"`                 // Tổng chia sẻ
	Saves          int64   `json:"saves" bson:"saves"`                   // Tổng lượt lưu
	Impressions    int64   `json:"impressions" bson:"impressions"`       // Tổng hiển thị
	Reach          int64   `json:"reach" bson:"reach"`                   // Tổng tiếp cận
	Clicks         int64   `json:"clicks" bson:"clicks"`                 // Tổng click
	EngagementRate float64 `json:"engagementRate" bson:"engagementRate"` // Tỉ lệ tương tác trên tổng của ngày

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
