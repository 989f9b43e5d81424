package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublicationState định nghĩa các trạng thái của một publication.
// Máy trạng thái chỉ đi tiến: pending -> sent | failed | cancelled,
// và failed -> pending (chỉ qua reprogram thủ công).
const (
	PublicationStatePending   = "pending"   // Chờ đến hạn đăng
	PublicationStateSent      = "sent"      // Đã đăng thành công (terminal)
	PublicationStateFailed    = "failed"    // Đăng thất bại, chờ reprogram thủ công
	PublicationStateCancelled = "cancelled" // Đã hủy thủ công (terminal)
)

// Publication đại diện cho một lần đăng dự kiến của một content item
// lên một tài khoản đã kết nối.
type Publication struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của publication

	ContentID primitive.ObjectID `json:"contentId" bson:"contentId" index:"single:1"` // Content item sẽ được đăng
	AccountID primitive.ObjectID `json:"accountId" bson:"accountId" index:"single:1"` // Tài khoản đích
	Platform  string             `json:"platform" bson:"platform" index:"single:1"`   // Platform của tài khoản (denormalized để query)

	ScheduledAt int64  `json:"scheduledAt" bson:"scheduledAt" index:"single:1"` // Thời điểm đăng dự kiến (UnixMilli)
	State       string `json:"state" bson:"state" index:"single:1"`             // Trạng thái: pending, sent, failed, cancelled

	ExternalPostID  string                 `json:"externalPostId,omitempty" bson:"externalPostId,omitempty"`   // ID bài đăng trên platform (sau khi sent)
	LastApiResponse map[string]interface{} `json:"lastApiResponse,omitempty" bson:"lastApiResponse,omitempty"` // Response thô từ platform (để chẩn đoán)

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// CanTransition kiểm tra một chuyển trạng thái có hợp lệ theo máy trạng thái không.
// sent và cancelled là terminal; failed chỉ quay về pending (reprogram).
func CanTransition(from, to string) bool {
	switch from {
	case PublicationStatePending:
		return to == PublicationStateSent || to == PublicationStateFailed || to == PublicationStateCancelled
	case PublicationStateFailed:
		return to == PublicationStatePending
	default:
		return false
	}
}
