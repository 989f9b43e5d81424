package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Platform định nghĩa tập đóng các platform được hỗ trợ
const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformLinkedIn  = "linkedin"
)

// AccountState định nghĩa trạng thái của một tài khoản đã kết nối
const (
	AccountStateConnected    = "connected"    // Token còn hiệu lực, được phép publish
	AccountStateDisconnected = "disconnected" // Người dùng đã ngắt kết nối
	AccountStateExpired      = "expired"      // Token đã hết hạn, cần re-authorize
)

// ConnectedAccount đại diện cho một identity đã authorize trên một platform.
// Được tạo bởi OAuth callback flow (hệ thống bên ngoài); pipeline đọc
// accessToken/externalPageId/state và ghi state khi phát hiện token hết hạn.
type ConnectedAccount struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của tài khoản

	Platform       string `json:"platform" bson:"platform" index:"single:1"`              // Platform: facebook, instagram, linkedin
	ExternalPageId string `json:"externalPageId" bson:"externalPageId" index:"single:1"`  // Page ID / IG user ID / person ID trên platform
	AccessToken    string `json:"-" bson:"accessToken"`                                   // OAuth access token (không trả về qua API)
	RefreshToken   string `json:"-" bson:"refreshToken,omitempty"`                        // OAuth refresh token (tùy chọn)
	TokenExpiresAt *int64 `json:"tokenExpiresAt,omitempty" bson:"tokenExpiresAt,omitempty"` // Thời điểm token hết hạn (UnixMilli, null = không hết hạn)
	State          string `json:"state" bson:"state" index:"single:1"`                    // Trạng thái: connected, disconnected, expired

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// IsTokenExpired kiểm tra token của tài khoản đã quá hạn tại thời điểm now hay chưa.
// TokenExpiresAt null nghĩa là token không có hạn.
func (a *ConnectedAccount) IsTokenExpired(now time.Time) bool {
	if a.TokenExpiresAt == nil {
		return false
	}
	return *a.TokenExpiresAt <= now.UnixMilli()
}

// IsPublishable kiểm tra tài khoản có được phép thực hiện call qua adapter không:
// state = connected và token chưa hết hạn.
func (a *ConnectedAccount) IsPublishable(now time.Time) bool {
	return a.State == AccountStateConnected && !a.IsTokenExpired(now)
}
