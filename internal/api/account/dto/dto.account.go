package dto

// AccountUpdateTokensInput là payload cập nhật credentials cho một tài khoản
// (từ OAuth refresh flow). Cập nhật thành công sẽ đưa state về connected.
type AccountUpdateTokensInput struct {
	AccountID      string `json:"accountId" validate:"required"`       // ID tài khoản cần cập nhật
	AccessToken    string `json:"accessToken" validate:"required"`     // Access token mới
	RefreshToken   string `json:"refreshToken,omitempty"`              // Refresh token mới (tùy chọn)
	TokenExpiresAt *int64 `json:"tokenExpiresAt,omitempty"`            // Hạn token mới (UnixMilli, null = không hết hạn)
}

// AccountConnectInput là payload đăng ký một tài khoản đã authorize
// (ghi từ OAuth callback flow bên ngoài).
type AccountConnectInput struct {
	Platform       string `json:"platform" validate:"required,platform"` // Platform của tài khoản
	ExternalPageId string `json:"externalPageId" validate:"required"`    // Page ID / IG user ID / person ID
	AccessToken    string `json:"accessToken" validate:"required"`       // Access token
	RefreshToken   string `json:"refreshToken,omitempty"`                // Refresh token (tùy chọn)
	TokenExpiresAt *int64 `json:"tokenExpiresAt,omitempty"`              // Hạn token (UnixMilli)
}
