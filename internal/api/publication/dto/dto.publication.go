package dto

// PublicationScheduleInput là payload lên lịch đăng một content item
// lên một hoặc nhiều tài khoản (một publication cho mỗi tài khoản).
type PublicationScheduleInput struct {
	ContentID   string   `json:"contentId" validate:"required"`              // Content item cần đăng
	AccountIDs  []string `json:"accountIds" validate:"required,min=1"`       // Danh sách tài khoản đích
	ScheduledAt int64    `json:"scheduledAt" validate:"required,future_ms"`  // Thời điểm đăng (UnixMilli, phải ở tương lai)
}

// PublicationReprogramInput là payload reprogram một publication failed
// với thời điểm mới ở tương lai.
type PublicationReprogramInput struct {
	ScheduledAt int64 `json:"scheduledAt" validate:"required,future_ms"` // Thời điểm đăng mới (UnixMilli)
}

// PublicationListInput là query phân trang danh sách publication theo trạng thái
type PublicationListInput struct {
	State string `query:"state" validate:"omitempty,oneof=pending sent failed cancelled"` // Lọc theo trạng thái
	Page  int64  `query:"page"`                                                           // Trang (mặc định 1)
	Limit int64  `query:"limit"`                                                          // Số bản ghi mỗi trang (mặc định 20)
}
