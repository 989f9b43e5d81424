package global

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Validate là validator dùng chung cho các DTO
var Validate *validator.Validate

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// platform: giá trị phải là một trong ba platform được hỗ trợ
	_ = Validate.RegisterValidation("platform", validatePlatform)

	// future_ms: timestamp UnixMilli phải nằm trong tương lai
	_ = Validate.RegisterValidation("future_ms", validateFutureMillis)
}

// validatePlatform kiểm tra platform thuộc tập đóng facebook|instagram|linkedin
func validatePlatform(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "facebook", "instagram", "linkedin":
		return true
	default:
		return false
	}
}

// validateFutureMillis kiểm tra giá trị int64 (UnixMilli) ở tương lai
func validateFutureMillis(fl validator.FieldLevel) bool {
	ms := fl.Field().Int()
	if ms == 0 {
		return false
	}
	return ms > time.Now().UnixMilli()
}
