// Package common chứa các error code, sentinel error và helper chuyển đổi lỗi
// dùng chung cho toàn bộ ứng dụng.
package common

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK      = 200 // Thành công
	StatusCreated = 201 // Tạo mới thành công

	// Client Error Codes (4xx)
	StatusBadRequest = 400 // Yêu cầu không hợp lệ
	StatusNotFound   = 404 // Không tìm thấy tài nguyên
	StatusConflict   = 409 // Xung đột dữ liệu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
)

// Response Messages
const (
	MsgSuccess         = "Thao tác thành công"
	MsgBadRequest      = "Yêu cầu không hợp lệ"
	MsgNotFound        = "Không tìm thấy tài nguyên"
	MsgConflict        = "Xung đột dữ liệu"
	MsgInternalError   = "Lỗi hệ thống"
	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: PUB_001)
	Category    string // Phân loại lỗi (ví dụ: Publication)
	SubCategory string // Phân loại con (ví dụ: Transition)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidation = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Dữ liệu đầu vào không hợp lệ",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi tương tác với cơ sở dữ liệu",
	}

	ErrCodeDatabaseNotFound = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "NotFound",
		Description: "Không tìm thấy bản ghi",
	}

	ErrCodeDatabaseDuplicate = ErrorCode{
		Code:        "DB_003",
		Category:    "Database",
		SubCategory: "Duplicate",
		Description: "Bản ghi đã tồn tại (trùng unique index)",
	}

	// Publication Errors (PUB_xxx)
	ErrCodePublicationTransition = ErrorCode{
		Code:        "PUB_001",
		Category:    "Publication",
		SubCategory: "Transition",
		Description: "Chuyển trạng thái publication không hợp lệ",
	}

	ErrCodePublicationSchedule = ErrorCode{
		Code:        "PUB_002",
		Category:    "Publication",
		SubCategory: "Schedule",
		Description: "Thời gian lên lịch không hợp lệ",
	}

	// Platform Errors (PLT_xxx)
	ErrCodePlatform = ErrorCode{
		Code:        "PLT_001",
		Category:    "Platform",
		SubCategory: "General",
		Description: "Lỗi khi gọi API của platform",
	}
)

// Sentinel errors dùng chung cho các service
var (
	ErrNotFound      = errors.New("không tìm thấy bản ghi")
	ErrRequiredField = errors.New("thiếu trường bắt buộc")
	ErrInvalidFormat = errors.New("định dạng dữ liệu không hợp lệ")
	ErrDuplicate     = errors.New("bản ghi đã tồn tại")
	ErrNotConnected  = errors.New("không có tài khoản connected cho platform")
)

// Error là custom error của ứng dụng, mang theo ErrorCode và HTTP status
// để handler trả response thống nhất.
type Error struct {
	Code       ErrorCode              // Mã lỗi phân cấp
	Message    string                 // Thông điệp cho client
	StatusCode int                    // HTTP status code
	Details    map[string]interface{} // Chi tiết bổ sung (có thể nil)
}

// Error implement interface error
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code.Code, e.Message)
}

// NewError tạo một custom Error mới
func NewError(code ErrorCode, message string, statusCode int, details map[string]interface{}) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// ConvertMongoError chuyển lỗi của mongo driver về sentinel/custom error của ứng dụng
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return NewError(ErrCodeDatabaseDuplicate, MsgConflict, StatusConflict, map[string]interface{}{
			"cause": err.Error(),
		})
	}
	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, map[string]interface{}{
		"cause": err.Error(),
	})
}
