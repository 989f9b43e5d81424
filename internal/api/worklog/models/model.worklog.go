package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outcome của một cycle worker
const (
	WorkLogOutcomeSuccess = "success" // Cycle hoàn tất, không item nào lỗi
	WorkLogOutcomePartial = "partial" // Cycle hoàn tất nhưng có item lỗi
	WorkLogOutcomeError   = "error"   // Cycle bị lỗi trước khi xử lý xong
)

// WorkLog ghi lại kết quả một cycle của worker, dùng để giám sát pipeline
type WorkLog struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của log

	WorkerName     string `json:"workerName" bson:"workerName"`         // Tên worker (publish_scheduler, metrics_collector)
	Outcome        string `json:"outcome" bson:"outcome"`               // success, partial, error
	Message        string `json:"message" bson:"message"`               // Mô tả ngắn kết quả cycle
	ItemsProcessed int64  `json:"itemsProcessed" bson:"itemsProcessed"` // Số item đã xử lý trong cycle
	ItemsFailed    int64  `json:"itemsFailed" bson:"itemsFailed"`       // Số item lỗi trong cycle
	DurationMs     int64  `json:"durationMs" bson:"durationMs"`         // Thời gian chạy cycle (ms)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
