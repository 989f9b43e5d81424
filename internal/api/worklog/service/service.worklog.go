// Package worklogsvc ghi lại kết quả các cycle của worker
package worklogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "pullnova_marketing/internal/api/base/service"
	worklogmodels "pullnova_marketing/internal/api/worklog/models"
	"pullnova_marketing/internal/common"
	"pullnova_marketing/internal/global"
)

// WorkLogService là service ghi worker logs
type WorkLogService struct {
	*basesvc.BaseServiceMongoImpl[worklogmodels.WorkLog]
}

// NewWorkLogService tạo mới WorkLogService
func NewWorkLogService() (*WorkLogService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WorkerLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get worker_logs collection: %v", common.ErrNotFound)
	}
	return &WorkLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[worklogmodels.WorkLog](coll),
	}, nil
}

// RecordCycle ghi lại kết quả một cycle. Outcome được suy ra từ số item lỗi.
func (s *WorkLogService) RecordCycle(ctx context.Context, workerName, message string, processed, failed, durationMs int64) (worklogmodels.WorkLog, error) {
	outcome := worklogmodels.WorkLogOutcomeSuccess
	if failed > 0 {
		outcome = worklogmodels.WorkLogOutcomePartial
	}
	return s.InsertOne(ctx, worklogmodels.WorkLog{
		WorkerName:     workerName,
		Outcome:        outcome,
		Message:        message,
		ItemsProcessed: processed,
		ItemsFailed:    failed,
		DurationMs:     durationMs,
	})
}

// RecordError ghi lại một cycle bị lỗi trước khi xử lý xong
func (s *WorkLogService) RecordError(ctx context.Context, workerName, message string, durationMs int64) (worklogmodels.WorkLog, error) {
	return s.InsertOne(ctx, worklogmodels.WorkLog{
		WorkerName: workerName,
		Outcome:    worklogmodels.WorkLogOutcomeError,
		Message:    message,
		DurationMs: durationMs,
	})
}

// ListByWorker trả về logs của một worker, mới nhất trước
func (s *WorkLogService) ListByWorker(ctx context.Context, workerName string, limit int64) ([]worklogmodels.WorkLog, error) {
	if limit <= 0 {
		limit = 50
	}
	filter := bson.M{}
	if workerName != "" {
		filter["workerName"] = workerName
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return s.Find(ctx, filter, opts)
}
