package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	accountsvc "pullnova_marketing/internal/api/account/service"
	metricsmodels "pullnova_marketing/internal/api/metrics/models"
	metricssvc "pullnova_marketing/internal/api/metrics/service"
	publicationmodels "pullnova_marketing/internal/api/publication/models"
	publicationsvc "pullnova_marketing/internal/api/publication/service"
	worklogsvc "pullnova_marketing/internal/api/worklog/service"
	"pullnova_marketing/internal/logger"
	"pullnova_marketing/internal/platform"
)

// WorkerNameMetricsCollector là tên worker ghi trong worker logs
const WorkerNameMetricsCollector = "metrics_collector"

// MetricsCollector thu thập số liệu tương tác của các publication đã sent.
// Chu kỳ dài hơn scheduler (giờ thay vì phút). Mỗi cycle:
//  1. Quét token hết hạn (MarkExpiredSweep) để không gọi API với token chết.
//  2. Với mỗi publication sent có externalPostId và tài khoản còn connected,
//     gọi FetchEngagement và append một MetricSample.
//  3. Tính lại DailySummary của hôm nay và hôm qua (idempotent upsert).
type MetricsCollector struct {
	publicationService *publicationsvc.PublicationService
	accountService     *accountsvc.AccountService
	metricsService     *metricssvc.MetricsService
	worklogService     *worklogsvc.WorkLogService
	adapters           *platform.Set
	interval           time.Duration // Khoảng thời gian giữa các lần chạy
	running            atomic.Bool   // Cờ in-flight chống cycle chạy chồng
}

// NewMetricsCollector tạo mới MetricsCollector.
// Tham số:
//   - adapters: bộ adapter của các platform
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 6 giờ)
func NewMetricsCollector(adapters *platform.Set, interval time.Duration) (*MetricsCollector, error) {
	publicationService, err := publicationsvc.NewPublicationService()
	if err != nil {
		return nil, err
	}
	accountService, err := accountsvc.NewAccountService()
	if err != nil {
		return nil, err
	}
	metricsService, err := metricssvc.NewMetricsService()
	if err != nil {
		return nil, err
	}
	worklogService, err := worklogsvc.NewWorkLogService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = 6 * time.Hour
	}
	return &MetricsCollector{
		publicationService: publicationService,
		accountService:     accountService,
		metricsService:     metricsService,
		worklogService:     worklogService,
		adapters:           adapters,
		interval:           interval,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval thu thập metrics
func (w *MetricsCollector) Start(ctx context.Context) {
	log := logger.GetWorkerLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("📊 [METRICS] Starting Metrics Collector...")

	for {
		select {
		case <-ctx.Done():
			log.Info("📊 [METRICS] Metrics Collector stopped")
			return
		case <-ticker.C:
			w.RunCycle(ctx)
		}
	}
}

// RunCycle chạy một cycle thu thập. Được gọi bởi ticker và bởi endpoint
// "run now" thủ công. Re-entry trong cùng worker bị chặn bởi cờ in-flight.
func (w *MetricsCollector) RunCycle(ctx context.Context) {
	log := logger.GetWorkerLogger()

	if !w.running.CompareAndSwap(false, true) {
		log.Warn("📊 [METRICS] Cycle trước vẫn đang chạy, bỏ qua cycle này")
		return
	}
	defer w.running.Store(false)

	startedAt := time.Now()
	var processed, failed int64

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("📊 [METRICS] Panic trong cycle, sẽ tiếp tục ở lần chạy tiếp theo")
			w.recordCycle(ctx, fmt.Sprintf("panic: %v", r), processed, failed, startedAt, true)
		}
	}()

	// Quét token hết hạn trước khi gọi platform
	if swept, err := w.accountService.MarkExpiredSweep(ctx); err != nil {
		log.WithError(err).Error("📊 [METRICS] Lỗi khi quét token hết hạn")
	} else if swept > 0 {
		log.WithFields(map[string]interface{}{
			"swept": swept,
		}).Info("📊 [METRICS] Đã chuyển tài khoản hết hạn token sang expired")
	}

	sent, err := w.publicationService.FindSentWithPostID(ctx)
	if err != nil {
		log.WithError(err).Error("📊 [METRICS] Lỗi lấy danh sách publication đã sent")
		w.recordCycle(ctx, fmt.Sprintf("lỗi query: %v", err), 0, 0, startedAt, true)
		return
	}

	for _, pub := range sent {
		ok := w.collectOne(ctx, pub)
		processed++
		if !ok {
			failed++
		}
	}

	// Tính lại daily summary sau khi đã append toàn bộ samples của cycle
	if err := w.metricsService.RecomputeRecentSummaries(ctx, time.Now()); err != nil {
		log.WithError(err).Error("📊 [METRICS] Lỗi khi tính lại daily summaries")
	}

	if processed > 0 {
		log.WithFields(map[string]interface{}{
			"processed": processed,
			"failed":    failed,
			"duration":  time.Since(startedAt).String(),
		}).Info("📊 [METRICS] Cycle hoàn tất")
	}

	w.recordCycle(ctx, fmt.Sprintf("đã thu thập %d publication, %d lỗi", processed, failed), processed, failed, startedAt, false)
}

// collectOne thu thập metrics của một publication. Lỗi per-item chỉ log và
// đi tiếp — khác scheduler, không có chuyển trạng thái nào ở đây vì
// publication vẫn là sent bất kể lần thu thập này thành hay bại.
func (w *MetricsCollector) collectOne(ctx context.Context, pub publicationmodels.Publication) (ok bool) {
	log := logger.GetWorkerLogger()

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"publicationId": pub.ID.Hex(),
				"panic":         r,
			}).Error("📊 [METRICS] Panic khi thu thập metrics của publication")
			ok = false
		}
	}()

	account, err := w.accountService.FindOneById(ctx, pub.AccountID)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
			"accountId":     pub.AccountID.Hex(),
		}).Warn("📊 [METRICS] Không tìm thấy tài khoản của publication")
		return false
	}
	if !account.IsPublishable(time.Now()) {
		// Tài khoản không còn connected: bỏ qua, không phải lỗi
		return true
	}

	adapter, err := w.adapters.ForPlatform(pub.Platform)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
			"platform":      pub.Platform,
		}).Warn("📊 [METRICS] Không có adapter cho platform")
		return false
	}

	engagement, err := adapter.FetchEngagement(ctx, &account, pub.ExternalPostID)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"publicationId":  pub.ID.Hex(),
			"externalPostId": pub.ExternalPostID,
			"platform":       pub.Platform,
		}).Warn("📊 [METRICS] FetchEngagement thất bại, bỏ qua và sẽ thử lại lần sau")
		return false
	}

	if _, err := w.metricsService.AppendSample(ctx, metricsmodels.MetricSample{
		ContentID:      pub.ContentID,
		AccountID:      pub.AccountID,
		ExternalPostID: pub.ExternalPostID,
		Platform:       pub.Platform,
		Likes:          engagement.Likes,
		Comments:       engagement.Comments,
		Shares:         engagement.Shares,
		Saves:          engagement.Saves,
		Impressions:    engagement.Impressions,
		Reach:          engagement.Reach,
		Clicks:         engagement.Clicks,
	}); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
		}).Error("📊 [METRICS] Không ghi được metric sample")
		return false
	}

	return true
}

// recordCycle ghi telemetry cycle vào worker logs, best-effort
func (w *MetricsCollector) recordCycle(ctx context.Context, message string, processed, failed int64, startedAt time.Time, isError bool) {
	durationMs := time.Since(startedAt).Milliseconds()
	var err error
	if isError {
		_, err = w.worklogService.RecordError(ctx, WorkerNameMetricsCollector, message, durationMs)
	} else {
		_, err = w.worklogService.RecordCycle(ctx, WorkerNameMetricsCollector, message, processed, failed, durationMs)
	}
	if err != nil {
		logger.GetWorkerLogger().WithError(err).Warn("📊 [METRICS] Không ghi được worker log")
	}
}
