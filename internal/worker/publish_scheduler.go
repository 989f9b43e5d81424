// Package worker chứa các background worker chạy định kỳ của pipeline:
// publish scheduler và metrics collector. Hai worker độc lập, có thể overlap
// nhau tự do vì chúng đụng đến các trạng thái publication khác nhau
// (pending vs sent); mỗi worker tự chống re-entry bằng cờ in-flight.
package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	accountmodels "pullnova_marketing/internal/api/account/models"
	accountsvc "pullnova_marketing/internal/api/account/service"
	contentsvc "pullnova_marketing/internal/api/content/service"
	publicationmodels "pullnova_marketing/internal/api/publication/models"
	publicationsvc "pullnova_marketing/internal/api/publication/service"
	worklogsvc "pullnova_marketing/internal/api/worklog/service"
	"pullnova_marketing/internal/logger"
	"pullnova_marketing/internal/platform"
)

// WorkerNamePublishScheduler là tên worker ghi trong worker logs
const WorkerNamePublishScheduler = "publish_scheduler"

// accountGate là quyết định của scheduler với một tài khoản tại thời điểm đăng
type accountGate int

const (
	// Tài khoản connected với token còn hiệu lực: đăng
	gatePublish accountGate = iota
	// Tài khoản disconnected hoặc đã expired: để publication pending chờ
	// operator kết nối lại — lỗi cấu hình, không phải lỗi của item
	gateWaitReconnect
	// Tài khoản vẫn ghi connected nhưng token đã quá hạn: phải chuyển
	// tài khoản sang expired và fail publication, không được skip âm thầm
	gateTokenExpired
)

// classifyAccountAtPublish phân loại tài khoản ngay trước khi gọi adapter
func classifyAccountAtPublish(account *accountmodels.ConnectedAccount, now time.Time) accountGate {
	if account.State != accountmodels.AccountStateConnected {
		return gateWaitReconnect
	}
	if account.IsTokenExpired(now) {
		return gateTokenExpired
	}
	return gatePublish
}

// PublishScheduler quét các publication pending đã đến hạn và đăng chúng
// qua adapter của platform tương ứng. Mỗi cycle xử lý các item tuần tự —
// call ra platform chiếm phần lớn latency, chạy song song chỉ tăng rủi ro
// rate limit theo tài khoản.
type PublishScheduler struct {
	publicationService *publicationsvc.PublicationService
	contentService     *contentsvc.ContentItemService
	accountService     *accountsvc.AccountService
	worklogService     *worklogsvc.WorkLogService
	adapters           *platform.Set
	interval           time.Duration // Khoảng thời gian giữa các lần chạy
	running            atomic.Bool   // Cờ in-flight chống cycle chạy chồng
}

// NewPublishScheduler tạo mới PublishScheduler.
// Tham số:
//   - adapters: bộ adapter của các platform
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 1 phút)
func NewPublishScheduler(adapters *platform.Set, interval time.Duration) (*PublishScheduler, error) {
	publicationService, err := publicationsvc.NewPublicationService()
	if err != nil {
		return nil, err
	}
	contentService, err := contentsvc.NewContentItemService()
	if err != nil {
		return nil, err
	}
	accountService, err := accountsvc.NewAccountService()
	if err != nil {
		return nil, err
	}
	worklogService, err := worklogsvc.NewWorkLogService()
	if err != nil {
		return nil, err
	}
	if interval < time.Second {
		interval = time.Minute
	}
	return &PublishScheduler{
		publicationService: publicationService,
		contentService:     contentService,
		accountService:     accountService,
		worklogService:     worklogService,
		adapters:           adapters,
		interval:           interval,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval quét các publication đến hạn
func (w *PublishScheduler) Start(ctx context.Context) {
	log := logger.GetWorkerLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🚀 [SCHEDULER] Starting Publish Scheduler...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🚀 [SCHEDULER] Publish Scheduler stopped")
			return
		case <-ticker.C:
			w.RunCycle(ctx)
		}
	}
}

// RunCycle chạy một cycle quét-và-đăng. Được gọi bởi ticker và bởi endpoint
// "run now" thủ công. Cycle đang chạy mà bị gọi lại thì log và return ngay,
// không queue.
func (w *PublishScheduler) RunCycle(ctx context.Context) {
	log := logger.GetWorkerLogger()

	if !w.running.CompareAndSwap(false, true) {
		log.Warn("🚀 [SCHEDULER] Cycle trước vẫn đang chạy, bỏ qua cycle này")
		return
	}
	defer w.running.Store(false)

	startedAt := time.Now()
	var processed, failed int64

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("🚀 [SCHEDULER] Panic trong cycle, sẽ tiếp tục ở lần chạy tiếp theo")
			w.recordCycle(ctx, fmt.Sprintf("panic: %v", r), processed, failed, startedAt, true)
		}
	}()

	due, err := w.publicationService.FindDue(ctx, startedAt)
	if err != nil {
		log.WithError(err).Error("🚀 [SCHEDULER] Lỗi lấy danh sách publication đến hạn")
		w.recordCycle(ctx, fmt.Sprintf("lỗi query: %v", err), 0, 0, startedAt, true)
		return
	}
	if len(due) > 0 {
		log.WithFields(map[string]interface{}{
			"count": len(due),
		}).Info("🚀 [SCHEDULER] Bắt đầu xử lý publication đến hạn")
	}

	for _, pub := range due {
		processed++
		if err := w.processOne(ctx, pub); err != nil {
			failed++
		}
	}

	if processed > 0 {
		log.WithFields(map[string]interface{}{
			"processed": processed,
			"failed":    failed,
			"duration":  time.Since(startedAt).String(),
		}).Info("🚀 [SCHEDULER] Cycle hoàn tất")
	}

	// Cycle rỗng vẫn ghi worklog, giống metrics collector
	w.recordCycle(ctx, fmt.Sprintf("đã xử lý %d publication, %d lỗi", processed, failed), processed, failed, startedAt, false)
}

// processOne xử lý một publication: kiểm tra tài khoản, build payload, publish,
// ghi kết quả. Panic bên trong một item được bắt tại đây và chuyển thành
// failed — một item hỏng không bao giờ được phép hạ cả cycle.
func (w *PublishScheduler) processOne(ctx context.Context, pub publicationmodels.Publication) (itemErr error) {
	log := logger.GetWorkerLogger()

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"publicationId": pub.ID.Hex(),
				"panic":         r,
			}).Error("🚀 [SCHEDULER] Panic khi xử lý publication, chuyển sang failed")
			w.markFailed(ctx, pub, map[string]interface{}{"panic": fmt.Sprintf("%v", r)})
			itemErr = fmt.Errorf("panic: %v", r)
		}
	}()

	// Tài khoản phải còn connected với token còn hạn tại thời điểm đăng
	account, err := w.accountService.FindOneById(ctx, pub.AccountID)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
			"accountId":     pub.AccountID.Hex(),
		}).Warn("🚀 [SCHEDULER] Không tìm thấy tài khoản của publication")
		w.markFailed(ctx, pub, map[string]interface{}{"error": "không tìm thấy tài khoản"})
		return err
	}
	switch classifyAccountAtPublish(&account, time.Now()) {
	case gateTokenExpired:
		log.WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
			"accountId":     account.ID.Hex(),
		}).Warn("🚀 [SCHEDULER] Token tài khoản đã hết hạn, chuyển tài khoản sang expired và fail publication")
		if markErr := w.accountService.MarkExpired(ctx, account.ID); markErr != nil {
			log.WithError(markErr).WithFields(map[string]interface{}{
				"accountId": account.ID.Hex(),
			}).Error("🚀 [SCHEDULER] Không chuyển được tài khoản sang expired")
		}
		w.markFailed(ctx, pub, map[string]interface{}{
			"error": fmt.Sprintf("token của tài khoản %s (%s) đã hết hạn", account.ExternalPageId, account.Platform),
		})
		return fmt.Errorf("token của tài khoản %s đã hết hạn", account.ID.Hex())
	case gateWaitReconnect:
		log.WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
			"accountId":     account.ID.Hex(),
			"accountState":  account.State,
		}).Warn("🚀 [SCHEDULER] Tài khoản chưa connected lại, để publication pending chờ cycle sau")
		return nil
	}

	content, err := w.contentService.FindOneById(ctx, pub.ContentID)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
			"contentId":     pub.ContentID.Hex(),
		}).Warn("🚀 [SCHEDULER] Không tìm thấy content của publication")
		w.markFailed(ctx, pub, map[string]interface{}{"error": "không tìm thấy content item"})
		return err
	}

	adapter, err := w.adapters.ForPlatform(pub.Platform)
	if err != nil {
		w.markFailed(ctx, pub, map[string]interface{}{"error": err.Error()})
		return err
	}

	result := adapter.Publish(ctx, &account, platform.PublishPayload{
		Text:      content.PublishText(),
		ImageURLs: content.Imagenes,
	})

	if !result.Success {
		log.WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
			"platform":      result.Platform,
			"error":         result.Error,
		}).Warn("🚀 [SCHEDULER] Publish thất bại")
		raw := result.Raw
		if raw == nil {
			raw = map[string]interface{}{}
		}
		raw["error_normalized"] = result.Error
		w.markFailed(ctx, pub, raw)
		return fmt.Errorf("publish thất bại: %s", result.Error)
	}

	if _, err := w.publicationService.MarkSent(ctx, pub.ID, result.ExternalPostID, result.Raw); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
		}).Error("🚀 [SCHEDULER] Publish thành công nhưng không ghi được trạng thái sent")
		return err
	}

	// Trường duy nhất pipeline ghi ngược cho content editor
	if err := w.contentService.MarkPublicado(ctx, pub.ContentID); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"contentId": pub.ContentID.Hex(),
		}).Warn("🚀 [SCHEDULER] Không đánh dấu được content publicado")
	}

	log.WithFields(map[string]interface{}{
		"publicationId":  pub.ID.Hex(),
		"platform":       pub.Platform,
		"externalPostId": result.ExternalPostID,
	}).Info("🚀 [SCHEDULER] Đã đăng publication thành công")
	return nil
}

// markFailed chuyển publication sang failed, chỉ log khi chính việc ghi cũng lỗi
func (w *PublishScheduler) markFailed(ctx context.Context, pub publicationmodels.Publication, raw map[string]interface{}) {
	if _, err := w.publicationService.MarkFailed(ctx, pub.ID, raw); err != nil {
		logger.GetWorkerLogger().WithError(err).WithFields(map[string]interface{}{
			"publicationId": pub.ID.Hex(),
		}).Error("🚀 [SCHEDULER] Không ghi được trạng thái failed")
	}
}

// recordCycle ghi telemetry cycle vào worker logs, best-effort
func (w *PublishScheduler) recordCycle(ctx context.Context, message string, processed, failed int64, startedAt time.Time, isError bool) {
	durationMs := time.Since(startedAt).Milliseconds()
	var err error
	if isError {
		_, err = w.worklogService.RecordError(ctx, WorkerNamePublishScheduler, message, durationMs)
	} else {
		_, err = w.worklogService.RecordCycle(ctx, WorkerNamePublishScheduler, message, processed, failed, durationMs)
	}
	if err != nil {
		logger.GetWorkerLogger().WithError(err).Warn("🚀 [SCHEDULER] Không ghi được worker log")
	}
}
