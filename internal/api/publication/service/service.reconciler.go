package publicationsvc

import (
	"context"
	"time"

	contentmodels "pullnova_marketing/internal/api/content/models"
	publicationmodels "pullnova_marketing/internal/api/publication/models"
	"pullnova_marketing/internal/logger"
)

// Lý do một content chưa thể lên lịch (dùng cho log, không phải lỗi)
const (
	reconcileReasonNoDate    = "thiếu fecha_publicacion"
	reconcileReasonPastDate  = "fecha_publicacion không ở tương lai"
	reconcileReasonSchedulable = ""
)

// shouldSchedule quyết định content có đủ điều kiện để tạo publication không.
// Trả về false kèm lý do khi content ở estado "programado" nhưng chưa đủ dữ kiện.
func shouldSchedule(content *contentmodels.ContentItem, now time.Time) (bool, string) {
	if content.Estado != contentmodels.ContentEstadoProgramado {
		return false, reconcileReasonSchedulable
	}
	if content.FechaPublicacion == nil {
		return false, reconcileReasonNoDate
	}
	if *content.FechaPublicacion <= now.UnixMilli() {
		return false, reconcileReasonPastDate
	}
	return true, reconcileReasonSchedulable
}

// ReconcileContent đồng bộ publication pending với intent mới nhất của content editor.
// Được gọi đồng bộ mỗi khi content được tạo/cập nhật.
//
// Rule:
//   - estado != "programado": xóa publication pending hiện có (người dùng đã bỏ lịch).
//   - estado == "programado": yêu cầu fecha_publicacion ở tương lai và một tài khoản
//     connected cho platform của content; xóa pending cũ rồi tạo bản ghi mới.
//
// Cách "delete rồi recreate" là có chủ đích: publication luôn phản ánh intent
// mới nhất thay vì diff-patch bản ghi cũ. Thiếu tài khoản hay thiếu ngày chỉ là
// "chưa thể lên lịch" — log warning, không trả lỗi về editor giữa lúc save.
func (s *PublicationService) ReconcileContent(ctx context.Context, content *contentmodels.ContentItem) error {
	log := logger.GetAppLogger()

	ok, reason := shouldSchedule(content, time.Now())
	if !ok {
		// Người dùng đã bỏ lịch hoặc content chưa đủ dữ kiện: dọn pending cũ
		deleted, err := s.DeletePendingByContent(ctx, content.ID)
		if err != nil {
			return err
		}
		if deleted > 0 {
			log.WithFields(map[string]interface{}{
				"contentId": content.ID.Hex(),
				"estado":    content.Estado,
				"deleted":   deleted,
			}).Info("🔁 [RECONCILER] Đã xóa publication pending vì content không còn ở trạng thái programado")
		}
		if reason != "" {
			log.WithFields(map[string]interface{}{
				"contentId": content.ID.Hex(),
				"reason":    reason,
			}).Warn("🔁 [RECONCILER] Content programado nhưng chưa thể lên lịch")
		}
		return nil
	}

	// Chọn tài khoản connected đầu tiên cho platform của content
	account, err := s.accountService.GetPublishableAccount(ctx, content.Plataforma)
	if err != nil {
		// Không có tài khoản dùng được: chưa thể lên lịch, không phải lỗi của editor
		log.WithError(err).WithFields(map[string]interface{}{
			"contentId": content.ID.Hex(),
			"platform":  content.Plataforma,
		}).Warn("🔁 [RECONCILER] Không có tài khoản connected cho platform, bỏ qua lên lịch")
		return nil
	}

	// Delete-and-recreate: publication luôn mirror intent mới nhất
	if _, err := s.DeletePendingByContent(ctx, content.ID); err != nil {
		return err
	}

	pub, err := s.InsertOne(ctx, publicationmodels.Publication{
		ContentID:   content.ID,
		AccountID:   account.ID,
		Platform:    account.Platform,
		ScheduledAt: *content.FechaPublicacion,
		State:       publicationmodels.PublicationStatePending,
	})
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"contentId":     content.ID.Hex(),
		"publicationId": pub.ID.Hex(),
		"accountId":     account.ID.Hex(),
		"platform":      account.Platform,
		"scheduledAt":   pub.ScheduledAt,
	}).Info("🔁 [RECONCILER] Đã tạo publication pending theo lịch của content")

	return nil
}
