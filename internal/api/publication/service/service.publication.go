// Package publicationsvc quản lý vòng đời publication: lên lịch, hủy,
// reprogram và các chuyển trạng thái do scheduler thực hiện.
package publicationsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	accountsvc "pullnova_marketing/internal/api/account/service"
	basemodels "pullnova_marketing/internal/api/base/models"
	basesvc "pullnova_marketing/internal/api/base/service"
	publicationdto "pullnova_marketing/internal/api/publication/dto"
	publicationmodels "pullnova_marketing/internal/api/publication/models"
	"pullnova_marketing/internal/common"
	"pullnova_marketing/internal/global"
)

// PublicationService là service quản lý publications
type PublicationService struct {
	*basesvc.BaseServiceMongoImpl[publicationmodels.Publication]
	accountService *accountsvc.AccountService
}

// NewPublicationService tạo mới PublicationService
func NewPublicationService() (*PublicationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Publications)
	if !exist {
		return nil, fmt.Errorf("failed to get publications collection: %v", common.ErrNotFound)
	}
	accountService, err := accountsvc.NewAccountService()
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %v", err)
	}
	return &PublicationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[publicationmodels.Publication](coll),
		accountService:       accountService,
	}, nil
}

// Schedule lên lịch đăng một content item lên một hoặc nhiều tài khoản.
// Với mỗi tài khoản: xóa publication pending cũ của cặp (content, account)
// rồi tạo bản ghi mới — đảm bảo tối đa một pending cho mỗi cặp.
func (s *PublicationService) Schedule(ctx context.Context, input *publicationdto.PublicationScheduleInput) ([]publicationmodels.Publication, error) {
	if input.ScheduledAt <= time.Now().UnixMilli() {
		return nil, common.NewError(common.ErrCodePublicationSchedule,
			"scheduledAt phải ở tương lai", common.StatusBadRequest, nil)
	}

	contentID, err := primitive.ObjectIDFromHex(input.ContentID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidation, "content id không hợp lệ", common.StatusBadRequest, nil)
	}

	var created []publicationmodels.Publication
	for _, accountIDHex := range input.AccountIDs {
		accountID, err := primitive.ObjectIDFromHex(accountIDHex)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidation,
				fmt.Sprintf("account id không hợp lệ: %s", accountIDHex), common.StatusBadRequest, nil)
		}

		account, err := s.accountService.FindOneById(ctx, accountID)
		if err != nil {
			return nil, err
		}

		// Xóa pending cũ của cặp (content, account) trước khi tạo mới
		if _, err := s.DeleteMany(ctx, bson.M{
			"contentId": contentID,
			"accountId": accountID,
			"state":     publicationmodels.PublicationStatePending,
		}); err != nil {
			return nil, err
		}

		pub, err := s.InsertOne(ctx, publicationmodels.Publication{
			ContentID:   contentID,
			AccountID:   accountID,
			Platform:    account.Platform,
			ScheduledAt: input.ScheduledAt,
			State:       publicationmodels.PublicationStatePending,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, pub)
	}

	return created, nil
}

// Cancel hủy một publication đang pending. Publication ở trạng thái khác
// không thể hủy (sent/cancelled là terminal, failed phải reprogram).
func (s *PublicationService) Cancel(ctx context.Context, id primitive.ObjectID) (publicationmodels.Publication, error) {
	return s.transition(ctx, id, publicationmodels.PublicationStateCancelled, nil)
}

// Reprogram đưa một publication failed về pending với thời điểm mới.
// Đây là con đường phục hồi duy nhất cho publication failed.
func (s *PublicationService) Reprogram(ctx context.Context, id primitive.ObjectID, input *publicationdto.PublicationReprogramInput) (publicationmodels.Publication, error) {
	var zero publicationmodels.Publication

	if input.ScheduledAt <= time.Now().UnixMilli() {
		return zero, common.NewError(common.ErrCodePublicationSchedule,
			"scheduledAt phải ở tương lai", common.StatusBadRequest, nil)
	}

	return s.transition(ctx, id, publicationmodels.PublicationStatePending, map[string]interface{}{
		"scheduledAt": input.ScheduledAt,
	})
}

// MarkSent chuyển publication sang sent, lưu externalPostId và response thô.
// Chỉ scheduler gọi hàm này sau khi adapter publish thành công.
func (s *PublicationService) MarkSent(ctx context.Context, id primitive.ObjectID, externalPostID string, raw map[string]interface{}) (publicationmodels.Publication, error) {
	return s.transition(ctx, id, publicationmodels.PublicationStateSent, map[string]interface{}{
		"externalPostId":  externalPostID,
		"lastApiResponse": raw,
	})
}

// MarkFailed chuyển publication sang failed, lưu payload lỗi thô để chẩn đoán
func (s *PublicationService) MarkFailed(ctx context.Context, id primitive.ObjectID, raw map[string]interface{}) (publicationmodels.Publication, error) {
	return s.transition(ctx, id, publicationmodels.PublicationStateFailed, map[string]interface{}{
		"lastApiResponse": raw,
	})
}

// transition thực hiện một chuyển trạng thái có kiểm tra máy trạng thái
func (s *PublicationService) transition(ctx context.Context, id primitive.ObjectID, to string, extraSet map[string]interface{}) (publicationmodels.Publication, error) {
	var zero publicationmodels.Publication

	current, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	if !publicationmodels.CanTransition(current.State, to) {
		return zero, common.NewError(common.ErrCodePublicationTransition,
			fmt.Sprintf("không thể chuyển publication từ %s sang %s", current.State, to),
			common.StatusConflict, nil)
	}

	set := map[string]interface{}{"state": to}
	for k, v := range extraSet {
		set[k] = v
	}

	return s.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
}

// FindDue trả về các publication pending đã đến hạn (scheduledAt <= now),
// sắp xếp theo scheduledAt tăng dần. Việc kiểm tra tài khoản còn connected
// được thực hiện per-item ở scheduler để không skip âm thầm cả batch.
func (s *PublicationService) FindDue(ctx context.Context, now time.Time) ([]publicationmodels.Publication, error) {
	filter := bson.M{
		"state":       publicationmodels.PublicationStatePending,
		"scheduledAt": bson.M{"$lte": now.UnixMilli()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// FindSentWithPostID trả về các publication đã sent và có externalPostId,
// đầu vào của metrics collector.
func (s *PublicationService) FindSentWithPostID(ctx context.Context) ([]publicationmodels.Publication, error) {
	filter := bson.M{
		"state":          publicationmodels.PublicationStateSent,
		"externalPostId": bson.M{"$exists": true, "$ne": ""},
	}
	return s.Find(ctx, filter, nil)
}

// FindPendingByContent trả về publication pending của một content (nếu có)
func (s *PublicationService) FindPendingByContent(ctx context.Context, contentID primitive.ObjectID) ([]publicationmodels.Publication, error) {
	return s.Find(ctx, bson.M{
		"contentId": contentID,
		"state":     publicationmodels.PublicationStatePending,
	}, nil)
}

// DeletePendingByContent xóa mọi publication pending của một content.
// Dùng bởi reconciler (delete-and-recreate) và cascade khi xóa content.
func (s *PublicationService) DeletePendingByContent(ctx context.Context, contentID primitive.ObjectID) (int64, error) {
	return s.DeleteMany(ctx, bson.M{
		"contentId": contentID,
		"state":     publicationmodels.PublicationStatePending,
	})
}

// ListByState trả về danh sách publication phân trang, lọc theo trạng thái (tùy chọn)
func (s *PublicationService) ListByState(ctx context.Context, input *publicationdto.PublicationListInput) (*basemodels.PaginateResult[publicationmodels.Publication], error) {
	filter := bson.M{}
	if input.State != "" {
		filter["state"] = input.State
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, input.Page, input.Limit, opts)
}
