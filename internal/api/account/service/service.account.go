// Package accountsvc quản lý vòng đời tài khoản kết nối và token của chúng.
// Mọi call ra platform đều phải đi qua GetPublishableAccount để đảm bảo
// chỉ dùng tài khoản connected với token còn hiệu lực.
package accountsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	accountdto "pullnova_marketing/internal/api/account/dto"
	accountmodels "pullnova_marketing/internal/api/account/models"
	basesvc "pullnova_marketing/internal/api/base/service"
	"pullnova_marketing/internal/common"
	"pullnova_marketing/internal/global"
	"pullnova_marketing/internal/logger"
)

// AccountService là service quản lý connected accounts
type AccountService struct {
	*basesvc.BaseServiceMongoImpl[accountmodels.ConnectedAccount]
}

// NewAccountService tạo mới AccountService
func NewAccountService() (*AccountService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ConnectedAccounts)
	if !exist {
		return nil, fmt.Errorf("failed to get connected_accounts collection: %v", common.ErrNotFound)
	}
	return &AccountService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[accountmodels.ConnectedAccount](coll),
	}, nil
}

// GetPublishableAccount trả về tài khoản connected đầu tiên cho platform.
// Lựa chọn "first-found" theo createdAt tăng dần — đây là rule đơn giản có chủ đích
// cho hệ thống single-tenant, không phải load balancing.
// Trả về common.ErrNotConnected nếu platform không có tài khoản dùng được.
func (s *AccountService) GetPublishableAccount(ctx context.Context, platform string) (accountmodels.ConnectedAccount, error) {
	var zero accountmodels.ConnectedAccount

	now := time.Now()
	filter := bson.M{
		"platform": platform,
		"state":    accountmodels.AccountStateConnected,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	account, err := s.FindOne(ctx, filter, opts)
	if err != nil {
		if err == common.ErrNotFound {
			return zero, common.ErrNotConnected
		}
		return zero, err
	}

	// Token đã quá hạn: chuyển tài khoản sang expired và báo lỗi,
	// không bao giờ skip âm thầm
	if account.IsTokenExpired(now) {
		if markErr := s.MarkExpired(ctx, account.ID); markErr != nil {
			logger.GetAppLogger().WithError(markErr).WithFields(map[string]interface{}{
				"accountId": account.ID.Hex(),
			}).Error("Không thể đánh dấu tài khoản expired")
		}
		return zero, common.NewError(common.ErrCodePlatform,
			fmt.Sprintf("token của tài khoản %s (%s) đã hết hạn", account.ExternalPageId, platform),
			common.StatusConflict, nil)
	}

	return account, nil
}

// Connect đăng ký một tài khoản mới sau OAuth callback, state mặc định connected
func (s *AccountService) Connect(ctx context.Context, input *accountdto.AccountConnectInput) (accountmodels.ConnectedAccount, error) {
	account := accountmodels.ConnectedAccount{
		Platform:       input.Platform,
		ExternalPageId: input.ExternalPageId,
		AccessToken:    input.AccessToken,
		RefreshToken:   input.RefreshToken,
		TokenExpiresAt: input.TokenExpiresAt,
		State:          accountmodels.AccountStateConnected,
	}
	return s.InsertOne(ctx, account)
}

// UpdateTokens cập nhật credentials cho tài khoản và đưa state về connected
// (kể cả khi tài khoản đang expired).
func (s *AccountService) UpdateTokens(ctx context.Context, input *accountdto.AccountUpdateTokensInput) (accountmodels.ConnectedAccount, error) {
	var zero accountmodels.ConnectedAccount

	id, err := primitive.ObjectIDFromHex(input.AccountID)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidation, "account id không hợp lệ", common.StatusBadRequest, nil)
	}

	set := map[string]interface{}{
		"accessToken": input.AccessToken,
		"state":       accountmodels.AccountStateConnected,
	}
	if input.RefreshToken != "" {
		set["refreshToken"] = input.RefreshToken
	}
	update := &basesvc.UpdateData{Set: set}
	if input.TokenExpiresAt != nil {
		set["tokenExpiresAt"] = *input.TokenExpiresAt
	} else {
		update.Unset = map[string]interface{}{"tokenExpiresAt": ""}
	}

	return s.UpdateById(ctx, id, update)
}

// MarkExpiredSweep quét các tài khoản connected có tokenExpiresAt đã qua
// và chuyển chúng sang expired. Trả về số tài khoản bị chuyển.
func (s *AccountService) MarkExpiredSweep(ctx context.Context) (int64, error) {
	now := time.Now().UnixMilli()
	filter := bson.M{
		"state":          accountmodels.AccountStateConnected,
		"tokenExpiresAt": bson.M{"$ne": nil, "$lte": now},
	}

	result, err := s.Collection().UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{
			"state":     accountmodels.AccountStateExpired,
			"updatedAt": now,
		},
	})
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.ModifiedCount, nil
}

// MarkExpired chuyển một tài khoản cụ thể sang expired.
// Được gọi tại mọi điểm phát hiện token quá hạn (lấy tài khoản cho reconciler,
// publish scheduler) — phát hiện mà không chuyển state là skip âm thầm.
func (s *AccountService) MarkExpired(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"state": accountmodels.AccountStateExpired},
	})
	return err
}
