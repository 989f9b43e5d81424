package contentsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "pullnova_marketing/internal/api/base/service"
	contentdto "pullnova_marketing/internal/api/content/dto"
	contentmodels "pullnova_marketing/internal/api/content/models"
	"pullnova_marketing/internal/common"
	"pullnova_marketing/internal/global"
)

// ContentItemService là service quản lý content items (mirror từ content editor)
type ContentItemService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.ContentItem]
}

// NewContentItemService tạo mới ContentItemService
func NewContentItemService() (*ContentItemService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ContentItems)
	if !exist {
		return nil, fmt.Errorf("failed to get content_items collection: %v", common.ErrNotFound)
	}
	return &ContentItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.ContentItem](coll),
	}, nil
}

// UpsertFromEditor mirror một content item từ content editor vào store.
// Input có ID thì update, không có thì insert mới. Trả về bản ghi sau khi ghi.
func (s *ContentItemService) UpsertFromEditor(ctx context.Context, input *contentdto.ContentUpsertInput) (contentmodels.ContentItem, error) {
	var zero contentmodels.ContentItem

	if input.ID == "" {
		return s.InsertOne(ctx, contentmodels.ContentItem{
			Estado:           input.Estado,
			FechaPublicacion: input.FechaPublicacion,
			Plataforma:       input.Plataforma,
			CopyTexto:        input.CopyTexto,
			Contenido:        input.Contenido,
			Titulo:           input.Titulo,
			Imagenes:         input.Imagenes,
		})
	}

	id, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidation, "content id không hợp lệ", common.StatusBadRequest, nil)
	}
	return s.UpdateById(ctx, id, editorUpdate(input))
}

// editorUpdate xây dựng partial update từ các trường editor gửi sang.
// Chỉ $set đúng các trường của editor — timestamps do base service quản lý,
// không bao giờ được nằm trong $set của update này.
// FechaPublicacion/Imagenes bị editor xóa thì phải $unset: để key cũ sống sót
// trong Mongo là reconciler sẽ lên lịch theo một ngày không còn tồn tại.
func editorUpdate(input *contentdto.ContentUpsertInput) *basesvc.UpdateData {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"estado":     input.Estado,
			"plataforma": input.Plataforma,
			"copy_texto": input.CopyTexto,
			"contenido":  input.Contenido,
			"titulo":     input.Titulo,
		},
		Unset: map[string]interface{}{},
	}

	if input.FechaPublicacion != nil {
		update.Set["fecha_publicacion"] = *input.FechaPublicacion
	} else {
		update.Unset["fecha_publicacion"] = ""
	}
	if len(input.Imagenes) > 0 {
		update.Set["imagenes"] = input.Imagenes
	} else {
		update.Unset["imagenes"] = ""
	}

	return update
}

// MarkPublicado đánh dấu content item đã được đăng thành công.
// Đây là trường duy nhất pipeline ghi ngược lại cho content editor.
func (s *ContentItemService) MarkPublicado(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.UpdateOne(ctx, bson.M{"_id": id}, &basesvc.UpdateData{
		Set: map[string]interface{}{"estado": contentmodels.ContentEstadoPublicado},
	}, nil)
	return err
}

// DeleteWithCascade xóa content item. Publication pending liên quan được
// xóa bởi PublicationService.DeletePendingByContent trước khi gọi hàm này.
func (s *ContentItemService) DeleteWithCascade(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteById(ctx, id)
}
