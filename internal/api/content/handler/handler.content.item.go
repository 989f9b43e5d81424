package contenthdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "pullnova_marketing/internal/api/base/handler"
	contentdto "pullnova_marketing/internal/api/content/dto"
	contentsvc "pullnova_marketing/internal/api/content/service"
	publicationsvc "pullnova_marketing/internal/api/publication/service"
	"pullnova_marketing/internal/common"
	"pullnova_marketing/internal/global"
)

// ContentItemHandler xử lý các yêu cầu liên quan đến content items
type ContentItemHandler struct {
	contentService     *contentsvc.ContentItemService
	publicationService *publicationsvc.PublicationService
}

// NewContentItemHandler khởi tạo ContentItemHandler mới
func NewContentItemHandler() (*ContentItemHandler, error) {
	contentService, err := contentsvc.NewContentItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %v", err)
	}
	publicationService, err := publicationsvc.NewPublicationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create publication service: %v", err)
	}
	return &ContentItemHandler{
		contentService:     contentService,
		publicationService: publicationService,
	}, nil
}

// HandleUpsert mirror một content item từ content editor, sau đó chạy
// reconciler đồng bộ để publication pending luôn khớp với intent mới nhất.
func (h *ContentItemHandler) HandleUpsert(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input contentdto.ContentUpsertInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}

		item, err := h.contentService.UpsertFromEditor(context.Background(), &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		// Reconcile chạy đồng bộ trong cùng request: lỗi reconcile là lỗi hệ thống,
		// "chưa thể lên lịch" thì chỉ log bên trong, không fail request
		if err := h.publicationService.ReconcileContent(context.Background(), &item); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, item, nil)
		return nil
	})
}

// HandleFindById tìm một content item theo ID
func (h *ContentItemHandler) HandleFindById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidation,
				"content id không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		data, err := h.contentService.FindOneById(context.Background(), id)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}

// HandleDelete xóa một content item kèm cascade các publication pending của nó
func (h *ContentItemHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidation,
				"content id không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}

		if _, err := h.publicationService.DeletePendingByContent(context.Background(), id); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		err = h.contentService.DeleteWithCascade(context.Background(), id)
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}
