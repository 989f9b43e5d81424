package publicationhdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "pullnova_marketing/internal/api/base/handler"
	publicationdto "pullnova_marketing/internal/api/publication/dto"
	publicationsvc "pullnova_marketing/internal/api/publication/service"
	"pullnova_marketing/internal/common"
	"pullnova_marketing/internal/global"
)

// PublicationHandler xử lý các yêu cầu liên quan đến publications
type PublicationHandler struct {
	publicationService *publicationsvc.PublicationService
}

// NewPublicationHandler khởi tạo PublicationHandler mới
func NewPublicationHandler() (*PublicationHandler, error) {
	service, err := publicationsvc.NewPublicationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create publication service: %v", err)
	}
	return &PublicationHandler{publicationService: service}, nil
}

// HandleSchedule lên lịch đăng một content lên một hoặc nhiều tài khoản
func (h *PublicationHandler) HandleSchedule(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input publicationdto.PublicationScheduleInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		data, err := h.publicationService.Schedule(context.Background(), &input)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}

// HandleCancel hủy một publication đang pending
func (h *PublicationHandler) HandleCancel(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidation,
				"publication id không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		data, err := h.publicationService.Cancel(context.Background(), id)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}

// HandleReprogram đưa một publication failed về pending với thời điểm mới
func (h *PublicationHandler) HandleReprogram(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidation,
				"publication id không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}

		var input publicationdto.PublicationReprogramInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		data, err := h.publicationService.Reprogram(context.Background(), id, &input)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}

// HandleList trả về danh sách publication phân trang, lọc theo trạng thái
func (h *PublicationHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input publicationdto.PublicationListInput
		if err := c.Bind().Query(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		data, err := h.publicationService.ListByState(context.Background(), &input)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFindById tìm một publication theo ID
func (h *PublicationHandler) HandleFindById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidation,
				"publication id không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		data, err := h.publicationService.FindOneById(context.Background(), id)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}
