package accounthdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	accountdto "pullnova_marketing/internal/api/account/dto"
	accountsvc "pullnova_marketing/internal/api/account/service"
	basehdl "pullnova_marketing/internal/api/base/handler"
	"pullnova_marketing/internal/global"
)

// AccountHandler xử lý các yêu cầu liên quan đến connected accounts
type AccountHandler struct {
	accountService *accountsvc.AccountService
}

// NewAccountHandler khởi tạo AccountHandler mới
func NewAccountHandler() (*AccountHandler, error) {
	service, err := accountsvc.NewAccountService()
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %v", err)
	}
	return &AccountHandler{accountService: service}, nil
}

// HandleConnect đăng ký một tài khoản mới sau OAuth callback
func (h *AccountHandler) HandleConnect(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input accountdto.AccountConnectInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		data, err := h.accountService.Connect(context.Background(), &input)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdateTokens cập nhật credentials và đưa state về connected
func (h *AccountHandler) HandleUpdateTokens(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input accountdto.AccountUpdateTokensInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleValidationError(c, err)
			return nil
		}
		data, err := h.accountService.UpdateTokens(context.Background(), &input)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}

// HandleExpiredSweep quét và đánh dấu các tài khoản có token đã hết hạn
func (h *AccountHandler) HandleExpiredSweep(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		count, err := h.accountService.MarkExpiredSweep(context.Background())
		basehdl.HandleResponse(c, fiber.Map{"markedExpired": count}, err)
		return nil
	})
}

// HandleList trả về danh sách tài khoản (access token không được trả về)
func (h *AccountHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		data, err := h.accountService.Find(context.Background(), nil, nil)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}
