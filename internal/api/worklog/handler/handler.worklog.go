package workloghdl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	basehdl "pullnova_marketing/internal/api/base/handler"
	worklogsvc "pullnova_marketing/internal/api/worklog/service"
)

// WorkLogHandler xử lý các yêu cầu đọc worker logs
type WorkLogHandler struct {
	worklogService *worklogsvc.WorkLogService
}

// NewWorkLogHandler khởi tạo WorkLogHandler mới
func NewWorkLogHandler() (*WorkLogHandler, error) {
	service, err := worklogsvc.NewWorkLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create worklog service: %v", err)
	}
	return &WorkLogHandler{worklogService: service}, nil
}

// HandleList trả về logs gần nhất, lọc theo worker qua query param
func (h *WorkLogHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
		data, err := h.worklogService.ListByWorker(context.Background(), c.Query("worker"), limit)
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}
