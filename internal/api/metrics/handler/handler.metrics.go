package metricshdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "pullnova_marketing/internal/api/base/handler"
	metricssvc "pullnova_marketing/internal/api/metrics/service"
)

// MetricsHandler xử lý các yêu cầu đọc metric samples và daily summaries
type MetricsHandler struct {
	metricsService *metricssvc.MetricsService
}

// NewMetricsHandler khởi tạo MetricsHandler mới
func NewMetricsHandler() (*MetricsHandler, error) {
	service, err := metricssvc.NewMetricsService()
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics service: %v", err)
	}
	return &MetricsHandler{metricsService: service}, nil
}

// HandleListSummaries trả về daily summaries theo khoảng ngày và platform (query params)
func (h *MetricsHandler) HandleListSummaries(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		data, err := h.metricsService.ListSummaries(context.Background(),
			c.Query("from"), c.Query("to"), c.Query("platform"))
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}

// HandleListSamplesByContent trả về lịch sử metric samples của một content
func (h *MetricsHandler) HandleListSamplesByContent(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		data, err := h.metricsService.ListSamplesByContent(context.Background(), c.Params("contentId"))
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}
