// Package router đăng ký các route thuộc domain metrics.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	metricshdl "pullnova_marketing/internal/api/metrics/handler"
)

// Register đăng ký tất cả route metrics lên v1.
func Register(v1 fiber.Router) error {
	metricsHandler, err := metricshdl.NewMetricsHandler()
	if err != nil {
		return fmt.Errorf("create metrics handler: %w", err)
	}

	group := v1.Group("/metrics")
	group.Get("/summaries", metricsHandler.HandleListSummaries)
	group.Get("/samples/:contentId", metricsHandler.HandleListSamplesByContent)

	return nil
}
