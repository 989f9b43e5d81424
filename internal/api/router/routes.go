// Package router gom việc đăng ký route của tất cả các domain lên Fiber app.
package router

import (
	"context"

	"github.com/gofiber/fiber/v3"

	accountrouter "pullnova_marketing/internal/api/account/router"
	basehdl "pullnova_marketing/internal/api/base/handler"
	contentrouter "pullnova_marketing/internal/api/content/router"
	metricsrouter "pullnova_marketing/internal/api/metrics/router"
	publicationrouter "pullnova_marketing/internal/api/publication/router"
	worklogrouter "pullnova_marketing/internal/api/worklog/router"
	"pullnova_marketing/internal/worker"
)

// RegisterAllRoutes đăng ký toàn bộ route của ứng dụng:
// các domain API dưới /api/v1, endpoint "run now" của hai worker và health check.
func RegisterAllRoutes(app *fiber.App, scheduler *worker.PublishScheduler, collector *worker.MetricsCollector) error {
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	if err := contentrouter.Register(v1); err != nil {
		return err
	}
	if err := accountrouter.Register(v1); err != nil {
		return err
	}
	if err := publicationrouter.Register(v1); err != nil {
		return err
	}
	if err := metricsrouter.Register(v1); err != nil {
		return err
	}
	if err := worklogrouter.Register(v1); err != nil {
		return err
	}

	// Trigger thủ công cho hai worker, idempotent: cycle đang chạy thì
	// lần gọi này bị cờ in-flight chặn và vẫn trả về acknowledgment.
	workerGroup := v1.Group("/worker")
	workerGroup.Post("/publish-scheduler/run", func(c fiber.Ctx) error {
		go scheduler.RunCycle(context.Background())
		basehdl.HandleResponse(c, fiber.Map{"triggered": worker.WorkerNamePublishScheduler}, nil)
		return nil
	})
	workerGroup.Post("/metrics-collector/run", func(c fiber.Ctx) error {
		go collector.RunCycle(context.Background())
		basehdl.HandleResponse(c, fiber.Map{"triggered": worker.WorkerNameMetricsCollector}, nil)
		return nil
	})

	return nil
}
