package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"pullnova_marketing/internal/global"
	"pullnova_marketing/internal/logger"
	"pullnova_marketing/internal/platform"
	"pullnova_marketing/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// startWorker chạy một worker trong goroutine riêng với recover
func startWorker(ctx context.Context, name string, start func(context.Context)) {
	log := logger.GetAppLogger()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"worker": name,
					"panic":  r,
				}).Error("Worker goroutine panic")
			}
		}()
		start(ctx)
	}()
	log.WithFields(map[string]interface{}{
		"worker": name,
	}).Info("Worker started successfully")
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục (config, MongoDB, validator)
	InitGlobal()

	// Đăng ký collections và đảm bảo indexes
	InitDatabase()

	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	// Bộ adapter dùng chung cho cả hai worker
	adapters := platform.NewSet(cfg)

	// Khởi tạo hai background worker của pipeline
	scheduler, err := worker.NewPublishScheduler(adapters,
		time.Duration(cfg.SchedulerIntervalMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("Không thể khởi tạo publish scheduler: %v", err)
	}
	collector, err := worker.NewMetricsCollector(adapters,
		time.Duration(cfg.MetricsIntervalHours)*time.Hour)
	if err != nil {
		log.Fatalf("Không thể khởi tạo metrics collector: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startWorker(ctx, worker.WorkerNamePublishScheduler, scheduler.Start)
	startWorker(ctx, worker.WorkerNameMetricsCollector, collector.Start)

	// Khởi tạo app với routes và middleware
	app := InitFiberApp(scheduler, collector)

	// Chạy Fiber server trên main thread
	log.WithFields(map[string]interface{}{
		"address": cfg.Address,
	}).Info("Starting Fiber server...")
	listenConfig := fiber.ListenConfig{}
	if err := app.Listen(cfg.Address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}
