package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"pullnova_marketing/internal/api/router"
	"pullnova_marketing/internal/common"
	"pullnova_marketing/internal/global"
	"pullnova_marketing/internal/logger"
	"pullnova_marketing/internal/worker"
)

// InitFiberApp khởi tạo ứng dụng Fiber với middleware stack và routes
func InitFiberApp(scheduler *worker.PublishScheduler, collector *worker.MetricsCollector) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "Pullnova Marketing API",
		ServerHeader:  "Pullnova Marketing API",
		StrictRouting: true,
		CaseSensitive: true,

		BodyLimit:    10 * 1024 * 1024, // Max size của request body (10MB)
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidation.Code
				case fiber.StatusNotFound:
					errorCode = common.ErrCodeDatabaseNotFound.Code
				case fiber.StatusConflict:
					errorCode = common.ErrCodeDatabaseDuplicate.Code
				}
			}

			logger.GetAppLogger().WithFields(map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
				"path":      c.Path(),
				"message":   message,
			}).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// 1. Request ID Middleware - ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS Middleware - đặt trước các middleware khác để xử lý preflight
	corsOrigins := global.MongoDB_ServerConfig.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        24 * 60 * 60, // Cache preflight 24 giờ
	}))

	// 3. Recover Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"panic": e,
				"path":  c.Path(),
			}).Error("Panic recovered")

			c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"code":    common.ErrCodeInternalServer.Code,
				"message": "Internal Server Error",
				"status":  "error",
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	// Đăng ký routes
	if err := router.RegisterAllRoutes(app, scheduler, collector); err != nil {
		panic(fmt.Sprintf("Không thể đăng ký routes: %v", err))
	}

	return app
}
