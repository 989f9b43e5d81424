// Package router đăng ký các route thuộc domain worklog.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	workloghdl "pullnova_marketing/internal/api/worklog/handler"
)

// Register đăng ký route worker logs lên v1.
func Register(v1 fiber.Router) error {
	worklogHandler, err := workloghdl.NewWorkLogHandler()
	if err != nil {
		return fmt.Errorf("create worklog handler: %w", err)
	}

	v1.Get("/worker/logs", worklogHandler.HandleList)

	return nil
}
