// Package router đăng ký các route thuộc domain content items.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	contenthdl "pullnova_marketing/internal/api/content/handler"
)

// Register đăng ký tất cả route content lên v1.
func Register(v1 fiber.Router) error {
	contentHandler, err := contenthdl.NewContentItemHandler()
	if err != nil {
		return fmt.Errorf("create content handler: %w", err)
	}

	group := v1.Group("/content")
	group.Post("/upsert", contentHandler.HandleUpsert)
	group.Get("/:id", contentHandler.HandleFindById)
	group.Delete("/:id", contentHandler.HandleDelete)

	return nil
}
