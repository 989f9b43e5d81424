// Package router đăng ký các route thuộc domain publications.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	publicationhdl "pullnova_marketing/internal/api/publication/handler"
)

// Register đăng ký tất cả route publication lên v1.
func Register(v1 fiber.Router) error {
	publicationHandler, err := publicationhdl.NewPublicationHandler()
	if err != nil {
		return fmt.Errorf("create publication handler: %w", err)
	}

	group := v1.Group("/publication")
	group.Post("/schedule", publicationHandler.HandleSchedule)
	group.Get("/list", publicationHandler.HandleList)
	group.Get("/:id", publicationHandler.HandleFindById)
	group.Put("/:id/cancel", publicationHandler.HandleCancel)
	group.Put("/:id/reprogram", publicationHandler.HandleReprogram)

	return nil
}
