// Package router đăng ký các route thuộc domain connected accounts.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	accounthdl "pullnova_marketing/internal/api/account/handler"
)

// Register đăng ký tất cả route account lên v1.
func Register(v1 fiber.Router) error {
	accountHandler, err := accounthdl.NewAccountHandler()
	if err != nil {
		return fmt.Errorf("create account handler: %w", err)
	}

	group := v1.Group("/account")
	group.Post("/connect", accountHandler.HandleConnect)
	group.Put("/update-tokens", accountHandler.HandleUpdateTokens)
	group.Post("/expired-sweep", accountHandler.HandleExpiredSweep)
	group.Get("/list", accountHandler.HandleList)

	return nil
}
