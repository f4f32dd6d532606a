package delivery

import (
	"babycare/config"
	"babycare/domain"
	"babycare/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
)

type mediaHandler struct {
	uc domain.MediaUseCase
}

func NewMediaDelivery(app *fiber.App, uc domain.MediaUseCase, creds domain.CredentialService) {
	handler := &mediaHandler{
		uc: uc,
	}

	app.Get("/media", middleware.AuthRequired(creds), handler.List)
}

func (mh *mediaHandler) List(c *fiber.Ctx) error {
	_, user := caller(c)

	docs, err := mh.uc.List(c.Context())
	if err != nil {
		return fail(c, user, "ListMedia", err)
	}
	return okList(c, user, "ListMedia", "Media retrieved successfully", docs)
}

// NewHealthDelivery registers the unauthenticated liveness probe.
func NewHealthDelivery(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		config.PrintLogInfo(nil, fiber.StatusOK, "Health")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "OK",
			"data": fiber.Map{
				"app":  config.GetAppName(),
				"time": time.Now().Format(time.RFC3339),
			},
		})
	})
}
