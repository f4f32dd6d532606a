package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

func GetFiberListenAddress() string {
	return fmt.Sprintf("%s:%s", GetFiberHttpHost(), GetFiberHttpPort())
}

func GetFiberConfig() fiber.Config {
	return fiber.Config{
		DisableStartupMessage: false,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		Prefork:               false,
		ServerHeader:          GetAppName(),
		AppName:               GetAppName(),
		ReadTimeout:           time.Second * 60,
		CaseSensitive:         true,
		ErrorHandler:          fiberErrorHandler,
	}
}

// fiberErrorHandler keeps framework errors (unknown routes, bad bodies) in
// the same envelope the handlers use.
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		GetLogrusInstance().WithField("path", c.Path()).Errorf("unhandled error: %v", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

// GetAppName names the service in the Server header and the health payload.
func GetAppName() string {
	return getEnvOr("APP_NAME", "babycare")
}

func GetFiberHttpHost() string {
	return getEnvOr("HTTP_HOST", "0.0.0.0")
}

func GetFiberHttpPort() string {
	return getEnvOr("HTTP_PORT", "8000")
}
