package delivery

import (
	"babycare/config"
	"babycare/domain"
	"babycare/middleware"
	"errors"
	"reflect"
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// caller returns the authenticated user id and the name used in handler logs.
func caller(c *fiber.Ctx) (int, *string) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return 0, nil
	}
	return claims.UserID, &claims.Email
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the error envelope. Internal failures are logged with their
// cause and reported to the caller generically.
func fail(c *fiber.Ctx, user *string, fn string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		config.GetLogrusInstance().WithFields(logrus.Fields{
			"request_id": c.Locals(middleware.LocalRequestID),
			"function":   fn,
		}).Errorf("request failed: %v", err)
	}

	config.PrintLogInfo(user, status, fn)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": domain.PublicMessage(err),
		"data":    nil,
	})
}

func ok(c *fiber.Ctx, user *string, fn string, status int, message string, data interface{}) error {
	config.PrintLogInfo(user, status, fn)
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// okList is ok for collections; count is the length of data.
func okList(c *fiber.Ctx, user *string, fn string, message string, data interface{}) error {
	count := 0
	if v := reflect.ValueOf(data); v.Kind() == reflect.Slice {
		count = v.Len()
	}

	config.PrintLogInfo(user, fiber.StatusOK, fn)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"count":   count,
		"data":    data,
	})
}

func badRequest(c *fiber.Ctx, user *string, fn string, message string, detail interface{}) error {
	config.PrintLogInfo(user, fiber.StatusBadRequest, fn)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   detail,
		"data":    nil,
	})
}

// bind parses the JSON body into req and runs its govalidator tags. On
// failure the 400 response has already been written and handled is true.
func bind(c *fiber.Ctx, user *string, fn string, req interface{}) (handled bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return true, badRequest(c, user, fn, "Invalid request body", err.Error())
	}
	if _, err := govalidator.ValidateStruct(req); err != nil {
		return true, badRequest(c, user, fn, "Invalid request body", govalidator.ErrorsByField(err))
	}
	return false, nil
}

// pathID reads an integer route parameter. Range checks are left to the
// ownership guard.
func pathID(c *fiber.Ctx, name string) (int, bool) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx, user *string, fn, name string) error {
	return badRequest(c, user, fn, "Invalid "+name, nil)
}
