package delivery

import (
	"babycare/domain"
	"babycare/middleware"

	"github.com/gofiber/fiber/v2"
)

type childHandler struct {
	uc domain.ChildUseCase
}

func NewChildDelivery(app *fiber.App, uc domain.ChildUseCase, creds domain.CredentialService) {
	handler := &childHandler{
		uc: uc,
	}
	auth := middleware.AuthRequired(creds)

	route := app.Group("/children")
	route.Get("/", auth, handler.List)
	route.Post("/", auth, handler.Create)
	route.Get("/:id", auth, handler.Get)
	route.Put("/:id", auth, handler.Update)
	route.Delete("/:id", auth, handler.Delete)
}

func (ch *childHandler) Create(c *fiber.Ctx) error {
	userID, user := caller(c)
	var req domain.ChildPayload
	if handled, err := bind(c, user, "CreateChild", &req); handled {
		return err
	}

	child, err := ch.uc.Create(c.Context(), userID, &req)
	if err != nil {
		return fail(c, user, "CreateChild", err)
	}
	return ok(c, user, "CreateChild", fiber.StatusCreated, "Child created successfully", child)
}

func (ch *childHandler) List(c *fiber.Ctx) error {
	userID, user := caller(c)

	children, err := ch.uc.List(c.Context(), userID)
	if err != nil {
		return fail(c, user, "ListChildren", err)
	}
	return okList(c, user, "ListChildren", "Children retrieved successfully", children)
}

func (ch *childHandler) Get(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "GetChild", "child id")
	}

	child, err := ch.uc.Get(c.Context(), userID, id)
	if err != nil {
		return fail(c, user, "GetChild", err)
	}
	return ok(c, user, "GetChild", fiber.StatusOK, "Child retrieved successfully", child)
}

func (ch *childHandler) Update(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "UpdateChild", "child id")
	}
	var req domain.ChildPayload
	if handled, err := bind(c, user, "UpdateChild", &req); handled {
		return err
	}

	child, err := ch.uc.Update(c.Context(), userID, id, &req)
	if err != nil {
		return fail(c, user, "UpdateChild", err)
	}
	return ok(c, user, "UpdateChild", fiber.StatusOK, "Child updated successfully", child)
}

func (ch *childHandler) Delete(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "DeleteChild", "child id")
	}

	if err := ch.uc.Delete(c.Context(), userID, id); err != nil {
		return fail(c, user, "DeleteChild", err)
	}
	return ok(c, user, "DeleteChild", fiber.StatusOK, "Child deleted successfully", nil)
}
