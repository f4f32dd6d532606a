package delivery

import (
	"babycare/domain"
	"babycare/middleware"

	"github.com/gofiber/fiber/v2"
)

type diaperHandler struct {
	uc domain.DiaperUseCase
}

func NewDiaperDelivery(app *fiber.App, uc domain.DiaperUseCase, creds domain.CredentialService) {
	handler := &diaperHandler{
		uc: uc,
	}
	auth := middleware.AuthRequired(creds)

	route := app.Group("/diapers")
	route.Get("/child/:childId", auth, handler.ListByChild)
	route.Post("/child/:childId", auth, handler.Create)
	route.Get("/:id", auth, handler.Get)
	route.Put("/:id", auth, handler.Update)
	route.Delete("/:id", auth, handler.Delete)
}

func (dh *diaperHandler) Create(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "CreateDiaper", "child id")
	}
	var req domain.DiaperPayload
	if handled, err := bind(c, user, "CreateDiaper", &req); handled {
		return err
	}

	diaper, err := dh.uc.Create(c.Context(), userID, childID, &req)
	if err != nil {
		return fail(c, user, "CreateDiaper", err)
	}
	return ok(c, user, "CreateDiaper", fiber.StatusCreated, "Diaper change recorded", diaper)
}

// ListByChild takes an optional ?date= to restrict to one calendar day.
func (dh *diaperHandler) ListByChild(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "ListDiapers", "child id")
	}

	diapers, err := dh.uc.ListByChild(c.Context(), userID, childID, c.Query("date"))
	if err != nil {
		return fail(c, user, "ListDiapers", err)
	}
	return okList(c, user, "ListDiapers", "Diaper changes retrieved successfully", diapers)
}

func (dh *diaperHandler) Get(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "GetDiaper", "diaper id")
	}

	diaper, err := dh.uc.Get(c.Context(), userID, id)
	if err != nil {
		return fail(c, user, "GetDiaper", err)
	}
	return ok(c, user, "GetDiaper", fiber.StatusOK, "Diaper change retrieved successfully", diaper)
}

func (dh *diaperHandler) Update(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "UpdateDiaper", "diaper id")
	}
	var req domain.DiaperPayload
	if handled, err := bind(c, user, "UpdateDiaper", &req); handled {
		return err
	}

	diaper, err := dh.uc.Update(c.Context(), userID, id, &req)
	if err != nil {
		return fail(c, user, "UpdateDiaper", err)
	}
	return ok(c, user, "UpdateDiaper", fiber.StatusOK, "Diaper change updated successfully", diaper)
}

func (dh *diaperHandler) Delete(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "DeleteDiaper", "diaper id")
	}

	if err := dh.uc.Delete(c.Context(), userID, id); err != nil {
		return fail(c, user, "DeleteDiaper", err)
	}
	return ok(c, user, "DeleteDiaper", fiber.StatusOK, "Diaper change deleted successfully", nil)
}
