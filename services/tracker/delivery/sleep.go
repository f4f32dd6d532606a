package delivery

import (
	"babycare/domain"
	"babycare/middleware"

	"github.com/gofiber/fiber/v2"
)

type sleepHandler struct {
	uc domain.SleepUseCase
}

func NewSleepDelivery(app *fiber.App, uc domain.SleepUseCase, creds domain.CredentialService) {
	handler := &sleepHandler{
		uc: uc,
	}
	auth := middleware.AuthRequired(creds)

	route := app.Group("/sleep")
	route.Get("/child/:childId", auth, handler.ListByChild)
	route.Post("/child/:childId", auth, handler.Upsert)
	route.Get("/child/:childId/date/:date", auth, handler.ByDate)
	route.Get("/child/:childId/weekly", auth, handler.Weekly)
	route.Get("/child/:childId/monthly", auth, handler.Monthly)
	route.Get("/:id", auth, handler.Get)
	route.Put("/:id", auth, handler.Update)
	route.Delete("/:id", auth, handler.Delete)
}

// Upsert answers 201 when the day's record was created and 200 when an
// existing one was updated.
func (sh *sleepHandler) Upsert(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "UpsertSleep", "child id")
	}
	var req domain.SleepPayload
	if handled, err := bind(c, user, "UpsertSleep", &req); handled {
		return err
	}

	res, err := sh.uc.Upsert(c.Context(), userID, childID, &req)
	if err != nil {
		return fail(c, user, "UpsertSleep", err)
	}
	if res.Outcome == domain.SleepCreated {
		return ok(c, user, "UpsertSleep", fiber.StatusCreated, "Sleep record created", res)
	}
	return ok(c, user, "UpsertSleep", fiber.StatusOK, "Sleep record updated", res)
}

func (sh *sleepHandler) ListByChild(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "ListSleep", "child id")
	}

	records, err := sh.uc.ListByChild(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "ListSleep", err)
	}
	return okList(c, user, "ListSleep", "Sleep records retrieved successfully", records)
}

func (sh *sleepHandler) ByDate(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "SleepByDate", "child id")
	}

	records, err := sh.uc.ByDate(c.Context(), userID, childID, c.Params("date"))
	if err != nil {
		return fail(c, user, "SleepByDate", err)
	}
	return okList(c, user, "SleepByDate", "Sleep records retrieved successfully", records)
}

func (sh *sleepHandler) Weekly(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "WeeklySleep", "child id")
	}

	period, err := sh.uc.Weekly(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "WeeklySleep", err)
	}
	return ok(c, user, "WeeklySleep", fiber.StatusOK, "Weekly sleep summary", period)
}

func (sh *sleepHandler) Monthly(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "MonthlySleep", "child id")
	}

	period, err := sh.uc.Monthly(c.Context(), userID, childID, c.Query("month"))
	if err != nil {
		return fail(c, user, "MonthlySleep", err)
	}
	return ok(c, user, "MonthlySleep", fiber.StatusOK, "Monthly sleep summary", period)
}

func (sh *sleepHandler) Get(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "GetSleep", "sleep id")
	}

	record, err := sh.uc.Get(c.Context(), userID, id)
	if err != nil {
		return fail(c, user, "GetSleep", err)
	}
	return ok(c, user, "GetSleep", fiber.StatusOK, "Sleep record retrieved successfully", record)
}

func (sh *sleepHandler) Update(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "UpdateSleep", "sleep id")
	}
	var req domain.SleepPayload
	if handled, err := bind(c, user, "UpdateSleep", &req); handled {
		return err
	}

	record, err := sh.uc.Update(c.Context(), userID, id, &req)
	if err != nil {
		return fail(c, user, "UpdateSleep", err)
	}
	return ok(c, user, "UpdateSleep", fiber.StatusOK, "Sleep record updated successfully", record)
}

func (sh *sleepHandler) Delete(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "DeleteSleep", "sleep id")
	}

	if err := sh.uc.Delete(c.Context(), userID, id); err != nil {
		return fail(c, user, "DeleteSleep", err)
	}
	return ok(c, user, "DeleteSleep", fiber.StatusOK, "Sleep record deleted successfully", nil)
}
