package delivery

import (
	"babycare/domain"
	"babycare/middleware"

	"github.com/gofiber/fiber/v2"
)

type growthHandler struct {
	uc domain.GrowthUseCase
}

func NewGrowthDelivery(app *fiber.App, uc domain.GrowthUseCase, creds domain.CredentialService) {
	handler := &growthHandler{
		uc: uc,
	}
	auth := middleware.AuthRequired(creds)

	route := app.Group("/growth")
	route.Get("/child/:childId", auth, handler.ListByChild)
	route.Post("/child/:childId", auth, handler.Create)
	route.Get("/child/:childId/statistics", auth, handler.Statistics)
	route.Get("/child/:childId/daily", auth, handler.Daily)
	route.Get("/:id", auth, handler.Get)
	route.Put("/:id", auth, handler.Update)
	route.Delete("/:id", auth, handler.Delete)
}

func (gh *growthHandler) Create(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "CreateGrowth", "child id")
	}
	var req domain.GrowthPayload
	if handled, err := bind(c, user, "CreateGrowth", &req); handled {
		return err
	}

	record, err := gh.uc.Create(c.Context(), userID, childID, &req)
	if err != nil {
		return fail(c, user, "CreateGrowth", err)
	}
	return ok(c, user, "CreateGrowth", fiber.StatusCreated, "Growth record created", record)
}

func (gh *growthHandler) ListByChild(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "ListGrowth", "child id")
	}

	records, err := gh.uc.ListByChild(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "ListGrowth", err)
	}
	return okList(c, user, "ListGrowth", "Growth records retrieved successfully", records)
}

func (gh *growthHandler) Statistics(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "GrowthStatistics", "child id")
	}

	stats, err := gh.uc.Statistics(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "GrowthStatistics", err)
	}
	return ok(c, user, "GrowthStatistics", fiber.StatusOK, "Growth statistics retrieved", stats)
}

func (gh *growthHandler) Daily(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "DailyGrowth", "child id")
	}

	days, err := gh.uc.Daily(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "DailyGrowth", err)
	}
	return okList(c, user, "DailyGrowth", "Daily growth retrieved", days)
}

func (gh *growthHandler) Get(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "GetGrowth", "growth id")
	}

	record, err := gh.uc.Get(c.Context(), userID, id)
	if err != nil {
		return fail(c, user, "GetGrowth", err)
	}
	return ok(c, user, "GetGrowth", fiber.StatusOK, "Growth record retrieved successfully", record)
}

func (gh *growthHandler) Update(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "UpdateGrowth", "growth id")
	}
	var req domain.GrowthPayload
	if handled, err := bind(c, user, "UpdateGrowth", &req); handled {
		return err
	}

	record, err := gh.uc.Update(c.Context(), userID, id, &req)
	if err != nil {
		return fail(c, user, "UpdateGrowth", err)
	}
	return ok(c, user, "UpdateGrowth", fiber.StatusOK, "Growth record updated successfully", record)
}

func (gh *growthHandler) Delete(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "DeleteGrowth", "growth id")
	}

	if err := gh.uc.Delete(c.Context(), userID, id); err != nil {
		return fail(c, user, "DeleteGrowth", err)
	}
	return ok(c, user, "DeleteGrowth", fiber.StatusOK, "Growth record deleted successfully", nil)
}
