package delivery

import (
	"babycare/config"
	"babycare/domain"
	"babycare/middleware"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type feedingHandler struct {
	uc domain.FeedingUseCase
}

func NewFeedingDelivery(app *fiber.App, uc domain.FeedingUseCase, creds domain.CredentialService) {
	handler := &feedingHandler{
		uc: uc,
	}
	auth := middleware.AuthRequired(creds)

	route := app.Group("/feedings")
	route.Get("/child/:childId", auth, handler.ListByChild)
	route.Post("/child/:childId", auth, handler.Create)
	route.Get("/child/:childId/today", auth, handler.Today)
	route.Get("/child/:childId/date/:date", auth, handler.ByDate)
	route.Get("/child/:childId/weekly", auth, handler.Weekly)
	route.Get("/child/:childId/monthly", auth, handler.Monthly)
	route.Get("/child/:childId/export", auth, handler.Export)
	route.Get("/:id", auth, handler.Get)
	route.Put("/:id", auth, handler.Update)
	route.Delete("/:id", auth, handler.Delete)
}

func (fh *feedingHandler) Create(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "CreateFeeding", "child id")
	}
	var req domain.FeedingPayload
	if handled, err := bind(c, user, "CreateFeeding", &req); handled {
		return err
	}

	feeding, err := fh.uc.Create(c.Context(), userID, childID, &req)
	if err != nil {
		return fail(c, user, "CreateFeeding", err)
	}
	return ok(c, user, "CreateFeeding", fiber.StatusCreated, "Feeding recorded", feeding)
}

func (fh *feedingHandler) ListByChild(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "ListFeedings", "child id")
	}

	feedings, err := fh.uc.ListByChild(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "ListFeedings", err)
	}
	return okList(c, user, "ListFeedings", "Feedings retrieved successfully", feedings)
}

func (fh *feedingHandler) Today(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "TodayFeedings", "child id")
	}

	summary, err := fh.uc.Today(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "TodayFeedings", err)
	}
	return ok(c, user, "TodayFeedings", fiber.StatusOK, "Today's feeding summary", summary)
}

func (fh *feedingHandler) ByDate(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "FeedingsByDate", "child id")
	}

	summary, records, err := fh.uc.ByDate(c.Context(), userID, childID, c.Params("date"))
	if err != nil {
		return fail(c, user, "FeedingsByDate", err)
	}
	return ok(c, user, "FeedingsByDate", fiber.StatusOK, "Feeding summary retrieved", fiber.Map{
		"summary":  summary,
		"feedings": records,
		"count":    len(records),
	})
}

func (fh *feedingHandler) Weekly(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "WeeklyFeedings", "child id")
	}

	period, err := fh.uc.Weekly(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "WeeklyFeedings", err)
	}
	return ok(c, user, "WeeklyFeedings", fiber.StatusOK, "Weekly feeding summary", period)
}

func (fh *feedingHandler) Monthly(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "MonthlyFeedings", "child id")
	}

	period, err := fh.uc.Monthly(c.Context(), userID, childID, c.Query("month"))
	if err != nil {
		return fail(c, user, "MonthlyFeedings", err)
	}
	return ok(c, user, "MonthlyFeedings", fiber.StatusOK, "Monthly feeding summary", period)
}

// Export streams the monthly report as an xlsx workbook.
func (fh *feedingHandler) Export(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "ExportFeedings", "child id")
	}

	period, records, err := fh.uc.MonthlyReport(c.Context(), userID, childID, c.Query("month"))
	if err != nil {
		return fail(c, user, "ExportFeedings", err)
	}
	workbook, err := buildFeedingWorkbook(period, records)
	if err != nil {
		return fail(c, user, "ExportFeedings", err)
	}

	filename := fmt.Sprintf("feedings_%d_%s.xlsx", childID, period.StartDate[:7])
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set(fiber.HeaderContentType, xlsxMIME)

	config.PrintLogInfo(user, fiber.StatusOK, "ExportFeedings")
	return c.Status(fiber.StatusOK).Send(workbook)
}

func (fh *feedingHandler) Get(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "GetFeeding", "feeding id")
	}

	feeding, err := fh.uc.Get(c.Context(), userID, id)
	if err != nil {
		return fail(c, user, "GetFeeding", err)
	}
	return ok(c, user, "GetFeeding", fiber.StatusOK, "Feeding retrieved successfully", feeding)
}

func (fh *feedingHandler) Update(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "UpdateFeeding", "feeding id")
	}
	var req domain.FeedingPayload
	if handled, err := bind(c, user, "UpdateFeeding", &req); handled {
		return err
	}

	feeding, err := fh.uc.Update(c.Context(), userID, id, &req)
	if err != nil {
		return fail(c, user, "UpdateFeeding", err)
	}
	return ok(c, user, "UpdateFeeding", fiber.StatusOK, "Feeding updated successfully", feeding)
}

func (fh *feedingHandler) Delete(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "DeleteFeeding", "feeding id")
	}

	if err := fh.uc.Delete(c.Context(), userID, id); err != nil {
		return fail(c, user, "DeleteFeeding", err)
	}
	return ok(c, user, "DeleteFeeding", fiber.StatusOK, "Feeding deleted successfully", nil)
}
