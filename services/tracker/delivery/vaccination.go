package delivery

import (
	"babycare/config"
	"babycare/domain"
	"babycare/middleware"

	"github.com/gofiber/fiber/v2"
)

type vaccinationHandler struct {
	uc domain.VaccinationUseCase
}

func NewVaccinationDelivery(app *fiber.App, uc domain.VaccinationUseCase, creds domain.CredentialService) {
	handler := &vaccinationHandler{
		uc: uc,
	}
	auth := middleware.AuthRequired(creds)

	route := app.Group("/vaccinations")
	route.Get("/child/:childId", auth, handler.ListByChild)
	route.Post("/child/:childId", auth, handler.Create)
	route.Get("/child/:childId/due", auth, handler.Due)
	route.Get("/child/:childId/overdue", auth, handler.Overdue)
	route.Get("/child/:childId/progress", auth, handler.Progress)
	route.Get("/child/:childId/schedule", auth, handler.Schedule)
	route.Get("/child/:childId/card.png", auth, handler.Card)
	route.Get("/:id", auth, handler.Get)
	route.Put("/:id", auth, handler.Update)
	route.Delete("/:id", auth, handler.Delete)
	route.Patch("/:id/complete", auth, handler.Complete)
	route.Patch("/:id/uncomplete", auth, handler.Uncomplete)
}

func (vh *vaccinationHandler) Create(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "CreateVaccination", "child id")
	}
	var req domain.VaccinationPayload
	if handled, err := bind(c, user, "CreateVaccination", &req); handled {
		return err
	}

	v, err := vh.uc.Create(c.Context(), userID, childID, &req)
	if err != nil {
		return fail(c, user, "CreateVaccination", err)
	}
	return ok(c, user, "CreateVaccination", fiber.StatusCreated, "Vaccination scheduled", v)
}

func (vh *vaccinationHandler) ListByChild(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "ListVaccinations", "child id")
	}

	list, err := vh.uc.ListByChild(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "ListVaccinations", err)
	}
	return okList(c, user, "ListVaccinations", "Vaccinations retrieved successfully", list)
}

func (vh *vaccinationHandler) Due(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "DueVaccinations", "child id")
	}

	list, err := vh.uc.Due(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "DueVaccinations", err)
	}
	return okList(c, user, "DueVaccinations", "Vaccinations due this month", list)
}

func (vh *vaccinationHandler) Overdue(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "OverdueVaccinations", "child id")
	}

	list, err := vh.uc.Overdue(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "OverdueVaccinations", err)
	}
	return okList(c, user, "OverdueVaccinations", "Overdue vaccinations", list)
}

func (vh *vaccinationHandler) Progress(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "VaccinationProgress", "child id")
	}

	progress, err := vh.uc.Progress(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "VaccinationProgress", err)
	}
	return ok(c, user, "VaccinationProgress", fiber.StatusOK, "Vaccination progress retrieved", progress)
}

func (vh *vaccinationHandler) Schedule(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "VaccinationSchedule", "child id")
	}

	months, err := vh.uc.Schedule(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "VaccinationSchedule", err)
	}
	return okList(c, user, "VaccinationSchedule", "Vaccination schedule retrieved", months)
}

// Card renders the vaccination summary as a QR code PNG.
func (vh *vaccinationHandler) Card(c *fiber.Ctx) error {
	userID, user := caller(c)
	childID, valid := pathID(c, "childId")
	if !valid {
		return invalidID(c, user, "VaccinationCard", "child id")
	}

	card, err := vh.uc.Card(c.Context(), userID, childID)
	if err != nil {
		return fail(c, user, "VaccinationCard", err)
	}
	png, err := vaccinationCardPNG(card)
	if err != nil {
		return fail(c, user, "VaccinationCard", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	config.PrintLogInfo(user, fiber.StatusOK, "VaccinationCard")
	return c.Status(fiber.StatusOK).Send(png)
}

func (vh *vaccinationHandler) Get(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "GetVaccination", "vaccination id")
	}

	v, err := vh.uc.Get(c.Context(), userID, id)
	if err != nil {
		return fail(c, user, "GetVaccination", err)
	}
	return ok(c, user, "GetVaccination", fiber.StatusOK, "Vaccination retrieved successfully", v)
}

func (vh *vaccinationHandler) Update(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "UpdateVaccination", "vaccination id")
	}
	var req domain.VaccinationPayload
	if handled, err := bind(c, user, "UpdateVaccination", &req); handled {
		return err
	}

	v, err := vh.uc.Update(c.Context(), userID, id, &req)
	if err != nil {
		return fail(c, user, "UpdateVaccination", err)
	}
	return ok(c, user, "UpdateVaccination", fiber.StatusOK, "Vaccination updated successfully", v)
}

func (vh *vaccinationHandler) Complete(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "CompleteVaccination", "vaccination id")
	}
	var req domain.CompletionPayload
	if len(c.Body()) > 0 {
		if handled, err := bind(c, user, "CompleteVaccination", &req); handled {
			return err
		}
	}

	v, err := vh.uc.Complete(c.Context(), userID, id, &req)
	if err != nil {
		return fail(c, user, "CompleteVaccination", err)
	}
	return ok(c, user, "CompleteVaccination", fiber.StatusOK, "Vaccination marked as completed", v)
}

func (vh *vaccinationHandler) Uncomplete(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "UncompleteVaccination", "vaccination id")
	}

	v, err := vh.uc.Uncomplete(c.Context(), userID, id)
	if err != nil {
		return fail(c, user, "UncompleteVaccination", err)
	}
	return ok(c, user, "UncompleteVaccination", fiber.StatusOK, "Vaccination marked as not completed", v)
}

func (vh *vaccinationHandler) Delete(c *fiber.Ctx) error {
	userID, user := caller(c)
	id, valid := pathID(c, "id")
	if !valid {
		return invalidID(c, user, "DeleteVaccination", "vaccination id")
	}

	if err := vh.uc.Delete(c.Context(), userID, id); err != nil {
		return fail(c, user, "DeleteVaccination", err)
	}
	return ok(c, user, "DeleteVaccination", fiber.StatusOK, "Vaccination deleted successfully", nil)
}
