package delivery

import (
	"babycare/domain"
	"babycare/middleware"

	"github.com/gofiber/fiber/v2"
)

type authHandler struct {
	uc domain.AuthUseCase
}

func NewAuthDelivery(app *fiber.App, uc domain.AuthUseCase, creds domain.CredentialService) {
	handler := &authHandler{
		uc: uc,
	}

	route := app.Group("/auth")
	route.Post("/register", handler.Register)
	route.Post("/login", handler.Login)
	route.Get("/profile", middleware.AuthRequired(creds), handler.Profile)
}

func (ah *authHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if handled, err := bind(c, nil, "Register", &req); handled {
		return err
	}

	user, err := ah.uc.Register(c.Context(), &req)
	if err != nil {
		return fail(c, &req.Email, "Register", err)
	}
	return ok(c, &user.Email, "Register", fiber.StatusCreated, "Account created successfully", user)
}

func (ah *authHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if handled, err := bind(c, nil, "Login", &req); handled {
		return err
	}

	res, err := ah.uc.Login(c.Context(), &req)
	if err != nil {
		return fail(c, &req.Email, "Login", err)
	}
	return ok(c, &res.User.Email, "Login", fiber.StatusOK, "Login successful", res)
}

func (ah *authHandler) Profile(c *fiber.Ctx) error {
	userID, user := caller(c)

	profile, err := ah.uc.Profile(c.Context(), userID)
	if err != nil {
		return fail(c, user, "Profile", err)
	}
	return ok(c, user, "Profile", fiber.StatusOK, "Profile retrieved successfully", profile)
}
