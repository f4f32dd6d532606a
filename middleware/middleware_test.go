package middleware

import (
	"babycare/domain"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateJWT(&domain.User{UserID: 7, Email: "ana@example.com"})
	require.NoError(t, err)

	claims, err := m.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestJWTManager_RejectsExpiredAndForeignTokens(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := m.GenerateJWT(&domain.User{UserID: 7})
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).VerifyJWT(expired)
	assert.Error(t, err)

	foreign, err := NewJWTManager("other", time.Hour).GenerateJWT(&domain.User{UserID: 7})
	require.NoError(t, err)
	_, err = m.VerifyJWT(foreign)
	assert.Error(t, err)
}

func newProtectedApp(m *JWTManager) *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/me", AuthRequired(m), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": ClaimsFrom(c).UserID})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	app := newProtectedApp(m)
	token, err := m.GenerateJWT(&domain.User{UserID: 3})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"bare scheme", "Bearer ", fiber.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"valid token", "Bearer " + token, fiber.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if c.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, c.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, c.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(HeaderRequest))
		})
	}
}

func TestRequestID_ReusesInboundHeader(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalRequestID).(string))
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(HeaderRequest, "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "req-123", string(body))
	assert.Equal(t, "req-123", resp.Header.Get(HeaderRequest))
}
