package middleware

import (
	"babycare/config"
	"babycare/domain"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// LocalUser holds the *domain.Claims of an authenticated request.
	LocalUser      = "user"
	LocalRequestID = "request_id"
	HeaderRequest  = "X-Request-ID"
)

type JWTManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{key: []byte(secret), ttl: ttl, now: time.Now}
}

var _ domain.CredentialService = (*JWTManager)(nil)

func (m *JWTManager) GenerateJWT(user *domain.User) (string, error) {
	now := m.now()
	claims := &domain.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

func (m *JWTManager) VerifyJWT(tokenString string) (*domain.Claims, error) {
	claims := &domain.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AuthRequired accepts "Authorization: Bearer <token>" and stores the claims
// under LocalUser.
func AuthRequired(creds domain.CredentialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if header == "" || token == "" {
			config.PrintLogInfo(nil, fiber.StatusUnauthorized, "AuthRequired")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "No token provided",
				"data":    nil,
			})
		}

		claims, err := creds.VerifyJWT(token)
		if err != nil {
			config.PrintLogInfo(nil, fiber.StatusUnauthorized, "AuthRequired")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid token",
				"data":    nil,
			})
		}

		c.Locals(LocalUser, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the authenticated claims, or nil outside AuthRequired.
func ClaimsFrom(c *fiber.Ctx) *domain.Claims {
	claims, _ := c.Locals(LocalUser).(*domain.Claims)
	return claims
}

// RequestID tags each request with an id, reusing an inbound X-Request-ID,
// and writes one access log line when the handler chain returns.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequest)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequest, id)

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		config.GetLogrusInstance().WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		}).Debug("request served")
		return err
	}
}
