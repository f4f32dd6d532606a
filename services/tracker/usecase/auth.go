package usecase

import (
	"babycare/domain"
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type authUseCase struct {
	users   domain.UserRepo
	creds   domain.CredentialService
	TimeOut time.Duration
}

func NewAuthUseCase(users domain.UserRepo, creds domain.CredentialService, to time.Duration) domain.AuthUseCase {
	return &authUseCase{
		users:   users,
		creds:   creds,
		TimeOut: to,
	}
}

func (auc *authUseCase) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash password")
	}

	user := &domain.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    normalizeEmail(req.Email),
		Password: string(hashed),
	}
	if err := auc.users.CreateUser(ctx, user); err != nil {
		return nil, storageFault(err, "failed to register user")
	}
	return user, nil
}

func (auc *authUseCase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	user, err := auc.users.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized("Invalid email or password")
		}
		return nil, storageFault(err, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.Unauthorized("Invalid email or password")
	}

	token, err := auc.creds.GenerateJWT(user)
	if err != nil {
		return nil, errors.Wrap(err, "could not issue token")
	}
	return &domain.LoginResponse{Token: token, User: *user}, nil
}

func (auc *authUseCase) Profile(ctx context.Context, userID int) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	user, err := auc.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, storageFault(err, "failed to load profile")
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
