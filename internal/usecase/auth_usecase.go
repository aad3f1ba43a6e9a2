package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/slatrack/slatrack/internal/domain"
	"github.com/slatrack/slatrack/internal/ports"
)

// ErrInvalidCredentials is returned on a failed login attempt
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthUseCase authenticates operator accounts and issues access tokens
type AuthUseCase struct {
	userRepo        ports.UserRepository
	passwordService ports.PasswordService
	tokenService    ports.TokenService
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(userRepo ports.UserRepository, passwordService ports.PasswordService, tokenService ports.TokenService) *AuthUseCase {
	return &AuthUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Login verifies credentials and returns a signed access token
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := uc.passwordService.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := uc.tokenService.GenerateAccessToken(ports.TokenClaims{
		UserID: user.ID,
		Role:   string(user.Role),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
