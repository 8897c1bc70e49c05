package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grocerymart/backoffice-go/internal/domain/auth"
	"github.com/grocerymart/backoffice-go/internal/domain/staff"
	"github.com/grocerymart/backoffice-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	staff.StaffRepository
	jwt.Service
}

func NewAuthService(staffRepository staff.StaffRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		StaffRepository: staffRepository,
		Service:         jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	member, err := a.StaffRepository.GetByEmail(ctx, strings.ToLower(loginReq.Email))
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get staff by email: %w", err)
	}

	if member.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(member.ID, member.Email, member.Name, member.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		StaffID:              member.ID,
		Name:                 member.Name,
		Role:                 string(member.Role),
	}, nil
}
