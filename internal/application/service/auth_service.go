package service

import (
	"context"

	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	"github.com/slowlifemotors/garage-pos/internal/domain/repository"
	"github.com/slowlifemotors/garage-pos/pkg/apperror"
	"github.com/slowlifemotors/garage-pos/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService resolves register logins to staff identities. Session
// mechanics end here; everything downstream trusts the token claims.
type AuthService struct {
	staffRepo  repository.StaffRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repository.StaffRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{staffRepo: staffRepo, jwtManager: jwtManager}
}

// LoginResult carries the issued tokens and the staff profile
type LoginResult struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Staff        *entity.Staff `json:"staff"`
}

// Login authenticates a staff member by email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !staff.Active {
		return nil, apperror.NewAppError(403, "Staff account is deactivated")
	}

	return s.issueTokens(staff)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	staffID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || !staff.Active {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(staff)
}

func (s *AuthService) issueTokens(staff *entity.Staff) (*LoginResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(staff.ID, staff.Email, staff.Role.Name, staff.Role.CommissionPercent)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(staff.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Staff:        staff,
	}, nil
}
