package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/config"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// Authentication failures.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrRoleNotGranted      = errors.New("account does not hold the requested role")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService issues and rotates token pairs for account holders.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error)
	Refresh(ctx context.Context, payload dto.RefreshRequest) (dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users     repository.UserRepository
	validator *validator.Validate
	cfg       config.Config
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds a new auth service.
func NewAuthService(users repository.UserRepository, validate *validator.Validate, cfg config.Config, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		validator: validate,
		cfg:       cfg,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenResponse{}, ErrInvalidCredentials
		}
		return dto.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	if !user.HasRole(payload.Role) {
		s.logger.Warn().Uint("user_id", user.ID).Str("role", payload.Role).Msg("login rejected: role not granted")
		return dto.TokenResponse{}, ErrRoleNotGranted
	}

	pair, err := s.issueTokens(&user)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	loginAt := s.now()
	user.LastLogin = &loginAt
	if err := s.users.Update(ctx, &user); err != nil {
		return dto.TokenResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", payload.Role).Msg("login succeeded")
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context, payload dto.RefreshRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	if _, err := s.parseRefreshToken(payload.RefreshToken); err != nil {
		return dto.TokenResponse{}, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByRefreshToken(ctx, payload.RefreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenResponse{}, ErrInvalidRefreshToken
		}
		return dto.TokenResponse{}, err
	}

	pair, err := s.issueTokens(&user)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.TokenResponse{}, err
	}

	return pair, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	user, err := s.users.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Logout is idempotent: an unknown token is already logged out.
			return nil
		}
		return err
	}

	user.RefreshToken = ""
	if err := s.users.Update(ctx, &user); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("logout")
	return nil
}

// issueTokens builds a fresh access/refresh pair and rotates the stored
// refresh token on the user.
func (s *authService) issueTokens(user *models.User) (dto.TokenResponse, error) {
	now := s.now()

	accessClaims := jwt.MapClaims{
		"UserInfo": map[string]interface{}{
			"id":        user.ID,
			"email":     user.Email,
			"roles":     []string(user.Roles),
			"firstName": user.FirstName,
			"lastName":  user.LastName,
		},
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.AccessTokenTTL).Unix(),
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshClaims := jwt.MapClaims{
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.RefreshTokenTTL).Unix(),
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.cfg.JWTRefreshSecret))
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("sign refresh token: %w", err)
	}

	user.RefreshToken = refresh
	return dto.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) parseRefreshToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.cfg.JWTRefreshSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidRefreshToken
	}
	return claims, nil
}
