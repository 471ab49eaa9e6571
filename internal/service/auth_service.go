package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "roseboard/backend/internal/errors"
	"roseboard/backend/internal/model"
	"roseboard/backend/internal/repository"
)

const minPasswordLength = 6

// AuthService issues and verifies HS256 session tokens. It is the auth port
// the HTTP middleware depends on.
type AuthService struct {
	users     UserStore
	profiles  *ProfileService
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *log.Logger
}

func NewAuthService(
	users UserStore,
	profiles *ProfileService,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *log.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		profiles:  profiles,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

type AuthResult struct {
	Token   string         `json:"token"`
	User    model.User     `json:"user"`
	Profile *model.Profile `json:"profile,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, *apperrors.APIError) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return nil, apperrors.InvalidField("invalid_email", "email", "email is required")
	}
	if !strings.Contains(normalizedEmail, "@") {
		return nil, apperrors.InvalidField("invalid_email", "email", "email is invalid")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.InvalidField("invalid_password", "password", "password must be at least 6 characters")
	}

	_, err := s.users.GetByEmail(ctx, normalizedEmail)
	if err == nil {
		return nil, apperrors.Conflict("email_exists", "email already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("failed to query user", "email", normalizedEmail, "err", err)
		return nil, apperrors.Internal("failed to query user")
	}

	passwordHashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to secure password")
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        normalizedEmail,
		PasswordHash: string(passwordHashBytes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperrors.Conflict("email_exists", "email already registered")
		}
		s.logger.Error("failed to create user", "email", normalizedEmail, "err", err)
		return nil, apperrors.Internal("failed to create user")
	}
	s.logger.Info("registered user", "uid", user.ID)

	return s.signIn(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, *apperrors.APIError) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" || password == "" {
		return nil, apperrors.BadRequest("invalid_credentials", "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, normalizedEmail)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if err != nil {
		s.logger.Error("failed to query user", "email", normalizedEmail, "err", err)
		return nil, apperrors.Internal("failed to query user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("rejected login", "email", normalizedEmail)
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	return s.signIn(ctx, *user)
}

// signIn issues a token and records the login for the streak. A streak
// failure is logged and does not fail the sign-in.
func (s *AuthService) signIn(ctx context.Context, user model.User) (*AuthResult, *apperrors.APIError) {
	token, apiErr := s.issueToken(user)
	if apiErr != nil {
		return nil, apiErr
	}

	profile, err := s.profiles.RecordLogin(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to record login", "uid", user.ID, "err", err)
		profile = nil
	}

	user.PasswordHash = ""
	return &AuthResult{
		Token:   token,
		User:    user,
		Profile: profile,
	}, nil
}

func (s *AuthService) ParseToken(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", apperrors.Unauthorized("invalid token")
	}

	if claims.Subject == "" {
		return "", apperrors.Unauthorized("invalid token subject")
	}

	return claims.Subject, nil
}

func (s *AuthService) issueToken(user model.User) (string, *apperrors.APIError) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("failed to sign token", "uid", user.ID, "err", err)
		return "", apperrors.Internal("failed to sign token")
	}
	return signed, nil
}
