package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"project-tracker/backend/internal/apperror"
	"project-tracker/backend/internal/config"
	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/repositories"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgMissingCredentials = "Please provide email and password"
	msgEmailTaken         = "Email already registered"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidToken       = "Invalid or expired token"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (uuid.UUID, error)
}

// TokenClaims is the bearer token payload: the user id plus iat and exp.
type TokenClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type AuthServiceImpl struct {
	users  repositories.UserRepository
	hasher PasswordHasher
	secret []byte
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuthService(users repositories.UserRepository, hasher PasswordHasher, cfg config.AuthConfig, logger zerolog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:  users,
		hasher: hasher,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		logger: logger.With().Str("service", "auth").Logger(),
		now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		s.logger.Warn().Msg("registration rejected: missing email or password")
		return nil, apperror.Validation(msgMissingCredentials)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		s.logger.Warn().Str("email", email).Msg("registration rejected: email already registered")
		return nil, apperror.Conflict(msgEmailTaken)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.Internal("failed to look up user", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.Validation("Password must be at most 72 bytes")
		}
		return nil, apperror.Internal("failed to hash password", err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperror.Conflict(msgEmailTaken)
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	s.logger.Info().Str("email", email).Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

// Login answers the same error for an unknown email and a wrong password.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		s.logger.Warn().Str("email", email).Msg("login rejected: missing email or password")
		return "", apperror.Validation(msgMissingCredentials)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn().Str("email", email).Msg("login failed: unknown email")
			return "", apperror.Auth(msgInvalidCredentials)
		}
		return "", apperror.Internal("failed to look up user", err)
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		s.logger.Warn().Str("email", email).Msg("login failed: wrong password")
		return "", apperror.Auth(msgInvalidCredentials)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", apperror.Internal("failed to sign token", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return token, nil
}

func (s *AuthServiceImpl) issueToken(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := TokenClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies signature and expiry and returns the embedded user id.
// Only HS256 is accepted.
func (s *AuthServiceImpl) ParseToken(token string) (uuid.UUID, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, &apperror.Error{Kind: apperror.KindAuth, Message: msgInvalidToken, Err: err}
	}

	userID, err := uuid.FromString(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, &apperror.Error{Kind: apperror.KindAuth, Message: msgInvalidToken, Err: fmt.Errorf("bad userId claim %q", claims.UserID)}
	}
	return userID, nil
}
