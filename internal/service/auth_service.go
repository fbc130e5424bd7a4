package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"blogcms/internal/apperrors"
	"blogcms/internal/config"
	"blogcms/internal/models"
	"blogcms/internal/repository"
	"blogcms/internal/validation"
)

// AuthService owns accounts and the signed session credential.
type AuthService interface {
	SignUp(ctx context.Context, creds models.Credentials) (*models.User, string, error)
	Login(ctx context.Context, creds models.Credentials) (*models.User, string, error)
	IssueToken(user *models.User) (string, error)
	Verify(tokenString string) (*models.Principal, error)
}

type sessionClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo  repository.UserRepository
	validator *validation.Validator
	secret    []byte
	duration  time.Duration
	cost      int
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, v *validation.Validator, cfg *config.Config) AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepo:  userRepo,
		validator: v,
		secret:    []byte(cfg.JWTSecretKey),
		duration:  cfg.Session.Duration,
		cost:      cost,
		now:       time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, creds models.Credentials) (*models.User, string, error) {
	creds.Email = normalizeEmail(creds.Email)
	if err := s.validator.Validate(creds); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        creds.Email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login never tells the caller whether the email or the password was wrong.
func (s *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, string, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, "", apperrors.InvalidCredentials("invalid credentials")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.InvalidCredentials("invalid credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, "", apperrors.InvalidCredentials("invalid credentials")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := sessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Verify resolves a session token to its principal. Any malformed, tampered or
// expired token yields an Unauthorized error.
func (s *authService) Verify(tokenString string) (*models.Principal, error) {
	if tokenString == "" {
		return nil, apperrors.Unauthorized("unauthorized")
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthorized("unauthorized").WithCause(err)
	}

	if claims.UserID <= 0 {
		return nil, apperrors.Unauthorized("unauthorized")
	}

	return &models.Principal{UserID: claims.UserID, Email: claims.Email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
