package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"wordgrid/internal/repository"
)

// ErrInvalidCredentials is returned when a login or token check fails. The
// caller gets no detail about which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates admins and issues API tokens
type AuthService struct {
	adminRepo     *repository.AdminRepository
	secret        []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new auth service. An empty secret disables the
// admin API entirely: tokens can be neither issued nor validated.
func NewAuthService(adminRepo *repository.AdminRepository, secret string, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		adminRepo:     adminRepo,
		secret:        []byte(secret),
		tokenDuration: tokenDuration,
	}
}

// Enabled reports whether admin auth is configured
func (s *AuthService) Enabled() bool {
	return len(s.secret) > 0
}

// EnsureBootstrapAdmin creates the configured admin account when no admin
// accounts exist yet. Called at startup; a blank username is a no-op, and a
// non-empty admins table is left alone.
func (s *AuthService) EnsureBootstrapAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	count, err := s.adminRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if _, err := s.adminRepo.Create(username, string(hash)); err != nil {
		return err
	}
	log.Printf("Created bootstrap admin %q", username)
	return nil
}

// Login verifies credentials and returns a signed token
func (s *AuthService) Login(username, password string) (string, error) {
	if !s.Enabled() {
		return "", ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(username)
}

// ValidateToken checks a bearer token and returns the admin username
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	if !s.Enabled() {
		return "", ErrInvalidCredentials
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}
	if claims.Subject == "" {
		return "", ErrInvalidCredentials
	}

	return claims.Subject, nil
}

func (s *AuthService) issueToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
