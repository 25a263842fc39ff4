package service

import (
	"errors"
	"fmt"
	"time"

	"inza-store/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid admin password")
	ErrInvalidToken    = errors.New("invalid token")
)

// AdminClaims are the JWT claims carried by a dashboard session token.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminService is the dashboard password gate: a single shared password,
// compared against a bcrypt hash, trading for a short-lived session token.
type AdminService interface {
	Login(password string) (string, error)
	ValidateToken(tokenString string) (*AdminClaims, error)
}

type adminService struct {
	passwordHash  string
	jwtSecret     string
	sessionExpiry time.Duration
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(cfg config.AdminConfig) AdminService {
	return &adminService{
		passwordHash:  cfg.PasswordHash,
		jwtSecret:     cfg.JWTSecret,
		sessionExpiry: time.Duration(cfg.SessionExpiry) * time.Minute,
	}
}

// Login verifies the password and issues a session token
func (s *adminService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}

	now := time.Now()
	claims := &AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// ValidateToken validates a session token and returns its claims
func (s *adminService) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
