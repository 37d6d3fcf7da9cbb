package service

import (
	"context"
	"errors"
	"log"
	"os"

	"reforma-backend/internal/model"
	"reforma-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for Request validation
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// AuthService handles dashboard sign-in for the advisory team.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	SeedAdmin(ctx context.Context) error
}

type authService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
}

func NewAuthService(userRepo repository.UserRepository, auditRepo repository.AuditRepository) AuthService {
	return &authService{userRepo: userRepo, auditRepo: auditRepo}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	// Generate JWT Token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
	})

	// Use same fallback strategy as middleware for simplicity here
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	// Best-effort audit; a logging failure never blocks the login
	if err := s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     &user.ID,
		Action:     model.ActionLogin,
		EntityID:   user.ID.String(),
		EntityName: user.Email,
	}); err != nil {
		log.Printf("Warning: failed to write login audit log: %v", err)
	}

	return &TokenResponse{Token: tokenString}, nil
}

// SeedAdmin creates the dashboard admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no account with that email exists yet. A missing
// configuration is not an error: the public API works without any user.
func (s *authService) SeedAdmin(ctx context.Context) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash admin password")
	}

	user := &model.User{
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Printf("Seeded admin account %s", email)
	return nil
}
