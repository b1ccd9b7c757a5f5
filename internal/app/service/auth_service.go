package service

import (
	"context"
	"fmt"
	"time"

	"quizhub/internal/common"
	"quizhub/internal/common/security"
	"quizhub/internal/domain/model"
	"quizhub/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// SignupRequest mirrors the legacy payload: the handle arrives as "name".
type SignupRequest struct {
	Name     string `json:"name"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResult struct {
	UserID string
	Token  string
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	if req.Name == "" || req.Fullname == "" || req.Email == "" || req.Password == "" {
		return nil, common.Errorf("name, fullname, email and password are required: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Name,
		Fullname:       req.Fullname,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		XP:             0,
		Level:          model.InitialLevel,
		XPToNextLevel:  model.InitialXPToNextLevel,
		DailyStreak:    0,
		LastSignedIn:   time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on duplicate username/email
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{UserID: user.ID, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		// Generic unauthorized for unknown users, not 404
		return nil, common.ErrUnauthorized
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{UserID: user.ID, Token: token}, nil
}
