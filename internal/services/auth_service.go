package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"github.com/giveawayhq/sweepstakes-backend/internal/config"
	"github.com/giveawayhq/sweepstakes-backend/internal/models"
	"github.com/giveawayhq/sweepstakes-backend/internal/repositories"
	"github.com/giveawayhq/sweepstakes-backend/internal/utils"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles operator authentication
type AuthServiceImpl struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{adminRepo: adminRepo, cfg: cfg}
}

// Login verifies the credentials and issues a JWT.
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			slog.Warn("Login attempt for unknown admin", "email", utils.MaskEmail(req.Email))
			return nil, ErrInvalidCredentials
		}
		slog.Error("Failed to look up admin user", "error", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("Login attempt with wrong password", "email", utils.MaskEmail(req.Email))
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Second * time.Duration(s.cfg.JWT.ExpiresIn))
	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, s.cfg)
	if err != nil {
		slog.Error("Failed to sign JWT", "error", err)
		return nil, err
	}

	slog.Info("Admin logged in", "email", utils.MaskEmail(user.Email), "role", user.Role)
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// CreateAdmin registers a new dashboard operator with a bcrypt password hash.
func (s *AuthServiceImpl) CreateAdmin(ctx context.Context, email, password, role string) (*models.AdminUser, error) {
	if _, err := s.adminRepo.FindByEmail(ctx, email); err == nil {
		return nil, errors.New("an admin with this email already exists")
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}
	if role == "" {
		role = "operator"
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		slog.Error("Failed to create admin user", "email", utils.MaskEmail(email), "error", err)
		return nil, err
	}
	return user, nil
}
