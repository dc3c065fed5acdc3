package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"

	"github.com/chandrabharti/restaurant-api/internal/auth"
	"github.com/chandrabharti/restaurant-api/internal/config"
	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/googleauth"
	"github.com/chandrabharti/restaurant-api/internal/logger"
	"github.com/chandrabharti/restaurant-api/internal/mailer"
	"github.com/chandrabharti/restaurant-api/internal/repository"
)

type AuthService interface {
	Signup(ctx context.Context, req *domain.SignupRequest) (*domain.LoginResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	GoogleLogin(ctx context.Context, req *domain.GoogleAuthRequest) (*domain.LoginResponse, error)
	ForgotPassword(ctx context.Context, req *domain.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *domain.ResetPasswordRequest) error
	Profile(ctx context.Context, userID int64) (*domain.UserInfo, error)
}

type authService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	google    googleauth.Verifier
	mailer    mailer.Service
	config    *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	google googleauth.Verifier,
	mailer mailer.Service,
	config *config.Config,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		google:    google,
		mailer:    mailer,
		config:    config,
	}
}

func (s *authService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Name, req.Email, &req.Phone, &passwordHash, nil, domain.AuthMethodPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.loginResponse(user)
}

// Login resolves a single email across both identity spaces. The admin table
// is checked first; a matching admin row settles the attempt either way, so a
// wrong admin password never falls through to the customer flow.
func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	admin, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin: %w", err)
	}
	if admin != nil {
		valid, err := argon2id.ComparePasswordAndHash(req.Password, admin.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("failed to verify password: %w", err)
		}
		if !valid {
			return nil, domain.ErrInvalidCredentials
		}

		token, err := auth.NewAccessToken(admin.ID, admin.Email, admin.Role, s.config.Auth.JWTSecret, s.config.Auth.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create token: %w", err)
		}

		return &domain.LoginResponse{
			Token: token,
			User: &domain.UserInfo{
				ID:         admin.ID,
				Name:       admin.Name,
				Email:      admin.Email,
				AuthMethod: domain.AuthMethodPassword,
				Role:       admin.Role,
			},
		}, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.AuthMethod == domain.AuthMethodGoogle || user.PasswordHash == nil {
		return nil, domain.ErrWrongAuthMethod
	}
	if user.IsBlocked {
		return nil, domain.ErrAccountBlocked
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, *user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	return s.loginResponse(user)
}

func (s *authService) GoogleLogin(ctx context.Context, req *domain.GoogleAuthRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	identity, err := s.google.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	email := req.Email
	if identity.Email != "" {
		email = identity.Email
	}
	name := req.Name
	if identity.Name != "" {
		name = identity.Name
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil {
		user, err = s.userRepo.Create(ctx, name, email, nil, nil, &identity.Subject, domain.AuthMethodGoogle)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		logger.InfoContext(ctx, "Created account via Google sign-in", "user_id", user.ID)
		return s.loginResponse(user)
	}

	if user.IsBlocked {
		return nil, domain.ErrAccountBlocked
	}
	if user.AuthMethod != domain.AuthMethodGoogle {
		return nil, domain.ErrWrongAuthMethod
	}

	return s.loginResponse(user)
}

func (s *authService) ForgotPassword(ctx context.Context, req *domain.ForgotPasswordRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.AuthMethod == domain.AuthMethodGoogle {
		return domain.ErrWrongAuthMethod
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	codeHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}

	expiresAt := time.Now().Add(s.config.Auth.ResetCodeTTL)
	if err := s.userRepo.SetResetCode(ctx, user.Email, string(codeHash), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	// Delivery is best effort; the code is already persisted and the caller
	// gets success regardless of mail outcome.
	go func(email, name, otp string) {
		if err := s.mailer.SendOTPEmail(email, name, otp); err != nil {
			logger.Error("Failed to send OTP email", "error", err, "email", email)
		}
	}(user.Email, user.Name, otp)

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *domain.ResetPasswordRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.ResetCodeHash == nil || user.ResetExpiresAt == nil {
		return domain.ErrNoCodeRequested
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.ResetCodeHash), []byte(req.OTP)); err != nil {
		return domain.ErrInvalidCode
	}
	if time.Now().After(*user.ResetExpiresAt) {
		return domain.ErrCodeExpired
	}

	passwordHash, err := argon2id.CreateHash(req.NewPassword, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ResetPassword(ctx, user.Email, passwordHash); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	logger.InfoContext(ctx, "Password reset completed", "user_id", user.ID)
	return nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user.ToUserInfo(auth.RoleUser), nil
}

func (s *authService) loginResponse(user *domain.User) (*domain.LoginResponse, error) {
	token, err := auth.NewAccessToken(user.ID, user.Email, auth.RoleUser, s.config.Auth.JWTSecret, s.config.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}
	return &domain.LoginResponse{Token: token, User: user.ToUserInfo(auth.RoleUser)}, nil
}

// generateOTP draws a uniform six digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
