package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/chandrabharti/restaurant-api/internal/auth"
	"github.com/chandrabharti/restaurant-api/internal/config"
	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/logger"
	"github.com/chandrabharti/restaurant-api/internal/repository"
)

type AdminService interface {
	Bootstrap(ctx context.Context, req *domain.BootstrapAdminRequest) (*domain.AdminInfo, error)
	Login(ctx context.Context, email, password string) (*domain.AdminLoginResponse, error)
	ChangePassword(ctx context.Context, adminID int64, req *domain.ChangePasswordRequest) error
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	SetUserBlocked(ctx context.Context, userID int64, blocked bool) (*domain.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type adminService struct {
	adminRepo   repository.AdminRepository
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	messageRepo repository.MessageRepository
	config      *config.Config
}

func NewAdminService(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	messageRepo repository.MessageRepository,
	config *config.Config,
) AdminService {
	return &adminService{
		adminRepo:   adminRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		messageRepo: messageRepo,
		config:      config,
	}
}

// Bootstrap creates the first administrator. It refuses once any admin row
// exists; further admins are created out of band.
func (s *adminService) Bootstrap(ctx context.Context, req *domain.BootstrapAdminRequest) (*domain.AdminInfo, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil, domain.ErrAdminExists
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := s.adminRepo.Create(ctx, req.Name, req.Email, passwordHash, auth.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	logger.InfoContext(ctx, "Bootstrapped first administrator", "admin_id", admin.ID)
	return admin.ToAdminInfo(), nil
}

func (s *adminService) Login(ctx context.Context, email, password string) (*domain.AdminLoginResponse, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	if admin == nil {
		return nil, domain.ErrNotFound
	}

	valid, err := argon2id.ComparePasswordAndHash(password, admin.PasswordHash)
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

	return &domain.AdminLoginResponse{Token: token, Admin: admin.ToAdminInfo()}, nil
}

func (s *adminService) ChangePassword(ctx context.Context, adminID int64, req *domain.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("failed to find admin: %w", err)
	}
	if admin == nil {
		return domain.ErrNotFound
	}

	valid, err := argon2id.ComparePasswordAndHash(req.OldPassword, admin.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return domain.ErrInvalidCredentials
	}

	passwordHash, err := argon2id.CreateHash(req.NewPassword, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.adminRepo.UpdatePassword(ctx, adminID, passwordHash); err != nil {
		return mapNoRows(err)
	}
	return nil
}

func (s *adminService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	bookings, err := s.bookingRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	today, err := s.bookingRepo.CountOnDate(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to count today's bookings: %w", err)
	}
	messages, err := s.messageRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	return &domain.DashboardStats{
		TotalUsers:    users,
		TotalBookings: bookings,
		TodayBookings: today,
		TotalMessages: messages,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *adminService) SetUserBlocked(ctx context.Context, userID int64, blocked bool) (*domain.User, error) {
	user, err := s.userRepo.SetBlocked(ctx, userID, blocked)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return mapNoRows(err)
	}
	return nil
}
