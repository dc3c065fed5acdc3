package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chandrabharti/restaurant-api/internal/auth"
	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/service"
)

type adminFixture struct {
	svc         service.AdminService
	adminRepo   *mockAdminRepo
	userRepo    *mockUserRepo
	bookingRepo *mockBookingRepo
	messageRepo *mockMessageRepo
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		adminRepo:   newMockAdminRepo(),
		userRepo:    newMockUserRepo(),
		bookingRepo: newMockBookingRepo(),
		messageRepo: newMockMessageRepo(),
	}
	f.svc = service.NewAdminService(f.adminRepo, f.userRepo, f.bookingRepo, f.messageRepo, testConfig())
	return f
}

func bootstrapReq() *domain.BootstrapAdminRequest {
	return &domain.BootstrapAdminRequest{
		Name:     "Owner",
		Email:    "owner@example.com",
		Password: "ownerpass123",
	}
}

func TestBootstrapFirstAdmin(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	info, err := f.svc.Bootstrap(ctx, bootstrapReq())
	require.NoError(t, err)
	assert.Equal(t, auth.RoleOwner, info.Role)

	// Only the very first bootstrap succeeds.
	_, err = f.svc.Bootstrap(ctx, &domain.BootstrapAdminRequest{
		Name: "Second", Email: "second@example.com", Password: "secondpass1",
	})
	assert.ErrorIs(t, err, domain.ErrAdminExists)
}

func TestAdminLogin(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	_, err := f.svc.Bootstrap(ctx, bootstrapReq())
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "ghost@example.com", "ownerpass123")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Login(ctx, "owner@example.com", "wrongpass123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	resp, err := f.svc.Login(ctx, "owner@example.com", "ownerpass123")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleOwner, resp.Admin.Role)
	assert.NotEmpty(t, resp.Token)
}

func TestChangePassword(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	info, err := f.svc.Bootstrap(ctx, bootstrapReq())
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, info.ID, &domain.ChangePasswordRequest{
		OldPassword: "wrongpass123", NewPassword: "newownerpass", ConfirmPassword: "newownerpass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = f.svc.ChangePassword(ctx, info.ID, &domain.ChangePasswordRequest{
		OldPassword: "ownerpass123", NewPassword: "newownerpass", ConfirmPassword: "newownerpass",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "owner@example.com", "ownerpass123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, "owner@example.com", "newownerpass")
	assert.NoError(t, err)
}

func TestDashboardStats(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	_, err := f.userRepo.Create(ctx, "Ravi", "ravi@example.com", nil, nil, nil, domain.AuthMethodPassword)
	require.NoError(t, err)

	bookingSvc := service.NewBookingService(f.bookingRepo, &mockPublisher{})
	_, err = bookingSvc.Create(ctx, bookingReq())
	require.NoError(t, err)

	_, err = f.messageRepo.Create(ctx, &domain.CreateMessageRequest{
		Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210", Subject: "Hi", Message: "Hello",
	})
	require.NoError(t, err)

	stats, err := f.svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalBookings)
	assert.EqualValues(t, 1, stats.TotalMessages)
	assert.EqualValues(t, 0, stats.TodayBookings)
}

func TestBlockAndDeleteUser(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	user, err := f.userRepo.Create(ctx, "Ravi", "ravi@example.com", nil, nil, nil, domain.AuthMethodPassword)
	require.NoError(t, err)

	blocked, err := f.svc.SetUserBlocked(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)

	unblocked, err := f.svc.SetUserBlocked(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked)

	_, err = f.svc.SetUserBlocked(ctx, 9999, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.svc.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, user.ID), domain.ErrNotFound)
}
