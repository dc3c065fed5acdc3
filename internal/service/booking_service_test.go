package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/events"
	"github.com/chandrabharti/restaurant-api/internal/service"
)

func bookingReq() *domain.CreateBookingRequest {
	return &domain.CreateBookingRequest{
		BookingType: "table",
		Name:        "Ravi Kumar",
		Email:       "ravi@example.com",
		Phone:       "9876543210",
		Guests:      4,
		BookingDate: "2026-09-15",
		BookingTime: "19:30",
	}
}

func TestCreateBookingPublishesEvent(t *testing.T) {
	repo := newMockBookingRepo()
	bus := &mockPublisher{}
	svc := service.NewBookingService(repo, bus)

	booking, err := svc.Create(context.Background(), bookingReq())
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, domain.ContactEmail, booking.ContactMethod)
	assert.Equal(t, 1, bus.published(events.BookingCreated))
}

func TestCreateBookingInvalidType(t *testing.T) {
	svc := service.NewBookingService(newMockBookingRepo(), &mockPublisher{})

	req := bookingReq()
	req.BookingType = "boat"
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestCreateBookingSurvivesPublishFailure(t *testing.T) {
	repo := newMockBookingRepo()
	bus := &mockPublisher{err: assert.AnError}
	svc := service.NewBookingService(repo, bus)

	booking, err := svc.Create(context.Background(), bookingReq())
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
}

func TestSetStatusTransitions(t *testing.T) {
	repo := newMockBookingRepo()
	bus := &mockPublisher{}
	svc := service.NewBookingService(repo, bus)
	ctx := context.Background()

	booking, err := svc.Create(ctx, bookingReq())
	require.NoError(t, err)

	updated, err := svc.SetStatus(ctx, booking.ID, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, updated.Status)
	assert.Equal(t, 1, bus.published(events.BookingStatusChanged))

	// Re-applying the same status is allowed and re-notifies.
	_, err = svc.SetStatus(ctx, booking.ID, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 2, bus.published(events.BookingStatusChanged))

	// Confirmed cannot become rejected.
	_, err = svc.SetStatus(ctx, booking.ID, domain.BookingRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.SetStatus(ctx, booking.ID, domain.BookingCancelled)
	require.NoError(t, err)

	// Cancelled is terminal.
	_, err = svc.SetStatus(ctx, booking.ID, domain.BookingConfirmed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSetStatusUnknownBooking(t *testing.T) {
	svc := service.NewBookingService(newMockBookingRepo(), &mockPublisher{})

	_, err := svc.SetStatus(context.Background(), 404, domain.BookingConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelOwnership(t *testing.T) {
	repo := newMockBookingRepo()
	bus := &mockPublisher{}
	svc := service.NewBookingService(repo, bus)
	ctx := context.Background()

	userID := int64(7)
	req := bookingReq()
	req.UserID = &userID
	booking, err := svc.Create(ctx, req)
	require.NoError(t, err)

	// A different account cannot see or cancel it.
	_, err = svc.Cancel(ctx, booking.ID, 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cancelled, err := svc.Cancel(ctx, booking.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	// Cancelling again is a same-status re-application.
	_, err = svc.Cancel(ctx, booking.ID, userID)
	assert.NoError(t, err)
}

func TestCancelRejectedBooking(t *testing.T) {
	repo := newMockBookingRepo()
	svc := service.NewBookingService(repo, &mockPublisher{})
	ctx := context.Background()

	userID := int64(7)
	req := bookingReq()
	req.UserID = &userID
	booking, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, booking.ID, domain.BookingRejected)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, booking.ID, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeleteBooking(t *testing.T) {
	repo := newMockBookingRepo()
	svc := service.NewBookingService(repo, &mockPublisher{})
	ctx := context.Background()

	booking, err := svc.Create(ctx, bookingReq())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, booking.ID))
	assert.ErrorIs(t, svc.Delete(ctx, booking.ID), domain.ErrNotFound)
}
