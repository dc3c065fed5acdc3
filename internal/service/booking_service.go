package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/events"
	"github.com/chandrabharti/restaurant-api/internal/logger"
	"github.com/chandrabharti/restaurant-api/internal/repository"
)

type BookingService interface {
	Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	SetStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, id, userID int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	eventBus    events.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, eventBus events.Publisher) BookingService {
	return &bookingService{bookingRepo: bookingRepo, eventBus: eventBus}
}

func (s *bookingService) Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	booking, err := s.bookingRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publish(ctx, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:   booking.ID,
		Email:       booking.Email,
		Name:        booking.Name,
		BookingType: string(booking.BookingType),
		BookingDate: booking.BookingDate,
		BookingTime: booking.BookingTime,
		Guests:      booking.Guests,
		CreatedAt:   booking.CreatedAt,
	})

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	return booking, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// SetStatus moves a booking through the status machine. Re-applying the
// current status succeeds and re-publishes the notification event.
func (s *bookingService) SetStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}

	if !booking.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, booking.Status, status)
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}

	s.publish(ctx, events.BookingStatusChanged, events.BookingStatusChangedEvent{
		BookingID:   updated.ID,
		Email:       updated.Email,
		Name:        updated.Name,
		Status:      string(updated.Status),
		BookingType: string(updated.BookingType),
		BookingDate: updated.BookingDate,
		BookingTime: updated.BookingTime,
		Guests:      updated.Guests,
		ChangedAt:   time.Now(),
	})

	return updated, nil
}

// Cancel is the customer-facing path. Ownership is enforced here; the status
// change itself goes through the same machine as admin updates.
func (s *bookingService) Cancel(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	if booking.UserID == nil || *booking.UserID != userID {
		return nil, domain.ErrNotFound
	}

	return s.SetStatus(ctx, id, domain.BookingCancelled)
}

func (s *bookingService) Delete(ctx context.Context, id int64) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return mapNoRows(err)
	}
	return nil
}

func (s *bookingService) publish(ctx context.Context, subject string, event interface{}) {
	if err := s.eventBus.Publish(ctx, subject, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
