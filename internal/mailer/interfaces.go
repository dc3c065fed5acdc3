package mailer

import (
	"time"

	"github.com/chandrabharti/restaurant-api/internal/logger"
)

// BookingStatusDetails is everything the booking-status template needs.
type BookingStatusDetails struct {
	Name        string
	Status      string
	BookingType string
	BookingDate time.Time
	BookingTime string
	Guests      int
}

type Service interface {
	SendOTPEmail(toEmail, toName, otp string) error
	SendBookingStatusEmail(toEmail string, details BookingStatusDetails) error
	// Ping checks outbound connectivity. Used only at startup.
	Ping() error
}

// WarmUp probes the mailer a fixed number of times at startup. It is purely
// informational: a dead mail server never blocks request handling.
func WarmUp(s Service, attempts int, delay time.Duration) {
	for i := 1; i <= attempts; i++ {
		if err := s.Ping(); err == nil {
			logger.Info("Email server is ready")
			return
		} else if i < attempts {
			logger.Warn("Email server not reachable, retrying", "attempt", i, "error", err)
			time.Sleep(delay)
		} else {
			logger.Error("Email server configuration error; outbound mail will fail", "error", err)
		}
	}
}
