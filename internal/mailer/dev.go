package mailer

import (
	"github.com/chandrabharti/restaurant-api/internal/logger"
)

// DevMailer logs outbound mail instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendOTPEmail(toEmail, toName, otp string) error {
	logger.Info("[DEV MAIL] OTP Email",
		"to", toEmail,
		"name", toName,
		"otp", otp,
	)
	return nil
}

func (d *DevMailer) SendBookingStatusEmail(toEmail string, details BookingStatusDetails) error {
	logger.Info("[DEV MAIL] Booking Status Email",
		"to", toEmail,
		"name", details.Name,
		"status", details.Status,
		"booking_type", details.BookingType,
		"date", details.BookingDate,
		"time", details.BookingTime,
		"guests", details.Guests,
	)
	return nil
}

func (d *DevMailer) Ping() error {
	return nil
}
