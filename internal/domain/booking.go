package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingRejected, BookingCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// transitions is the closed set of allowed status changes. Rejected and
// cancelled are terminal. Re-applying the current status is always allowed
// (handled in CanTransitionTo) so repeated admin confirms stay idempotent.
var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingRejected, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
	BookingRejected:  {},
	BookingCancelled: {},
}

// CanTransitionTo reports whether a booking in the receiver status may move
// to next. Same-status re-application is permitted.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no different status is reachable from s.
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

type BookingType string

const (
	BookingTable BookingType = "table"
	BookingRoom  BookingType = "room"
	BookingHall  BookingType = "hall"
)

func ParseBookingType(s string) (BookingType, bool) {
	switch BookingType(s) {
	case BookingTable, BookingRoom, BookingHall:
		return BookingType(s), true
	default:
		return "", false
	}
}

type ContactMethod string

const (
	ContactWhatsApp ContactMethod = "whatsapp"
	ContactEmail    ContactMethod = "email"
	ContactPhone    ContactMethod = "phone"
)

func ParseContactMethod(s string) (ContactMethod, bool) {
	switch ContactMethod(s) {
	case ContactWhatsApp, ContactEmail, ContactPhone:
		return ContactMethod(s), true
	default:
		return "", false
	}
}

// Booking is a reservation request. UserID is a weak reference to an
// account; guest bookings leave it nil.
type Booking struct {
	ID              int64         `json:"id"`
	UserID          *int64        `json:"user_id,omitempty"`
	BookingType     BookingType   `json:"booking_type"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Guests          int           `json:"guests"`
	BookingDate     time.Time     `json:"booking_date"`
	BookingTime     string        `json:"booking_time"`
	SpecialRequests string        `json:"special_requests"`
	ContactMethod   ContactMethod `json:"contact_method"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type CreateBookingRequest struct {
	UserID          *int64 `json:"userId,omitempty"`
	BookingType     string `json:"bookingType"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Guests          int    `json:"guests"`
	BookingDate     string `json:"bookingDate"`
	BookingTime     string `json:"bookingTime"`
	SpecialRequests string `json:"specialRequests"`
	ContactMethod   string `json:"contactMethod"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

func (r *CreateBookingRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.ContactMethod == "" {
		r.ContactMethod = string(ContactEmail)
	}
}

func (r *CreateBookingRequest) Validate() error {
	if r.BookingType == "" || r.Name == "" || r.Email == "" || r.Phone == "" ||
		r.Guests == 0 || r.BookingDate == "" || r.BookingTime == "" {
		return fmt.Errorf("all required fields must be filled")
	}
	if _, ok := ParseBookingType(r.BookingType); !ok {
		return fmt.Errorf("invalid booking type")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if r.Guests < 1 {
		return fmt.Errorf("guests must be at least 1")
	}
	if _, err := time.Parse("2006-01-02", r.BookingDate); err != nil {
		return fmt.Errorf("invalid booking date")
	}
	if _, ok := ParseContactMethod(r.ContactMethod); !ok {
		return fmt.Errorf("invalid contact method")
	}
	return nil
}

// Date returns the parsed booking date. Validate must have passed.
func (r *CreateBookingRequest) Date() time.Time {
	d, _ := time.Parse("2006-01-02", r.BookingDate)
	return d
}
