package domain

import "errors"

// Sentinel errors the HTTP layer maps onto status codes. Services wrap these
// with fmt.Errorf and %w so callers can errors.Is them.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account has been blocked by admin")
	ErrWrongAuthMethod    = errors.New("wrong authentication method for this account")
	ErrNoCodeRequested    = errors.New("OTP not requested")
	ErrInvalidCode        = errors.New("invalid OTP")
	ErrCodeExpired        = errors.New("OTP has expired")
	ErrInvalidTransition  = errors.New("booking status transition not allowed")
	ErrAdminExists        = errors.New("admin already exists")
)
