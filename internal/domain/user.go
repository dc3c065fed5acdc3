package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// AuthMethod tags how an account proves its identity.
const (
	AuthMethodPassword = "password"
	AuthMethodGoogle   = "google"
)

// User is a customer account. Accounts created through Google login carry no
// password hash and an external GoogleID reference instead.
type User struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          *string    `json:"phone"`
	PasswordHash   *string    `json:"-"`
	GoogleID       *string    `json:"-"`
	AuthMethod     string     `json:"auth_method"`
	IsBlocked      bool       `json:"is_blocked"`
	ResetCodeHash  *string    `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	CaptchaToken    string `json:"captchaToken"`
}

type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"idToken"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type ForgotPasswordRequest struct {
	Email        string `json:"email"`
	CaptchaToken string `json:"captchaToken"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UserInfo is the account view returned to clients; never carries hashes.
type UserInfo struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	AuthMethod string  `json:"auth_method"`
	Role       string  `json:"role"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

func (r *SignupRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r *SignupRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Phone == "" || r.Password == "" || r.ConfirmPassword == "" {
		return fmt.Errorf("all fields are required")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func (r *GoogleAuthRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *GoogleAuthRequest) Validate() error {
	if r.IDToken == "" || r.Email == "" {
		return fmt.Errorf("token and email are required")
	}
	return nil
}

func (r *ForgotPasswordRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *ForgotPasswordRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func (r *ResetPasswordRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.OTP = strings.TrimSpace(r.OTP)
}

func (r *ResetPasswordRequest) Validate() error {
	if r.Email == "" || r.OTP == "" || r.NewPassword == "" || r.ConfirmPassword == "" {
		return fmt.Errorf("all fields are required")
	}
	if r.NewPassword != r.ConfirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	if !otpPattern.MatchString(r.OTP) {
		return fmt.Errorf("OTP must be 6 digits")
	}
	return nil
}

// ToUserInfo converts a User to its client-safe view with the given role tag.
func (u *User) ToUserInfo(role string) *UserInfo {
	return &UserInfo{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		AuthMethod: u.AuthMethod,
		Role:       role,
	}
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	otpPattern   = regexp.MustCompile(`^\d{6}$`)
)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
