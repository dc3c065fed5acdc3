package domain

import (
	"fmt"
	"strings"
	"time"
)

// Admin is an administrator principal. Administrators live in their own
// table and never overlap with customer accounts.
type Admin struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AdminInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AdminLoginResponse struct {
	Token string     `json:"token"`
	Admin *AdminInfo `json:"admin"`
}

type BootstrapAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalBookings int64 `json:"totalBookings"`
	TodayBookings int64 `json:"todayBookings"`
	TotalMessages int64 `json:"totalMessages"`
}

func (r *BootstrapAdminRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *BootstrapAdminRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return fmt.Errorf("name, email and password are required")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func (r *ChangePasswordRequest) Validate() error {
	if r.OldPassword == "" || r.NewPassword == "" || r.ConfirmPassword == "" {
		return fmt.Errorf("all fields are required")
	}
	if r.NewPassword != r.ConfirmPassword {
		return fmt.Errorf("new passwords do not match")
	}
	if len(r.NewPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func (a *Admin) ToAdminInfo() *AdminInfo {
	return &AdminInfo{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
