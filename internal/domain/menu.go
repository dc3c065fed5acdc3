package domain

import (
	"fmt"
	"strings"
	"time"
)

var menuCategories = map[string]bool{
	"Veg":        true,
	"Non-Veg":    true,
	"Drinks":     true,
	"Desserts":   true,
	"Appetizers": true,
}

func IsValidMenuCategory(category string) bool {
	return menuCategories[category]
}

type MenuItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	PriceHalf   *float64  `json:"priceHalf,omitempty"`
	PriceFull   *float64  `json:"priceFull,omitempty"`
	Image       string    `json:"image"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateMenuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	PriceHalf   *float64 `json:"priceHalf,omitempty"`
	PriceFull   *float64 `json:"priceFull,omitempty"`
	Image       string   `json:"image"`
}

// UpdateMenuItemRequest carries a partial update; nil fields are untouched.
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	PriceHalf   *float64 `json:"priceHalf,omitempty"`
	PriceFull   *float64 `json:"priceFull,omitempty"`
	Image       *string  `json:"image,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
}

func (r *CreateMenuItemRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
}

func (r *CreateMenuItemRequest) Validate() error {
	if r.Name == "" || r.Category == "" || r.Price == 0 {
		return fmt.Errorf("name, category, and price are required")
	}
	if !IsValidMenuCategory(r.Category) {
		return fmt.Errorf("invalid category")
	}
	if r.Price < 0 {
		return fmt.Errorf("price must be positive")
	}
	return nil
}

func (r *UpdateMenuItemRequest) Validate() error {
	if r.Category != nil && !IsValidMenuCategory(*r.Category) {
		return fmt.Errorf("invalid category")
	}
	if r.Price != nil && *r.Price < 0 {
		return fmt.Errorf("price must be positive")
	}
	return nil
}
