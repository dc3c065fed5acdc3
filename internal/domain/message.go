package domain

import (
	"fmt"
	"strings"
	"time"
)

// Message is a contact-form submission. Replies are written by
// administrators only.
type Message struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	ReplyMessage string    `json:"replyMessage"`
	IsReplied    bool      `json:"isReplied"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ReplyMessageRequest struct {
	ReplyMessage string `json:"replyMessage"`
}

func (r *CreateMessageRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Subject = strings.TrimSpace(r.Subject)
}

func (r *CreateMessageRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Phone == "" || r.Subject == "" || r.Message == "" {
		return fmt.Errorf("all fields are required")
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func (r *ReplyMessageRequest) Validate() error {
	if strings.TrimSpace(r.ReplyMessage) == "" {
		return fmt.Errorf("reply message is required")
	}
	return nil
}
