// Package events carries best-effort notifications out of the request path.
// Booking and contact handlers publish here; the notify worker subscribes
// and sends email. A failed publish never fails the primary operation.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/chandrabharti/restaurant-api/internal/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Subjects
const (
	BookingCreated        = "booking.created"
	BookingStatusChanged  = "booking.status_changed"
	ContactMessageCreated = "contact.message_created"
)

type BookingCreatedEvent struct {
	BookingID   int64     `json:"booking_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	BookingType string    `json:"booking_type"`
	BookingDate time.Time `json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	Guests      int       `json:"guests"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingStatusChangedEvent struct {
	BookingID   int64     `json:"booking_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	BookingType string    `json:"booking_type"`
	BookingDate time.Time `json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	Guests      int       `json:"guests"`
	ChangedAt   time.Time `json:"changed_at"`
}

type ContactMessageCreatedEvent struct {
	MessageID int64     `json:"message_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}
