// Package notify consumes booking events off the bus and sends the customer
// emails. It runs inside the API process but stays off the request path:
// handlers answer as soon as the event is published.
package notify

import (
	"encoding/json"

	"github.com/chandrabharti/restaurant-api/internal/events"
	"github.com/chandrabharti/restaurant-api/internal/logger"
	"github.com/chandrabharti/restaurant-api/internal/mailer"
	"github.com/chandrabharti/restaurant-api/internal/metrics"
)

const queueGroup = "notify-workers"

type Worker struct {
	bus    events.Subscriber
	mailer mailer.Service
}

func NewWorker(bus events.Subscriber, mailer mailer.Service) *Worker {
	return &Worker{bus: bus, mailer: mailer}
}

// Start registers the queue subscriptions. Delivery failures are logged and
// counted, never retried; a booking is valid whether or not its email landed.
func (w *Worker) Start() error {
	if err := w.bus.QueueSubscribe(events.BookingStatusChanged, queueGroup, w.handleStatusChanged); err != nil {
		return err
	}
	if err := w.bus.QueueSubscribe(events.BookingCreated, queueGroup, w.handleBookingCreated); err != nil {
		return err
	}
	if err := w.bus.QueueSubscribe(events.ContactMessageCreated, queueGroup, w.handleContactCreated); err != nil {
		return err
	}

	logger.Info("Notification worker started", "queue", queueGroup)
	return nil
}

func (w *Worker) handleStatusChanged(msg *events.Message) {
	var event events.BookingStatusChangedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode event", "subject", msg.Subject, "error", err)
		return
	}

	err := w.mailer.SendBookingStatusEmail(event.Email, mailer.BookingStatusDetails{
		Name:        event.Name,
		Status:      event.Status,
		BookingType: event.BookingType,
		BookingDate: event.BookingDate,
		BookingTime: event.BookingTime,
		Guests:      event.Guests,
	})
	if err != nil {
		metrics.IncNotification("booking_status", "failure")
		logger.Error("Failed to send booking status email",
			"booking_id", event.BookingID, "status", event.Status, "error", err)
		return
	}

	metrics.IncNotification("booking_status", "success")
	logger.Info("Sent booking status email", "booking_id", event.BookingID, "status", event.Status)
}

func (w *Worker) handleBookingCreated(msg *events.Message) {
	var event events.BookingCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode event", "subject", msg.Subject, "error", err)
		return
	}

	err := w.mailer.SendBookingStatusEmail(event.Email, mailer.BookingStatusDetails{
		Name:        event.Name,
		Status:      "pending",
		BookingType: event.BookingType,
		BookingDate: event.BookingDate,
		BookingTime: event.BookingTime,
		Guests:      event.Guests,
	})
	if err != nil {
		metrics.IncNotification("booking_created", "failure")
		logger.Error("Failed to send booking receipt email", "booking_id", event.BookingID, "error", err)
		return
	}

	metrics.IncNotification("booking_created", "success")
}

// Contact messages are answered by staff; the event only feeds the audit log.
func (w *Worker) handleContactCreated(msg *events.Message) {
	var event events.ContactMessageCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode event", "subject", msg.Subject, "error", err)
		return
	}
	logger.Info("Contact message received", "message_id", event.MessageID, "subject", event.Subject)
}
