package notify_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chandrabharti/restaurant-api/internal/events"
	"github.com/chandrabharti/restaurant-api/internal/mailer"
	"github.com/chandrabharti/restaurant-api/internal/notify"
)

type fakeBus struct {
	handlers map[string]func(*events.Message)
}

func newFakeBus() *fakeBus {
	return &fakeBus{handlers: make(map[string]func(*events.Message))}
}

func (f *fakeBus) QueueSubscribe(subject, _ string, handler func(*events.Message)) error {
	f.handlers[subject] = handler
	return nil
}

func (f *fakeBus) Close() error { return nil }

func (f *fakeBus) deliver(t *testing.T, subject string, event interface{}) {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	handler, ok := f.handlers[subject]
	require.True(t, ok, "no handler for %s", subject)
	handler(&events.Message{Subject: subject, Data: data, Timestamp: time.Now()})
}

type recordingMailer struct {
	statusEmails []mailer.BookingStatusDetails
	recipients   []string
	err          error
}

func (m *recordingMailer) SendOTPEmail(string, string, string) error { return nil }

func (m *recordingMailer) SendBookingStatusEmail(toEmail string, details mailer.BookingStatusDetails) error {
	if m.err != nil {
		return m.err
	}
	m.recipients = append(m.recipients, toEmail)
	m.statusEmails = append(m.statusEmails, details)
	return nil
}

func (m *recordingMailer) Ping() error { return nil }

func TestWorkerSendsStatusEmail(t *testing.T) {
	bus := newFakeBus()
	mail := &recordingMailer{}
	require.NoError(t, notify.NewWorker(bus, mail).Start())

	bus.deliver(t, events.BookingStatusChanged, events.BookingStatusChangedEvent{
		BookingID:   42,
		Email:       "ravi@example.com",
		Name:        "Ravi",
		Status:      "confirmed",
		BookingType: "table",
		BookingTime: "19:30",
		Guests:      4,
	})

	require.Len(t, mail.statusEmails, 1)
	assert.Equal(t, "ravi@example.com", mail.recipients[0])
	assert.Equal(t, "confirmed", mail.statusEmails[0].Status)
}

func TestWorkerSendsBookingReceipt(t *testing.T) {
	bus := newFakeBus()
	mail := &recordingMailer{}
	require.NoError(t, notify.NewWorker(bus, mail).Start())

	bus.deliver(t, events.BookingCreated, events.BookingCreatedEvent{
		BookingID: 1,
		Email:     "ravi@example.com",
		Name:      "Ravi",
	})

	require.Len(t, mail.statusEmails, 1)
	assert.Equal(t, "pending", mail.statusEmails[0].Status)
}

func TestWorkerSurvivesMailFailure(t *testing.T) {
	bus := newFakeBus()
	mail := &recordingMailer{err: fmt.Errorf("smtp down")}
	require.NoError(t, notify.NewWorker(bus, mail).Start())

	// Must not panic; the failure is logged and dropped.
	bus.deliver(t, events.BookingStatusChanged, events.BookingStatusChangedEvent{BookingID: 1})
	assert.Empty(t, mail.statusEmails)
}

func TestWorkerIgnoresMalformedPayload(t *testing.T) {
	bus := newFakeBus()
	mail := &recordingMailer{}
	require.NoError(t, notify.NewWorker(bus, mail).Start())

	bus.handlers[events.BookingStatusChanged](&events.Message{
		Subject: events.BookingStatusChanged,
		Data:    []byte("not json"),
	})
	assert.Empty(t, mail.statusEmails)
}
