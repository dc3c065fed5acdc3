package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendOTPEmail(toEmail, toName, otp string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Your OTP Code"
	text := fmt.Sprintf("Your OTP is %s. Valid for 5 minutes.", otp)
	html := fmt.Sprintf(`
		<h2>Your OTP Code</h2>
		<p>Hi %s,</p>
		<p>Your one-time password is: <strong style="font-size: 24px;">%s</strong></p>
		<p>This code is valid for 5 minutes.</p>
		<p>If you didn't request this, please ignore this email.</p>
	`, toName, otp)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendBookingStatusEmail(toEmail string, d BookingStatusDetails) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := fmt.Sprintf("Your booking has been %s", d.Status)
	date := d.BookingDate.Format("Monday, 02 Jan 2006")
	text := fmt.Sprintf("Hi %s, your %s booking for %d guests on %s at %s is now %s.",
		d.Name, d.BookingType, d.Guests, date, d.BookingTime, d.Status)
	html := fmt.Sprintf(`
		<h2>Booking %s</h2>
		<p>Hi %s,</p>
		<p>Your <strong>%s</strong> booking is now <strong>%s</strong>.</p>
		<ul>
			<li>Date: %s</li>
			<li>Time: %s</li>
			<li>Guests: %d</li>
		</ul>
	`, d.Status, d.Name, d.BookingType, d.Status, date, d.BookingTime, d.Guests)

	return m.sendEmail(toEmail, d.Name, subject, text, html)
}

func (m *MailerSendClient) Ping() error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}
	return nil
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
