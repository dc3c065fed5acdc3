package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/googleauth"
	"github.com/chandrabharti/restaurant-api/internal/mailer"
)

// ---------- Mocks ----------

type mockUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, name, email string, phone, passwordHash, googleID *string, authMethod string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u := &domain.User{
		ID:           m.nextID,
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		GoogleID:     googleID,
		AuthMethod:   authMethod,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) SetBlocked(_ context.Context, id int64, blocked bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	if u == nil {
		return nil, nil
	}
	u.IsBlocked = blocked
	return u, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) SetResetCode(_ context.Context, email, codeHash string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			h, e := codeHash, expiresAt
			u.ResetCodeHash = &h
			u.ResetExpiresAt = &e
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockUserRepo) ResetPassword(_ context.Context, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			h := passwordHash
			u.PasswordHash = &h
			u.ResetCodeHash = nil
			u.ResetExpiresAt = nil
			return nil
		}
	}
	return pgx.ErrNoRows
}

type mockAdminRepo struct {
	mu     sync.Mutex
	nextID int64
	admins map[int64]*domain.Admin
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[int64]*domain.Admin)}
}

func (m *mockAdminRepo) Create(_ context.Context, name, email, passwordHash, role string) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a := &domain.Admin{
		ID:           m.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.admins[a.ID] = a
	return a, nil
}

func (m *mockAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAdminRepo) FindByID(_ context.Context, id int64) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admins[id], nil
}

func (m *mockAdminRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.admins)), nil
}

func (m *mockAdminRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.admins[id]
	if a == nil {
		return pgx.ErrNoRows
	}
	a.PasswordHash = passwordHash
	return nil
}

type mockBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[int64]*domain.Booking)}
}

func (m *mockBookingRepo) Create(_ context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b := &domain.Booking{
		ID:              m.nextID,
		UserID:          req.UserID,
		BookingType:     domain.BookingType(req.BookingType),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Guests:          req.Guests,
		BookingDate:     req.Date(),
		BookingTime:     req.BookingTime,
		SpecialRequests: req.SpecialRequests,
		ContactMethod:   domain.ContactMethod(req.ContactMethod),
		Status:          domain.BookingPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	m.bookings[b.ID] = b
	return b, nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id], nil
}

func (m *mockBookingRepo) ListByUser(_ context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) List(_ context.Context, limit, offset int) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bookings[id]
	if b == nil {
		return nil, nil
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return b, nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.bookings, id)
	return nil
}

func (m *mockBookingRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.bookings)), nil
}

func (m *mockBookingRepo) CountOnDate(_ context.Context, day time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.bookings {
		if b.BookingDate.Format("2006-01-02") == day.Format("2006-01-02") {
			n++
		}
	}
	return n, nil
}

type mockMessageRepo struct {
	mu       sync.Mutex
	nextID   int64
	messages map[int64]*domain.Message
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{messages: make(map[int64]*domain.Message)}
}

func (m *mockMessageRepo) Create(_ context.Context, req *domain.CreateMessageRequest) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	msg := &domain.Message{
		ID:        m.nextID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.messages[msg.ID] = msg
	return msg, nil
}

func (m *mockMessageRepo) List(_ context.Context, limit, offset int) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Message
	for _, msg := range m.messages {
		out = append(out, *msg)
	}
	return out, nil
}

func (m *mockMessageRepo) Reply(_ context.Context, id int64, reply string) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.messages[id]
	if msg == nil {
		return nil, nil
	}
	msg.ReplyMessage = reply
	msg.IsReplied = true
	return msg, nil
}

func (m *mockMessageRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.messages, id)
	return nil
}

func (m *mockMessageRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.messages)), nil
}

type publishedEvent struct {
	subject string
	data    interface{}
}

type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, subject string, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{subject: subject, data: data})
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) published(subject string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.subject == subject {
			n++
		}
	}
	return n
}

type mockGoogleVerifier struct {
	identities map[string]*googleauth.Identity
}

func (m *mockGoogleVerifier) Verify(_ context.Context, raw string) (*googleauth.Identity, error) {
	if id, ok := m.identities[raw]; ok {
		return id, nil
	}
	return nil, fmt.Errorf("invalid Google token")
}

type sentOTP struct {
	email string
	otp   string
}

type mockMailer struct {
	mu   sync.Mutex
	otps []sentOTP
}

func (m *mockMailer) SendOTPEmail(toEmail, toName, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps = append(m.otps, sentOTP{email: toEmail, otp: otp})
	return nil
}

func (m *mockMailer) SendBookingStatusEmail(string, mailer.BookingStatusDetails) error { return nil }

func (m *mockMailer) Ping() error { return nil }

func (m *mockMailer) otpCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.otps)
}
