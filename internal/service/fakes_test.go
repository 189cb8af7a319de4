package service_test

import (
	"context"
	"sync"

	"github.com/atik94/mobile-resale-market-server/internal/model"
	"github.com/atik94/mobile-resale-market-server/internal/repository"
	"github.com/atik94/mobile-resale-market-server/internal/service/stripe"

	"github.com/google/uuid"
)

// userRepoMock keeps users in memory keyed by email.
type userRepoMock struct {
	users     map[string]model.User
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
}

func newUserRepoMock(users ...model.User) *userRepoMock {
	m := &userRepoMock{users: map[string]model.User{}}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *userRepoMock) Create(ctx context.Context, u *model.User) error {
	if _, ok := m.users[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.ID = uuid.New()
	m.users[u.Email] = *u
	return nil
}

func (m *userRepoMock) List(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *userRepoMock) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *userRepoMock) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn != nil {
		return m.byEmailFn(ctx, email)
	}
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *userRepoMock) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	for email, u := range m.users {
		if u.ID == id {
			delete(m.users, email)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *userRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SellerStatus) (int64, error) {
	for email, u := range m.users {
		if u.ID == id {
			u.Status = status
			m.users[email] = u
			return 1, nil
		}
	}
	return 0, nil
}

// bookingRepoMock emulates RunAtomic by snapshotting state and restoring
// it when fn fails.
type bookingRepoMock struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]model.Booking
	payments []model.Payment

	markPaidErr error
}

func newBookingRepoMock() *bookingRepoMock {
	return &bookingRepoMock{bookings: map[uuid.UUID]model.Booking{}}
}

func (m *bookingRepoMock) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	savedPayments := append([]model.Payment(nil), m.payments...)
	savedBookings := make(map[uuid.UUID]model.Booking, len(m.bookings))
	for k, v := range m.bookings {
		savedBookings[k] = v
	}

	if err := fn(ctx); err != nil {
		m.payments = savedPayments
		m.bookings = savedBookings
		return err
	}
	return nil
}

func (m *bookingRepoMock) CreateBooking(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.New()
	m.bookings[b.ID] = *b
	return nil
}

func (m *bookingRepoMock) BookingsByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, b := range m.bookings {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *bookingRepoMock) BookingByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (m *bookingRepoMock) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (int64, error) {
	if m.markPaidErr != nil {
		return 0, m.markPaidErr
	}
	b, ok := m.bookings[id]
	if !ok {
		return 0, nil
	}
	b.Paid = true
	b.TransactionID = transactionID
	m.bookings[id] = b
	return 1, nil
}

func (m *bookingRepoMock) CreatePayment(ctx context.Context, p *model.Payment) error {
	p.ID = uuid.New()
	m.payments = append(m.payments, *p)
	return nil
}

type intentCreatorMock struct {
	calls []stripe.PaymentIntentParams
	err   error
}

func (m *intentCreatorMock) CreatePaymentIntent(ctx context.Context, params stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return nil, m.err
	}
	return &stripe.PaymentIntent{ClientSecret: "secret_for_" + uuid.NewString(), Amount: params.Amount}, nil
}
