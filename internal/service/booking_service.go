package service

import (
	"context"
	"errors"
	"math"

	"github.com/atik94/mobile-resale-market-server/internal/model"
	"github.com/atik94/mobile-resale-market-server/internal/service/stripe"

	"github.com/google/uuid"
)

var (
	ErrInvalidPrice    = errors.New("resale price must be a positive number")
	ErrBookingNotFound = errors.New("booking not found")
)

type BookingRepository interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
	CreateBooking(ctx context.Context, b *model.Booking) error
	BookingsByEmail(ctx context.Context, email string) ([]model.Booking, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (int64, error)
	CreatePayment(ctx context.Context, p *model.Payment) error
}

type PaymentIntentCreator interface {
	CreatePaymentIntent(ctx context.Context, params stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type BookingService struct {
	repo     BookingRepository
	payments PaymentIntentCreator
}

func NewBookingService(repo BookingRepository, payments PaymentIntentCreator) *BookingService {
	return &BookingService{repo: repo, payments: payments}
}

// CreateBooking stores the booking without checking the product or price.
func (s *BookingService) CreateBooking(ctx context.Context, b *model.Booking) (model.InsertResult, error) {
	if err := s.repo.CreateBooking(ctx, b); err != nil {
		return model.InsertResult{}, err
	}
	return model.Inserted(b.ID), nil
}

func (s *BookingService) BookingsByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return s.repo.BookingsByEmail(ctx, email)
}

func (s *BookingService) Booking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.repo.BookingByID(ctx, id)
}

// MinorUnits converts a price to an integer amount of cents.
func MinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidPrice
	}
	return int64(math.Round(price * 100)), nil
}

// CreatePaymentIntent requests a card-only intent for the booking price and
// returns its client secret. No idempotency key is sent, so repeated calls
// create independent intents.
func (s *BookingService) CreatePaymentIntent(ctx context.Context, resalePrice float64, bookingID string) (string, error) {
	amount, err := MinorUnits(resalePrice)
	if err != nil {
		return "", err
	}

	params := stripe.PaymentIntentParams{
		Amount:             amount,
		Currency:           "usd",
		PaymentMethodTypes: []string{"card"},
	}
	if bookingID != "" {
		params.Metadata = map[string]string{"booking_id": bookingID}
	}

	intent, err := s.payments.CreatePaymentIntent(ctx, params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// RecordPayment stores the payment and marks its booking paid in one
// transaction. If the booking does not exist nothing is written.
func (s *BookingService) RecordPayment(ctx context.Context, p *model.Payment) (model.InsertResult, error) {
	err := s.repo.RunAtomic(ctx, func(ctx context.Context) error {
		// 1. Insert payment
		if err := s.repo.CreatePayment(ctx, p); err != nil {
			return err
		}

		// 2. Flag booking
		n, err := s.repo.MarkPaid(ctx, p.BookingID, p.TransactionID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrBookingNotFound
		}

		return nil
	})
	if err != nil {
		return model.InsertResult{}, err
	}
	return model.Inserted(p.ID), nil
}
