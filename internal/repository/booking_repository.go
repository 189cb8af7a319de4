package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/atik94/mobile-resale-market-server/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	store *Store
}

func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store}
}

// RunAtomic executes fn within a transaction shared by the booking and
// payment writes made through ctx.
func (r *BookingRepository) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.store.RunAtomic(ctx, fn)
}

const bookingColumns = "id, email, product_id, product_name, buyer_name, phone, location, resale_price, paid, transaction_id, attributes, created_at"

func scanBooking(row pgx.Row) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.Email, &b.ProductID, &b.ProductName, &b.BuyerName, &b.Phone, &b.Location,
		&b.ResalePrice, &b.Paid, &b.TransactionID, &b.Attributes, &b.CreatedAt)
	return b, err
}

// CreateBooking stores b as sent by the buyer. Paid starts false.
func (r *BookingRepository) CreateBooking(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.New()
	b.CreatedAt = time.Now().UTC()
	b.Paid = false
	b.TransactionID = ""
	if b.Attributes == nil {
		b.Attributes = map[string]any{}
	}
	_, err := r.store.executor(ctx).Exec(ctx,
		"INSERT INTO bookings ("+bookingColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
		b.ID, b.Email, b.ProductID, b.ProductName, b.BuyerName, b.Phone, b.Location,
		b.ResalePrice, b.Paid, b.TransactionID, b.Attributes, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) BookingsByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	rows, err := r.store.executor(ctx).Query(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE email = $1 ORDER BY created_at", email)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) BookingByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, err := scanBooking(r.store.executor(ctx).QueryRow(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "booking")
	}
	return &b, nil
}

// MarkPaid flags the booking as paid and attaches the transaction id.
// It reports how many bookings matched.
func (r *BookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (int64, error) {
	tag, err := r.store.executor(ctx).Exec(ctx,
		"UPDATE bookings SET paid = true, transaction_id = $1 WHERE id = $2", transactionID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to mark booking paid: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) CreatePayment(ctx context.Context, p *model.Payment) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	_, err := r.store.executor(ctx).Exec(ctx,
		"INSERT INTO payments (id, booking_id, transaction_id, amount, email, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		p.ID, p.BookingID, p.TransactionID, p.Amount, p.Email, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// CountBookings counts all bookings, or only paid ones.
func (r *BookingRepository) CountBookings(ctx context.Context, paidOnly bool) (int64, error) {
	if paidOnly {
		return r.store.count(ctx, "SELECT COUNT(*) FROM bookings WHERE paid")
	}
	return r.store.count(ctx, "SELECT COUNT(*) FROM bookings")
}
