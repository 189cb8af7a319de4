package service

import (
	"context"
	"fmt"

	"github.com/atik94/mobile-resale-market-server/internal/model"

	"golang.org/x/sync/errgroup"
)

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ProductCounter interface {
	CountProducts(ctx context.Context) (int64, error)
}

type BookingCounter interface {
	CountBookings(ctx context.Context, paidOnly bool) (int64, error)
}

type StatsService struct {
	users    UserCounter
	products ProductCounter
	bookings BookingCounter
}

func NewStatsService(users UserCounter, products ProductCounter, bookings BookingCounter) *StatsService {
	return &StatsService{users: users, products: products, bookings: bookings}
}

// Stats runs the four counts concurrently; the first failure cancels the rest.
func (s *StatsService) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.Users, err = s.users.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		stats.Products, err = s.products.CountProducts(ctx)
		if err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		stats.Bookings, err = s.bookings.CountBookings(ctx, false)
		if err != nil {
			return fmt.Errorf("failed to count bookings: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		stats.PaidBookings, err = s.bookings.CountBookings(ctx, true)
		if err != nil {
			return fmt.Errorf("failed to count paid bookings: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.Stats{}, err
	}
	return stats, nil
}
