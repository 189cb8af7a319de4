package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/atik94/mobile-resale-market-server/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

const userColumns = "id, name, email, role, status, created_at"

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	var role, status string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &status, &u.CreatedAt)
	u.Role = model.Role(role)
	u.Status = model.SellerStatus(status)
	return u, err
}

func (r *UserRepository) collect(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.store.executor(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts u and fills in its generated id and timestamp.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	if u.Role == "" {
		u.Role = model.RoleBuyer
	}
	_, err := r.store.executor(ctx).Exec(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		u.ID, u.Name, u.Email, string(u.Role), string(u.Status), u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	return r.collect(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at")
}

func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return r.collect(ctx, "SELECT "+userColumns+" FROM users WHERE role = $1 ORDER BY created_at", string(role))
}

// ByEmail returns ErrNotFound when no user has the given email.
func (r *UserRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.store.executor(ctx).QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.store.executor(ctx).Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SellerStatus) (int64, error) {
	tag, err := r.store.executor(ctx).Exec(ctx, "UPDATE users SET status = $1 WHERE id = $2", string(status), id)
	if err != nil {
		return 0, fmt.Errorf("failed to update user status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.store.count(ctx, "SELECT COUNT(*) FROM users")
}
