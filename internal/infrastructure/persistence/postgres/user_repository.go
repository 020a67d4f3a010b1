package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
	"github.com/openmarket/marketplace-service/internal/domain/market"
	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
)

const pqUniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{db: conn.GetDB()}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *market.User) error {
	query := `
		INSERT INTO users (id, username, email, paypal, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "users", query,
		user.ID, user.Username, user.Email, user.PayPal, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domainErrors.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*market.User, error) {
	query := `
		SELECT id, username, email, paypal, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "users", query, username)
	return scanUser(row)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*market.User, error) {
	query := `
		SELECT id, username, email, paypal, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "users", query, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*market.User, error) {
	var u market.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PayPal, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
