// Package repo contains all database access logic for textbus.
// Each table has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tmarsh/textbus/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RiderRepo defines the persistence operations for riders.
// The service and handler layers depend on this interface, not the concrete
// Postgres implementation, so they can be unit-tested with a mock.
type RiderRepo interface {
	// GetByNumber retrieves a rider by phone number.
	// Returns domain.ErrNotFound if the number has never texted in.
	GetByNumber(ctx context.Context, number string) (domain.Rider, error)

	// Create inserts a new, unapproved rider for a number seen for the
	// first time and returns the persisted record.
	Create(ctx context.Context, number string) (domain.Rider, error)

	// SetTwelveHour persists the clock-format preference.
	// Returns domain.ErrNotFound if the rider does not exist.
	SetTwelveHour(ctx context.Context, number string, twelveHour bool) error

	// SetApproved flips the approval flag.
	// Returns domain.ErrNotFound if the rider does not exist.
	SetApproved(ctx context.Context, number string, approved bool) error

	// List returns all riders ordered by created_at ascending.
	List(ctx context.Context) ([]domain.Rider, error)
}

// pgRiderRepo is the Postgres implementation of RiderRepo.
type pgRiderRepo struct {
	db db
}

// NewRiderRepo constructs a RiderRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRiderRepo(db db) RiderRepo {
	return &pgRiderRepo{db: db}
}

const riderColumns = "number, name, approved, admin, twelve_hour, created_at, updated_at"

func (r *pgRiderRepo) GetByNumber(ctx context.Context, number string) (domain.Rider, error) {
	const q = `
		SELECT ` + riderColumns + `
		FROM riders
		WHERE number = @number`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"number": number})
	rider, err := scanRider(row)
	if err != nil {
		return domain.Rider{}, fmt.Errorf("repo.RiderRepo.GetByNumber: %w", err)
	}
	return rider, nil
}

func (r *pgRiderRepo) Create(ctx context.Context, number string) (domain.Rider, error) {
	const q = `
		INSERT INTO riders (number)
		VALUES (@number)
		RETURNING ` + riderColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"number": number})
	rider, err := scanRider(row)
	if err != nil {
		return domain.Rider{}, fmt.Errorf("repo.RiderRepo.Create: %w", err)
	}
	return rider, nil
}

func (r *pgRiderRepo) SetTwelveHour(ctx context.Context, number string, twelveHour bool) error {
	const q = `
		UPDATE riders
		SET twelve_hour = @twelve_hour, updated_at = now()
		WHERE number = @number`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"number": number, "twelve_hour": twelveHour})
	if err != nil {
		return fmt.Errorf("repo.RiderRepo.SetTwelveHour: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RiderRepo.SetTwelveHour: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgRiderRepo) SetApproved(ctx context.Context, number string, approved bool) error {
	const q = `
		UPDATE riders
		SET approved = @approved, updated_at = now()
		WHERE number = @number`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"number": number, "approved": approved})
	if err != nil {
		return fmt.Errorf("repo.RiderRepo.SetApproved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RiderRepo.SetApproved: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgRiderRepo) List(ctx context.Context) ([]domain.Rider, error) {
	const q = `
		SELECT ` + riderColumns + `
		FROM riders
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RiderRepo.List: %w", err)
	}
	defer rows.Close()

	var riders []domain.Rider
	for rows.Next() {
		rider, err := scanRider(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RiderRepo.List: scan: %w", err)
		}
		riders = append(riders, rider)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RiderRepo.List: %w", err)
	}
	return riders, nil
}

// scanRider maps one row to a domain.Rider, translating pgx.ErrNoRows into
// the domain sentinel so callers never import pgx.
func scanRider(row pgx.Row) (domain.Rider, error) {
	var rider domain.Rider
	err := row.Scan(
		&rider.Number,
		&rider.Name,
		&rider.Approved,
		&rider.Admin,
		&rider.TwelveHour,
		&rider.CreatedAt,
		&rider.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Rider{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Rider{}, err
	}
	return rider, nil
}
