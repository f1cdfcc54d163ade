package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// APIResponseRepo is the audit sink for upstream transit API calls.
// Its method set deliberately matches transit.AuditSink so the Postgres
// implementation can be wired into the client directly. Rows are write-only:
// nothing in the request path reads them back.
type APIResponseRepo interface {
	// Record persists one upstream call's relative path and raw body.
	// messageID links the call to its inbound message and may be nil.
	Record(ctx context.Context, query, body string, messageID *uuid.UUID) error
}

// pgAPIResponseRepo is the Postgres implementation of APIResponseRepo.
type pgAPIResponseRepo struct {
	db db
}

// NewAPIResponseRepo constructs an APIResponseRepo backed by the provided db connection.
func NewAPIResponseRepo(db db) APIResponseRepo {
	return &pgAPIResponseRepo{db: db}
}

func (r *pgAPIResponseRepo) Record(ctx context.Context, query, body string, messageID *uuid.UUID) error {
	const q = `
		INSERT INTO api_responses (query, body, message_id)
		VALUES (@query, @body, @message_id)`

	args := pgx.NamedArgs{
		"query":      query,
		"body":       body,
		"message_id": messageID, // nil becomes NULL
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.APIResponseRepo.Record: %w", err)
	}
	return nil
}
