package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tmarsh/textbus/internal/domain"
)

// MessageRepo defines the persistence operations for the message log.
type MessageRepo interface {
	// Insert persists one message and returns the record with its generated
	// id and timestamps populated.
	Insert(ctx context.Context, message domain.Message) (domain.Message, error)

	// List returns all messages ordered by created_at ascending, oldest
	// first, so an exchange reads top to bottom in the admin log.
	List(ctx context.Context) ([]domain.Message, error)
}

// pgMessageRepo is the Postgres implementation of MessageRepo.
type pgMessageRepo struct {
	db db
}

// NewMessageRepo constructs a MessageRepo backed by the provided db connection.
func NewMessageRepo(db db) MessageRepo {
	return &pgMessageRepo{db: db}
}

const messageColumns = "id, message_sid, origin, destination, body, initial_message_id, created_at, updated_at"

func (r *pgMessageRepo) Insert(ctx context.Context, message domain.Message) (domain.Message, error) {
	const q = `
		INSERT INTO messages (message_sid, origin, destination, body, initial_message_id)
		VALUES (@message_sid, @origin, @destination, @body, @initial_message_id)
		RETURNING ` + messageColumns

	args := pgx.NamedArgs{
		"message_sid":        message.MessageSID, // nil becomes NULL
		"origin":             message.Origin,
		"destination":        message.Destination,
		"body":               message.Body,
		"initial_message_id": message.InitialMessageID,
	}

	row := r.db.QueryRow(ctx, q, args)
	saved, err := scanMessage(row)
	if err != nil {
		return domain.Message{}, fmt.Errorf("repo.MessageRepo.Insert: %w", err)
	}
	return saved, nil
}

func (r *pgMessageRepo) List(ctx context.Context) ([]domain.Message, error) {
	const q = `
		SELECT ` + messageColumns + `
		FROM messages
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.List: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MessageRepo.List: scan: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.List: %w", err)
	}
	return messages, nil
}

func scanMessage(row pgx.Row) (domain.Message, error) {
	var message domain.Message
	err := row.Scan(
		&message.ID,
		&message.MessageSID,
		&message.Origin,
		&message.Destination,
		&message.Body,
		&message.InitialMessageID,
		&message.CreatedAt,
		&message.UpdatedAt,
	)
	if err != nil {
		return domain.Message{}, err
	}
	return message, nil
}
