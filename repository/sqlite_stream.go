package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/akis/database"
	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
)

// sqliteStreamRepo, StreamRepository interface'inin SQLite implementasyonu.
type sqliteStreamRepo struct {
	db database.TxQuerier
}

// NewSQLiteStreamRepo, constructor — interface döner.
func NewSQLiteStreamRepo(db database.TxQuerier) StreamRepository {
	return &sqliteStreamRepo{db: db}
}

func (r *sqliteStreamRepo) Create(ctx context.Context, stream *models.Stream) error {
	query := `
		INSERT INTO streams (name, description, is_private)
		VALUES (?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		stream.Name, stream.Description, stream.IsPrivate,
	).Scan(&stream.ID, &stream.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: stream name already taken", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

func (r *sqliteStreamRepo) GetByID(ctx context.Context, id int64) (*models.Stream, error) {
	query := `
		SELECT id, name, description, is_private, created_at
		FROM streams WHERE id = ?`

	stream := &models.Stream{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&stream.ID, &stream.Name, &stream.Description, &stream.IsPrivate, &stream.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stream by id: %w", err)
	}

	return stream, nil
}

func (r *sqliteStreamRepo) GetByName(ctx context.Context, name string) (*models.Stream, error) {
	query := `
		SELECT id, name, description, is_private, created_at
		FROM streams WHERE name = ?`

	stream := &models.Stream{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&stream.ID, &stream.Name, &stream.Description, &stream.IsPrivate, &stream.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stream by name: %w", err)
	}

	return stream, nil
}

func (r *sqliteStreamRepo) ListForUser(ctx context.Context, userID int64) ([]models.Stream, error) {
	// Public stream'ler herkese görünür; private stream'ler sadece
	// subscriptions satırı olan kullanıcıya.
	query := `
		SELECT s.id, s.name, s.description, s.is_private, s.created_at
		FROM streams s
		WHERE s.is_private = 0
		   OR EXISTS (
			SELECT 1 FROM subscriptions sub
			WHERE sub.stream_id = s.id AND sub.user_id = ?)
		ORDER BY s.name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list streams: %w", err)
	}
	defer rows.Close()

	var streams []models.Stream
	for rows.Next() {
		var s models.Stream
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.IsPrivate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stream row: %w", err)
		}
		streams = append(streams, s)
	}
	return streams, rows.Err()
}

func (r *sqliteStreamRepo) Subscribe(ctx context.Context, userID, streamID int64) error {
	query := `
		INSERT INTO subscriptions (user_id, stream_id)
		VALUES (?, ?)
		ON CONFLICT(user_id, stream_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, userID, streamID)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

func (r *sqliteStreamRepo) IsSubscribed(ctx context.Context, userID, streamID int64) (bool, error) {
	query := `SELECT 1 FROM subscriptions WHERE user_id = ? AND stream_id = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, userID, streamID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return true, nil
}
