package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/akis/database"
	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
)

// sqliteTopicMuteRepo, TopicMuteRepository interface'inin SQLite implementasyonu.
type sqliteTopicMuteRepo struct {
	db database.TxQuerier
}

// NewSQLiteTopicMuteRepo, constructor — interface döner.
func NewSQLiteTopicMuteRepo(db database.TxQuerier) TopicMuteRepository {
	return &sqliteTopicMuteRepo{db: db}
}

func (r *sqliteTopicMuteRepo) Create(ctx context.Context, userID, streamID int64, topicName string, dateMuted time.Time) error {
	query := `
		INSERT INTO muted_topics (user_id, stream_id, topic_name, date_muted)
		VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, userID, streamID, topicName, dateMuted)
	if err != nil {
		// Service katmanı Exists ile önden kontrol eder ama iki eşzamanlı
		// istek aynı anda geçebilir — son söz UNIQUE constraint'indir.
		if isUniqueViolation(err) {
			return pkg.ErrTopicAlreadyMuted
		}
		return fmt.Errorf("failed to create topic mute: %w", err)
	}
	return nil
}

func (r *sqliteTopicMuteRepo) Delete(ctx context.Context, userID, streamID int64, topicName string) error {
	query := `
		DELETE FROM muted_topics
		WHERE user_id = ? AND stream_id = ? AND topic_name = ?`

	result, err := r.db.ExecContext(ctx, query, userID, streamID, topicName)
	if err != nil {
		return fmt.Errorf("failed to delete topic mute: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrTopicNotMuted
	}
	return nil
}

func (r *sqliteTopicMuteRepo) Exists(ctx context.Context, userID, streamID int64, topicName string) (bool, error) {
	query := `
		SELECT 1 FROM muted_topics
		WHERE user_id = ? AND stream_id = ? AND topic_name = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, userID, streamID, topicName).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check topic mute: %w", err)
	}
	return true, nil
}

func (r *sqliteTopicMuteRepo) ListByUser(ctx context.Context, userID int64) ([]models.MutedTopic, error) {
	query := `
		SELECT user_id, stream_id, topic_name, date_muted
		FROM muted_topics
		WHERE user_id = ?
		ORDER BY date_muted, stream_id, topic_name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list muted topics: %w", err)
	}
	defer rows.Close()

	var mutes []models.MutedTopic
	for rows.Next() {
		var m models.MutedTopic
		if err := rows.Scan(&m.UserID, &m.StreamID, &m.TopicName, &m.DateMuted); err != nil {
			return nil, fmt.Errorf("failed to scan muted topic row: %w", err)
		}
		mutes = append(mutes, m)
	}
	return mutes, rows.Err()
}
