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

// sqliteUserMuteRepo, UserMuteRepository interface'inin SQLite implementasyonu.
type sqliteUserMuteRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserMuteRepo, constructor — interface döner.
func NewSQLiteUserMuteRepo(db database.TxQuerier) UserMuteRepository {
	return &sqliteUserMuteRepo{db: db}
}

func (r *sqliteUserMuteRepo) Create(ctx context.Context, userID, mutedUserID int64, dateMuted time.Time) error {
	query := `
		INSERT INTO muted_users (user_id, muted_user_id, date_muted)
		VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, userID, mutedUserID, dateMuted)
	if err != nil {
		if isUniqueViolation(err) {
			return pkg.ErrUserAlreadyMuted
		}
		return fmt.Errorf("failed to create user mute: %w", err)
	}
	return nil
}

func (r *sqliteUserMuteRepo) Delete(ctx context.Context, userID, mutedUserID int64) error {
	query := `DELETE FROM muted_users WHERE user_id = ? AND muted_user_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID, mutedUserID)
	if err != nil {
		return fmt.Errorf("failed to delete user mute: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrUserNotMuted
	}
	return nil
}

func (r *sqliteUserMuteRepo) Exists(ctx context.Context, userID, mutedUserID int64) (bool, error) {
	query := `SELECT 1 FROM muted_users WHERE user_id = ? AND muted_user_id = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, userID, mutedUserID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user mute: %w", err)
	}
	return true, nil
}

func (r *sqliteUserMuteRepo) ListByUser(ctx context.Context, userID int64) ([]models.MutedUser, error) {
	query := `
		SELECT user_id, muted_user_id, date_muted
		FROM muted_users
		WHERE user_id = ?
		ORDER BY date_muted, muted_user_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list muted users: %w", err)
	}
	defer rows.Close()

	var mutes []models.MutedUser
	for rows.Next() {
		var m models.MutedUser
		if err := rows.Scan(&m.UserID, &m.MutedUserID, &m.DateMuted); err != nil {
			return nil, fmt.Errorf("failed to scan muted user row: %w", err)
		}
		mutes = append(mutes, m)
	}
	return mutes, rows.Err()
}
