package repository

import (
	"context"

	"github.com/akinalp/akis/models"
)

// SessionRepository, refresh token oturumları için interface.
type SessionRepository interface {
	// Create, yeni oturum kaydeder (login veya refresh rotation sonrası).
	Create(ctx context.Context, session *models.Session) error

	// GetByRefreshToken, refresh token'a göre oturum arar.
	// Bulunamazsa pkg.ErrNotFound.
	GetByRefreshToken(ctx context.Context, token string) (*models.Session, error)

	// Delete, oturumu siler (logout veya rotation).
	Delete(ctx context.Context, id string) error

	// DeleteExpired, süresi dolmuş oturumları temizler. Periyodik çağrılır.
	DeleteExpired(ctx context.Context) error
}
