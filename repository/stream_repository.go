package repository

import (
	"context"

	"github.com/akinalp/akis/models"
)

// StreamRepository, stream ve abonelik veritabanı işlemleri için interface.
type StreamRepository interface {
	// Create, yeni stream ekler. ID ve CreatedAt DB tarafından atanır.
	Create(ctx context.Context, stream *models.Stream) error

	// GetByID, ID'ye göre stream arar. Bulunamazsa pkg.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Stream, error)

	// GetByName, isme göre stream arar. Bulunamazsa pkg.ErrNotFound.
	GetByName(ctx context.Context, name string) (*models.Stream, error)

	// ListForUser, kullanıcının görebildiği stream'leri döner:
	// tüm public stream'ler + abone olduğu private stream'ler.
	ListForUser(ctx context.Context, userID int64) ([]models.Stream, error)

	// Subscribe, kullanıcıyı stream'e abone eder. Zaten aboneyse no-op.
	Subscribe(ctx context.Context, userID, streamID int64) error

	// IsSubscribed, kullanıcının stream aboneliğini kontrol eder.
	IsSubscribed(ctx context.Context, userID, streamID int64) (bool, error)
}
