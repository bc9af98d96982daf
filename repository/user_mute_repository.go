package repository

import (
	"context"
	"time"

	"github.com/akinalp/akis/models"
)

// UserMuteRepository, kullanıcı sessize alma veritabanı işlemleri için interface.
type UserMuteRepository interface {
	// Create, yeni mute kaydı ekler. dateMuted çağıran tarafından verilir.
	// Kayıt zaten varsa pkg.ErrUserAlreadyMuted.
	Create(ctx context.Context, userID, mutedUserID int64, dateMuted time.Time) error

	// Delete, mute kaydını kaldırır. Kayıt yoksa pkg.ErrUserNotMuted.
	Delete(ctx context.Context, userID, mutedUserID int64) error

	// Exists, (user, muted_user) mute kaydının varlığını kontrol eder.
	Exists(ctx context.Context, userID, mutedUserID int64) (bool, error)

	// ListByUser, kullanıcının mute ettiği kullanıcıları eskiden yeniye döner.
	ListByUser(ctx context.Context, userID int64) ([]models.MutedUser, error)
}
