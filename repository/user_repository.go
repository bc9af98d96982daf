// Package repository, veritabanı erişim katmanıdır (Data Access Layer).
//
// Repository pattern: her tablo için bir interface + bir SQLite
// implementasyonu. Service katmanı sadece interface'i görür — SQL detayları
// bu pakette kalır, test'lerde interface fake ile değiştirilebilir.
package repository

import (
	"context"

	"github.com/akinalp/akis/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	// Create, yeni kullanıcı ekler. ID ve CreatedAt DB tarafından atanır
	// ve user struct'ına geri yazılır.
	Create(ctx context.Context, user *models.User) error

	// GetByID, ID'ye göre kullanıcı arar. Bulunamazsa pkg.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByUsername, kullanıcı adına göre arar. Bulunamazsa pkg.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateLanguage, kullanıcının dil tercihini günceller.
	UpdateLanguage(ctx context.Context, userID int64, language string) error
}
