// Package services — UserService: kullanıcı çözümleme ve profil işlemleri.
package services

import (
	"context"
	"errors"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/repository"
)

// UserService, kullanıcı iş mantığı interface'i.
type UserService interface {
	// GetByID, kullanıcıyı ID ile döner. Bulunamazsa pkg.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// AccessUserByID, başka bir kullanıcıyı hedef alan işlemler için
	// çözümleme yapar (mute hedefi gibi).
	//
	// allowBots=false ise bot hesapları da "no such user" döner — bot
	// olduğu bilgisi sızmaz. Admin için ayrı bir görünürlük kuralı
	// uygulanmaz: mute kişisel bir tercihtir, yönetim işlemi değildir.
	AccessUserByID(ctx context.Context, targetID int64, allowBots bool) (*models.User, error)

	// UpdateLanguage, kullanıcının dil tercihini günceller.
	UpdateLanguage(ctx context.Context, userID int64, language string) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService, constructor — interface döner.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) AccessUserByID(ctx context.Context, targetID int64, allowBots bool) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrNoSuchUser
		}
		return nil, err
	}

	if target.IsBot && !allowBots {
		return nil, pkg.ErrNoSuchUser
	}

	return target, nil
}

func (s *userService) UpdateLanguage(ctx context.Context, userID int64, language string) error {
	switch language {
	case "en", "tr":
	default:
		return pkg.ErrBadRequest
	}
	return s.userRepo.UpdateLanguage(ctx, userID, language)
}
