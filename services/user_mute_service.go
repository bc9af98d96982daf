// Package services — UserMuteService: kullanıcı sessize alma iş mantığı.
//
// Bir kullanıcı başka bir kullanıcıyı sessize alır; mute eden taraf için
// muted kullanıcının mesajları gizlenir. Kayıt tek yönlü ve kişiseldir —
// muted kullanıcı bundan haberdar olmaz.
package services

import (
	"context"
	"log"
	"time"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/repository"
	"github.com/akinalp/akis/ws"
)

// UserMuteService, kullanıcı sessize alma iş mantığı interface'i.
type UserMuteService interface {
	// MuteUser, hedef kullanıcıyı sessize alır.
	// Kendini mute etmek ErrCannotMuteSelf, bot hedefi ErrNoSuchUser,
	// zaten muted hedef ErrUserAlreadyMuted döner.
	MuteUser(ctx context.Context, actor *models.User, targetID int64) error

	// UnmuteUser, mute kaydını kaldırır.
	// Hedef çözümlemesi MuteUser ile aynı kısıtları kullanır (bot hedefi
	// ErrNoSuchUser); muted olmayan hedef ErrUserNotMuted döner.
	UnmuteUser(ctx context.Context, actor *models.User, targetID int64) error

	// ListMutedUsers, actor'ın mute ettiği kullanıcıları eskiden yeniye döner.
	ListMutedUsers(ctx context.Context, userID int64) ([]models.MutedUser, error)

	// IsUserMuted, actor'ın hedefi mute edip etmediğini döner.
	// Mesaj dağıtım yolunda kullanılır.
	IsUserMuted(ctx context.Context, userID, targetID int64) (bool, error)
}

type userMuteService struct {
	muteRepo    repository.UserMuteRepository
	userService UserService
	hub         ws.EventPublisher

	// now, mute timestamp'inin kaynağı — testlerde sabitlenebilir.
	now func() time.Time
}

// NewUserMuteService, constructor — interface döner.
// now nil verilirse time.Now kullanılır.
func NewUserMuteService(
	muteRepo repository.UserMuteRepository,
	userService UserService,
	hub ws.EventPublisher,
	now func() time.Time,
) UserMuteService {
	if now == nil {
		now = time.Now
	}
	return &userMuteService{
		muteRepo:    muteRepo,
		userService: userService,
		hub:         hub,
		now:         now,
	}
}

func (s *userMuteService) MuteUser(ctx context.Context, actor *models.User, targetID int64) error {
	// Self kontrolü çözümlemeden ÖNCE — kendi ID'si için "no such user"
	// gibi yanıltıcı bir hata yerine net bir mesaj döner ve DB'ye hiç
	// gidilmez.
	if targetID == actor.ID {
		return pkg.ErrCannotMuteSelf
	}

	// Bot hesapları mute hedefi olamaz — allowBots=false ile "no such user".
	target, err := s.userService.AccessUserByID(ctx, targetID, false)
	if err != nil {
		return err
	}

	muted, err := s.muteRepo.Exists(ctx, actor.ID, target.ID)
	if err != nil {
		return err
	}
	if muted {
		return pkg.ErrUserAlreadyMuted
	}

	// Eşzamanlı iki mute Exists'i aynı anda geçebilir — UNIQUE constraint
	// ikinciyi yine ErrUserAlreadyMuted ile durdurur.
	if err := s.muteRepo.Create(ctx, actor.ID, target.ID, s.now()); err != nil {
		return err
	}

	s.broadcastMutedUsers(ctx, actor.ID)
	return nil
}

func (s *userMuteService) UnmuteUser(ctx context.Context, actor *models.User, targetID int64) error {
	// Mute ile aynı çözümleme kısıtları: bot hedefi burada da
	// "no such user"dır — zaten hiç mute edilememiş bir hedef için
	// "not muted" yanıltıcı olurdu.
	target, err := s.userService.AccessUserByID(ctx, targetID, false)
	if err != nil {
		return err
	}

	if err := s.muteRepo.Delete(ctx, actor.ID, target.ID); err != nil {
		return err // kayıt yoksa ErrUserNotMuted
	}

	s.broadcastMutedUsers(ctx, actor.ID)
	return nil
}

func (s *userMuteService) ListMutedUsers(ctx context.Context, userID int64) ([]models.MutedUser, error) {
	return s.muteRepo.ListByUser(ctx, userID)
}

func (s *userMuteService) IsUserMuted(ctx context.Context, userID, targetID int64) (bool, error) {
	return s.muteRepo.Exists(ctx, userID, targetID)
}

// broadcastMutedUsers, kullanıcının güncel muted user listesini tüm
// bağlantılarına gönderir. Broadcast başarısızlığı işlemi geri almaz.
func (s *userMuteService) broadcastMutedUsers(ctx context.Context, userID int64) {
	mutes, err := s.muteRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[mute] failed to load muted users for broadcast (user=%d): %v", userID, err)
		return
	}

	ids := make([]int64, 0, len(mutes))
	for _, m := range mutes {
		ids = append(ids, m.MutedUserID)
	}

	s.hub.BroadcastToUser(userID, ws.Event{
		Op:   ws.OpMutedUsersUpdate,
		Data: ws.MutedUsersUpdateData{MutedUserIDs: ids},
	})
}
