// Package services — TopicMuteService: topic sessize alma iş mantığı.
//
// Kullanıcı bir (stream, topic) çiftini sessize alır, o topic'in mesajları
// kendisi için bildirilmez. Kayıt tamamen kişiseldir.
//
// Geçiş kuralları katıdır — no-op sessizce kabul edilmez:
//   - Zaten mute edilmiş topic'i tekrar mute etmek → ErrTopicAlreadyMuted
//   - Mute edilmemiş topic'i unmute etmek → ErrTopicNotMuted
//
// Add ve remove farklı çözümleme kuralları kullanır: add erişim kontrolü
// yapar (göremediğin stream'de topic mute edemezsin), remove sadece varlık
// kontrolü yapar (erişimini kaybettiğin stream'deki eski kaydı yine de
// temizleyebilmelisin).
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/pkg/cache"
	"github.com/akinalp/akis/repository"
	"github.com/akinalp/akis/ws"
)

// isTopicMutedCacheTTL: IsTopicMuted sonuçlarının cache ömrü.
// Mesaj dağıtım yolunda her mesaj için çağrıldığından kısa bir TTL bile
// DB yükünü ciddi azaltır; mutasyonlar kendi key'lerini anında düşürür.
const isTopicMutedCacheTTL = 30 * time.Second

// TopicMuteService, topic sessize alma iş mantığı interface'i.
type TopicMuteService interface {
	// UpdateMutedTopic, op'a göre mute ekler veya kaldırır.
	// Tanınmayan op pkg.ErrInvalidOperation ile reddedilir.
	UpdateMutedTopic(ctx context.Context, user *models.User, req *models.UpdateTopicMuteRequest) error

	// ListMutedTopics, kullanıcının mute kayıtlarını eskiden yeniye döner.
	// WS ready event'inde ve GET endpoint'inde kullanılır.
	ListMutedTopics(ctx context.Context, userID int64) ([]models.MutedTopic, error)

	// IsTopicMuted, (user, stream, topic) mute durumunu döner.
	// Mesaj dağıtımının sıcak yolu — sonuçlar kısa süreli cache'lenir.
	IsTopicMuted(ctx context.Context, userID, streamID int64, topicName string) (bool, error)
}

type topicMuteService struct {
	muteRepo      repository.TopicMuteRepository
	streamService StreamService
	hub           ws.EventPublisher
	muteCache     *cache.TTLCache[string, bool]

	// now, mute timestamp'inin kaynağı. Testlerde sabitlenebilir —
	// kayıt zamanı davranışın parçasıdır, gizli bir saat okuması değil.
	now func() time.Time
}

// NewTopicMuteService, constructor — interface döner.
// now nil verilirse time.Now kullanılır.
func NewTopicMuteService(
	muteRepo repository.TopicMuteRepository,
	streamService StreamService,
	hub ws.EventPublisher,
	now func() time.Time,
) TopicMuteService {
	if now == nil {
		now = time.Now
	}
	return &topicMuteService{
		muteRepo:      muteRepo,
		streamService: streamService,
		hub:           hub,
		muteCache:     cache.New[string, bool](isTopicMutedCacheTTL, time.Minute),
		now:           now,
	}
}

func (s *topicMuteService) UpdateMutedTopic(ctx context.Context, user *models.User, req *models.UpdateTopicMuteRequest) error {
	if err := req.Validate(); err != nil {
		// Sentinel dönen validasyon hataları (örn. ErrAmbiguousStreamRef)
		// zaten ErrBadRequest'i sarar — chain bozulmadan geçirilir.
		if errors.Is(err, pkg.ErrBadRequest) {
			return err
		}
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	switch req.Op {
	case models.MuteOpAdd:
		return s.muteTopic(ctx, user, req)
	case models.MuteOpRemove:
		return s.unmuteTopic(ctx, user, req)
	default:
		return pkg.ErrInvalidOperation
	}
}

// muteTopic, yeni mute kaydı ekler.
// Stream çözümlemesi erişim kontrolü İLE yapılır — kullanıcının göremediği
// stream, var olmayan stream ile aynı hatayı döner.
func (s *topicMuteService) muteTopic(ctx context.Context, user *models.User, req *models.UpdateTopicMuteRequest) error {
	var (
		stream *models.Stream
		err    error
	)
	if req.ByName() {
		stream, err = s.streamService.AccessStreamByName(ctx, user, strings.TrimSpace(*req.StreamName))
	} else {
		stream, err = s.streamService.AccessStreamByID(ctx, user, *req.StreamID)
	}
	if err != nil {
		return err
	}

	muted, err := s.muteRepo.Exists(ctx, user.ID, stream.ID, req.Topic)
	if err != nil {
		return err
	}
	if muted {
		return pkg.ErrTopicAlreadyMuted
	}

	// İki eşzamanlı add buradan aynı anda geçebilir — Create'teki UNIQUE
	// constraint ikinciyi yine ErrTopicAlreadyMuted ile durdurur.
	if err := s.muteRepo.Create(ctx, user.ID, stream.ID, req.Topic, s.now()); err != nil {
		return err
	}

	s.muteCache.Delete(muteCacheKey(user.ID, stream.ID, req.Topic))
	s.broadcastMutedTopics(ctx, user.ID)
	return nil
}

// unmuteTopic, mute kaydını kaldırır.
// Çözümleme gevşektir (erişim kontrolü yok). Çözümlenemeyen stream,
// mute edilmemiş topic ile AYNI hatayı döner — kullanıcı açısından ikisi
// de "kaldırılacak mute yok" demektir ve geçersiz referans üzerinden
// stream varlığı sızdırılmaz.
func (s *topicMuteService) unmuteTopic(ctx context.Context, user *models.User, req *models.UpdateTopicMuteRequest) error {
	var (
		stream *models.Stream
		err    error
	)
	if req.ByName() {
		stream, err = s.streamService.AccessStreamForUnmuteByName(ctx, strings.TrimSpace(*req.StreamName))
	} else {
		stream, err = s.streamService.AccessStreamForUnmuteByID(ctx, *req.StreamID)
	}
	if err != nil {
		// Sadece "stream yok" birleştirilir; altyapı hataları (DB vb.)
		// olduğu gibi yukarı çıkar — 404 değil 500'dür.
		if errors.Is(err, pkg.ErrInvalidStreamID) || errors.Is(err, pkg.ErrInvalidStreamName) {
			return pkg.ErrTopicNotMuted
		}
		return err
	}

	if err := s.muteRepo.Delete(ctx, user.ID, stream.ID, req.Topic); err != nil {
		return err // kayıt yoksa ErrTopicNotMuted
	}

	s.muteCache.Delete(muteCacheKey(user.ID, stream.ID, req.Topic))
	s.broadcastMutedTopics(ctx, user.ID)
	return nil
}

func (s *topicMuteService) ListMutedTopics(ctx context.Context, userID int64) ([]models.MutedTopic, error) {
	return s.muteRepo.ListByUser(ctx, userID)
}

func (s *topicMuteService) IsTopicMuted(ctx context.Context, userID, streamID int64, topicName string) (bool, error) {
	key := muteCacheKey(userID, streamID, topicName)
	if muted, ok := s.muteCache.Get(key); ok {
		return muted, nil
	}

	muted, err := s.muteRepo.Exists(ctx, userID, streamID, topicName)
	if err != nil {
		return false, err
	}

	s.muteCache.Set(key, muted)
	return muted, nil
}

// broadcastMutedTopics, kullanıcının güncel mute listesini tüm
// bağlantılarına gönderir. Mutasyon zaten commit edildi — broadcast
// başarısızlığı işlemi geri almaz, sadece loglanır.
func (s *topicMuteService) broadcastMutedTopics(ctx context.Context, userID int64) {
	mutes, err := s.muteRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[mute] failed to load muted topics for broadcast (user=%d): %v", userID, err)
		return
	}

	items := make([]ws.MutedTopicItem, 0, len(mutes))
	for _, m := range mutes {
		items = append(items, ws.MutedTopicItem{
			StreamID:  m.StreamID,
			Topic:     m.TopicName,
			DateMuted: m.DateMuted,
		})
	}

	s.hub.BroadcastToUser(userID, ws.Event{
		Op:   ws.OpMutedTopicsUpdate,
		Data: ws.MutedTopicsUpdateData{MutedTopics: items},
	})
}

// muteCacheKey, IsTopicMuted cache anahtarı.
// Topic, DB'nin NOCASE karşılaştırmasıyla AYNI şekilde katlanır — NOCASE
// sadece ASCII harfleri katlar, Unicode'u değil. strings.ToLower kullanmak
// DB'de ayrı olan iki topic'i ("É" / "é") tek cache key'inde birleştirirdi.
func muteCacheKey(userID, streamID int64, topicName string) string {
	return fmt.Sprintf("%d:%d:%s", userID, streamID, asciiLower(topicName))
}

// asciiLower, sadece ASCII büyük harfleri küçültür (SQLite NOCASE semantiği).
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
