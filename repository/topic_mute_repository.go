// Package repository — TopicMuteRepository interface.
//
// Kullanıcı bazlı (stream, topic) sessize alma veritabanı işlemleri.
// Topic isimleri DB'de COLLATE NOCASE ile karşılaştırılır — "weather" ve
// "WEATHER" aynı kayda çarpar.
package repository

import (
	"context"
	"time"

	"github.com/akinalp/akis/models"
)

// TopicMuteRepository, topic mute veritabanı işlemleri için interface.
type TopicMuteRepository interface {
	// Create, yeni mute kaydı ekler. dateMuted çağıran tarafından verilir —
	// repo kendi saat okumasını yapmaz.
	// Kayıt zaten varsa pkg.ErrTopicAlreadyMuted. UNIQUE constraint sayesinde
	// eşzamanlı iki Create'ten en fazla biri başarılı olur.
	Create(ctx context.Context, userID, streamID int64, topicName string, dateMuted time.Time) error

	// Delete, mute kaydını kaldırır. Kayıt yoksa pkg.ErrTopicNotMuted —
	// etkilenen satır sayısından anlaşılır, ayrı bir SELECT gerekmez.
	Delete(ctx context.Context, userID, streamID int64, topicName string) error

	// Exists, (user, stream, topic) mute kaydının varlığını kontrol eder.
	Exists(ctx context.Context, userID, streamID int64, topicName string) (bool, error)

	// ListByUser, kullanıcının tüm mute kayıtlarını eskiden yeniye döner.
	ListByUser(ctx context.Context, userID int64) ([]models.MutedTopic, error)
}
