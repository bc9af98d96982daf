// Package models — mute domain modelleri.
//
// MutedTopic: kullanıcının belirli bir (stream, topic) çiftini sessize
// aldığını temsil eder. MutedUser: başka bir kullanıcıyı sessize aldığını.
// Her ikisi de tamamen kişiseldir — başka kullanıcıların gördüğünü etkilemez.
//
// (user, hedef) başına en fazla bir aktif kayıt vardır; controller mutate
// etmeden önce bu durumu kontrol eder ve değişiklik yaratmayacak işlemi
// açık bir conflict error'ı ile reddeder (sessiz no-op yerine).
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/akinalp/akis/pkg"
)

// Mute operasyonları — UpdateTopicMuteRequest.Op için geçerli değerler.
const (
	MuteOpAdd    = "add"
	MuteOpRemove = "remove"
)

// MutedTopic, bir (user, stream, topic) mute kaydıdır.
type MutedTopic struct {
	UserID    int64     `json:"-"`
	StreamID  int64     `json:"stream_id"`
	TopicName string    `json:"topic"`
	DateMuted time.Time `json:"date_muted"`
}

// MutedUser, bir (user, muted_user) mute kaydıdır.
type MutedUser struct {
	UserID      int64     `json:"-"`
	MutedUserID int64     `json:"id"`
	DateMuted   time.Time `json:"date_muted"`
}

// StreamRef, bir stream'e yapılan polimorfik referanstır: numeric id VEYA
// isim. API istemcileri ikisinden birini gönderir — ikisini birden veya
// hiçbirini göndermek geçersizdir.
//
// Neden iki pointer field?
// JSON boundary'de "gönderilmedi" ile "boş gönderildi" ayrımı pointer ile
// yapılır. Validate() tam-olarak-biri invariant'ını boundary'de zorlar;
// iç katmanlar Validate'ten geçmiş bir StreamRef'e güvenir.
type StreamRef struct {
	StreamID   *int64  `json:"stream_id"`
	StreamName *string `json:"stream"`
}

// Validate, referansın tam olarak bir alanının dolu olduğunu kontrol eder.
// Hiçbiri veya ikisi birden dolu → error. Resolver çağrılmadan ÖNCE
// çalışmalıdır — geçersiz referansla hiçbir dış çağrı yapılmaz.
func (ref *StreamRef) Validate() error {
	hasID := ref.StreamID != nil
	hasName := ref.StreamName != nil && strings.TrimSpace(*ref.StreamName) != ""

	if hasID == hasName {
		return pkg.ErrAmbiguousStreamRef
	}
	return nil
}

// ByName, referansın isim tabanlı olup olmadığını döner.
// Validate'ten geçmiş bir ref'te ByName false ise StreamID kesin doludur.
func (ref *StreamRef) ByName() bool {
	return ref.StreamName != nil && strings.TrimSpace(*ref.StreamName) != ""
}

// UpdateTopicMuteRequest, topic mute endpoint'inin gövdesi.
// Op: "add" → sessize al, "remove" → sesi aç. Başka bir değer service
// katmanında açık bir invalid-operation hatasıyla reddedilir.
type UpdateTopicMuteRequest struct {
	StreamRef
	Topic string `json:"topic"`
	Op    string `json:"op"`
}

// Validate, UpdateTopicMuteRequest kontrolü.
// Topic boş olamaz — mute her zaman somut bir topic adına uygulanır;
// max 60 karakter.
func (r *UpdateTopicMuteRequest) Validate() error {
	if err := r.StreamRef.Validate(); err != nil {
		return err
	}

	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	if utf8.RuneCountInString(r.Topic) > 60 {
		return fmt.Errorf("topic must be at most 60 characters")
	}

	return nil
}
