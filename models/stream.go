// Package models — Stream domain modeli.
//
// Stream, içinde topic'lerin yaşadığı isimli bir kanaldır (hiyerarşi:
// stream → topic → mesaj). Topic'ler ayrı bir tablo değildir — mesajların
// üzerindeki serbest bir etikettir; bu serviste yalnızca mute kayıtlarında
// string olarak görünür.
package models

import "time"

// Stream, isimli bir kanalı temsil eder.
// IsPrivate: private stream'ler sadece subscriber'lara görünür —
// mute resolution'da erişim kontrolünün konusu.
type Stream struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
}

// Subscription, bir kullanıcının bir stream aboneliğini temsil eder.
type Subscription struct {
	UserID    int64     `json:"user_id"`
	StreamID  int64     `json:"stream_id"`
	CreatedAt time.Time `json:"created_at"`
}
