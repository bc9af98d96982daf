// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
// 1. Kullanıcı bir topic'i sessize alır → HTTP PATCH → Service → DB kayıt
// 2. Service, Hub'ın BroadcastToUser metodunu çağırır
// 3. Hub, event'i kullanıcının TÜM bağlı client'larına iletir (her tab/cihaz)
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
//
// Mute event'leri sadece sahibine gider — mute kişisel bir tercihtir,
// diğer kullanıcıların state'ini değiştirmez.
package ws

import "time"

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "muted_topics_update", "heartbeat" vb.
// Data: Event'e özgü payload.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//   Frontend eksik event tespit etmek için seq'i takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
)

// Server → Client operasyonları
const (
	OpReady             = "ready"               // Bağlantı kurulduğunda ilk gönderilen — mute snapshot'ı
	OpHeartbeatAck      = "heartbeat_ack"       // Heartbeat'e yanıt
	OpPresence          = "presence_update"     // Bir kullanıcı online/offline oldu
	OpMutedTopicsUpdate = "muted_topics_update" // Kullanıcının topic mute listesi değişti — tam liste
	OpMutedUsersUpdate  = "muted_users_update"  // Kullanıcının user mute listesi değişti — tam liste
)

// ReadyData, bağlantı kurulduğunda client'a gönderilen ilk event'in payload'ı.
//
// Client bu snapshot ile kendi mute state'ini sıfırdan kurar; sonraki
// *_update event'leri yine tam liste taşır — delta takibi gerekmez.
type ReadyData struct {
	OnlineUserIDs []int64          `json:"online_user_ids"`
	MutedTopics   []MutedTopicItem `json:"muted_topics"`
	MutedUserIDs  []int64          `json:"muted_user_ids"`
}

// MutedTopicItem, ready ve muted_topics_update payload'larındaki tek kayıt.
// models.MutedTopic ile aynı alanları taşır — ws paketinin models'a
// bağımlılığını kırmak için ayrı tanımlanır.
type MutedTopicItem struct {
	StreamID  int64     `json:"stream_id"`
	Topic     string    `json:"topic"`
	DateMuted time.Time `json:"date_muted"`
}

// PresenceData, bir kullanıcı bağlandığında/ayrıldığında broadcast edilen payload.
type PresenceData struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"` // "online" veya "offline"
}

// MutedTopicsUpdateData, muted_topics_update event'inin payload'ı.
type MutedTopicsUpdateData struct {
	MutedTopics []MutedTopicItem `json:"muted_topics"`
}

// MutedUsersUpdateData, muted_users_update event'inin payload'ı.
type MutedUsersUpdateData struct {
	MutedUserIDs []int64 `json:"muted_user_ids"`
}
