package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının WebSocket event'leri broadcast etmek için
// kullandığı interface.
//
// Dependency Inversion: Service'ler Hub'ın concrete struct'ına değil,
// bu interface'e bağımlıdır — test'lerde fake EventPublisher kullanılabilir.
type EventPublisher interface {
	BroadcastToUser(userID int64, event Event)
	GetOnlineUserIDs() []int64
}

// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır (Observer pattern).
//
// Hub.Run() goroutine'i register/unregister channel'larından `select` ile okur;
// clients map'ine tüm erişim mutex ile korunur çünkü broadcast metodları
// HTTP handler goroutine'lerinden çağrılır.
type Hub struct {
	// clients: userID → Client set (bir kullanıcının birden fazla tab'ı olabilir).
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	// seq: Her outbound event'e verilen artan sayaç.
	seq atomic.Int64

	// onClientReady: Bağlantı kurulduğunda ready snapshot'ını üreten callback.
	// main/init_callbacks.go'da set edilir — ws paketi services'a bağımlı olamaz
	// (services zaten ws.EventPublisher'a bağımlı, döngü oluşurdu).
	onClientReady func(userID int64) (ReadyData, error)
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetOnClientReady, ready snapshot callback'ini kaydeder.
// Hub Run'dan önce, wire-up sırasında çağrılmalıdır.
func (h *Hub) SetOnClientReady(fn func(userID int64) (ReadyData, error)) {
	h.onClientReady = fn
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// addClient, yeni bir client'ı Hub'a ekler.
// Kullanıcının ilk bağlantısıysa diğer kullanıcılara presence broadcast edilir.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	first := len(h.clients[client.userID]) == 0
	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	total := len(h.clients[client.userID])
	h.mu.Unlock()

	log.Printf("[ws] client connected: user=%d (total connections for user: %d)",
		client.userID, total)

	if first {
		// Broadcast mutex'i tekrar alır — lock bırakıldıktan sonra çağrılmalı.
		go h.broadcastToAllExcept(client.userID, Event{
			Op:   OpPresence,
			Data: PresenceData{UserID: client.userID, Status: "online"},
		})
	}
}

// removeClient, bir client'ı Hub'dan çıkarır ve send channel'ını kapatır.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	last := false
	if clients, ok := h.clients[client.userID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			close(client.send)

			if len(clients) == 0 {
				delete(h.clients, client.userID)
				last = true
			}
		}
	}
	h.mu.Unlock()

	if last {
		log.Printf("[ws] user fully disconnected: %d", client.userID)
		go h.broadcastToAllExcept(client.userID, Event{
			Op:   OpPresence,
			Data: PresenceData{UserID: client.userID, Status: "offline"},
		})
	}
}

// broadcastToAllExcept, belirli bir kullanıcı hariç tüm client'lara gönderir.
// Presence event'inde kullanıcının kendisine kendi durumu gönderilmez.
func (h *Hub) broadcastToAllExcept(excludeUserID int64, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal broadcast event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID, clients := range h.clients {
		if userID == excludeUserID {
			continue
		}
		for client := range clients {
			select {
			case client.send <- data:
			default:
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
}

// BroadcastToUser, belirli bir kullanıcının tüm bağlantılarına event gönderir.
// Mute değişikliklerinin dağıtım yolu budur — event sadece sahibine gider.
func (h *Hub) BroadcastToUser(userID int64, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal user event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[userID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
}

// GetOnlineUserIDs, bağlı olan tüm kullanıcı ID'lerini döner.
func (h *Hub) GetOnlineUserIDs() []int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]int64, 0, len(h.clients))
	for userID := range h.clients {
		ids = append(ids, userID)
	}
	return ids
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
	}
	h.clients = make(map[int64]map[*Client]bool)
	log.Println("[ws] hub shut down, all connections closed")
}
