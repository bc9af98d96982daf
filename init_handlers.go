// Package main — Handler katmanı başlatma.
package main

import (
	"github.com/akinalp/akis/handlers"
	"github.com/akinalp/akis/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth   *handlers.AuthHandler
	User   *handlers.UserHandler
	Stream *handlers.StreamHandler
	Mute   *handlers.MuteHandler
	WS     *ws.Handler
}

// initHandlers, tüm handler'ları oluşturur.
// WS handler'ın TokenValidator'ı authService'dir — interface'i implicit karşılar.
func initHandlers(svcs *Services, limiters *RateLimiters, hub *ws.Hub) *Handlers {
	return &Handlers{
		Auth:   handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		User:   handlers.NewUserHandler(svcs.User),
		Stream: handlers.NewStreamHandler(svcs.Stream),
		Mute:   handlers.NewMuteHandler(svcs.TopicMute, svcs.UserMute),
		WS:     ws.NewHandler(hub, svcs.Auth),
	}
}
