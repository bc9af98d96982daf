// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// auth helper'ı JWT doğrulama middleware'ını sarar.
package main

import (
	"fmt"
	"net/http"

	"github.com/akinalp/akis/middleware"
	"github.com/akinalp/akis/repository"
	"github.com/akinalp/akis/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı — yoksa Go router literal segmenti parametre sanır.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
) {
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"akis"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))
	mux.Handle("PATCH /api/users/me/language", auth(h.User.UpdateLanguage))

	// Streams
	mux.Handle("GET /api/streams", auth(h.Stream.List))
	mux.Handle("POST /api/streams", auth(h.Stream.Create))
	mux.Handle("POST /api/streams/{id}/subscribe", auth(h.Stream.Subscribe))

	// Muted topics — tek PATCH endpoint'i hem add hem remove taşır (op alanı)
	mux.Handle("PATCH /api/users/me/subscriptions/muted_topics", auth(h.Mute.UpdateMutedTopics))
	mux.Handle("GET /api/users/me/subscriptions/muted_topics", auth(h.Mute.ListMutedTopics))

	// Muted users — hedef path'te, body gerekmez
	mux.Handle("GET /api/users/me/muted_users", auth(h.Mute.ListMutedUsers))
	mux.Handle("POST /api/users/me/muted_users/{id}", auth(h.Mute.MuteUser))
	mux.Handle("DELETE /api/users/me/muted_users/{id}", auth(h.Mute.UnmuteUser))

	// WebSocket — token query parameter ile authenticate edilir.
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez,
	// bu yüzden JWT token URL query parameter olarak gönderilir:
	//   ws://server/ws?token=JWT_TOKEN
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
