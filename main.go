// Package main, akis backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'larla)
//  3. i18n çevirilerini yükle
//  4. Repository'leri oluştur
//  5. WebSocket Hub'ı başlat
//  6. Service'leri oluştur (repository'ler + hub ile)
//  7. Hub callback'lerini bağla
//  8. Handler'ları oluştur, route'ları bağla
//  9. CORS yapılandır, HTTP server'ı başlat
// 10. Graceful shutdown
//
// Global değişken YOK — her şey burada oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/akinalp/akis/config"
	"github.com/akinalp/akis/database"
	"github.com/akinalp/akis/pkg/i18n"
	"github.com/akinalp/akis/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] akis server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. i18n ───
	localesFS, err := fs.Sub(i18n.EmbeddedLocales, "locales")
	if err != nil {
		log.Fatalf("[main] failed to open embedded locales: %v", err)
	}
	if err := i18n.Load(localesFS); err != nil {
		log.Fatalf("[main] failed to load i18n translations: %v", err)
	}

	// ─── 4. Repository Layer ───
	repos := initRepositories(db.Conn)

	// ─── 5. WebSocket Hub ───
	// Hub EventPublisher interface'ini implement eder — service'ler hub'a
	// doğrudan değil interface üzerinden erişir.
	hub := ws.NewHub()

	// ─── 6. Service Layer ───
	svcs, limiters := initServices(repos, hub, cfg)
	defer limiters.Login.Close()

	// ─── 7. Hub Callbacks ───
	// Callback'ler Run'dan önce bağlanmalı — ilk client ready bekler.
	registerHubCallbacks(hub, svcs.TopicMute, svcs.UserMute)
	go hub.Run()

	// ─── 8. Handlers + Routes ───
	h := initHandlers(svcs, limiters, hub)

	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User)

	// ─── 9. CORS + HTTP Server ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler.Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantılarını kapat, sonra HTTP server'ı —
	// yeni request kabul edilmez, mevcutlar 5sn içinde biter.
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
