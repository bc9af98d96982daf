// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"time"

	"github.com/akinalp/akis/config"
	"github.com/akinalp/akis/pkg/ratelimit"
	"github.com/akinalp/akis/services"
	"github.com/akinalp/akis/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Stream    services.StreamService
	TopicMute services.TopicMuteService
	UserMute  services.UserMuteService
}

// RateLimiters, rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login *ratelimit.LoginRateLimiter
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
//
// Mute service'lerine now olarak nil geçilir — production'da time.Now
// kullanılır, testler kendi sabit saatlerini enjekte eder.
func initServices(repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, *RateLimiters) {
	authService := services.NewAuthService(
		repos.User,
		repos.Session,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	userService := services.NewUserService(repos.User)
	streamService := services.NewStreamService(repos.Stream)
	topicMuteService := services.NewTopicMuteService(repos.TopicMute, streamService, hub, nil)
	userMuteService := services.NewUserMuteService(repos.UserMute, userService, hub, nil)

	limiters := &RateLimiters{
		// 5 deneme / 5 dakika — brute-force'u durdurur, meşru kullanıcıyı üzmez.
		Login: ratelimit.NewLoginRateLimiter(5, 5*time.Minute),
	}

	return &Services{
		Auth:      authService,
		User:      userService,
		Stream:    streamService,
		TopicMute: topicMuteService,
		UserMute:  userMuteService,
	}, limiters
}
