// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır. Aynı zamanda API'den
// gelen/giden verilerin şeklini de belirler — `json:"username"` gibi tag'ler
// struct field'larının JSON'a nasıl serialize edileceğini söyler.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// User, bir kullanıcıyı temsil eder.
//
// IsBot: entegrasyon hesapları (webhook bot'ları vb.). Bot'lar mute hedefi
// olamaz — bot mesajları zaten kullanıcı tercihiyle filtrelenmez.
// IsAdmin: yönetici hesabı. Mute resolution'da admin görünürlük kuralları
// BİLEREK uygulanmaz (forAdmin=false) — mute tamamen kişisel bir tercihtir.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	DisplayName  *string   `json:"display_name"` // *string = nullable
	PasswordHash string    `json:"-"`            // json:"-" → API response'a DAHİL ETME
	IsBot        bool      `json:"is_bot"`
	IsAdmin      bool      `json:"is_admin"`
	Language     string    `json:"language"` // Dil tercihi: "en", "tr"
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Validate, CreateUserRequest kontrolü.
// Kurallar:
//   - Username: 3-32 karakter, alfanumerik + alt çizgi
//   - Password: minimum 8 karakter
//   - DisplayName: opsiyonel, max 32 karakter
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	usernameLen := utf8.RuneCountInString(r.Username)
	if usernameLen < 3 || usernameLen > 32 {
		return fmt.Errorf("username must be between 3 and 32 characters")
	}

	for _, ch := range r.Username {
		if !isValidUsernameChar(ch) {
			return fmt.Errorf("username can only contain letters, numbers, and underscores")
		}
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if utf8.RuneCountInString(r.DisplayName) > 32 {
		return fmt.Errorf("display name must be at most 32 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate, LoginRequest kontrolü.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// isValidUsernameChar, username'de izin verilen karakterleri kontrol eder.
func isValidUsernameChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}
