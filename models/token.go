package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT token'ın içindeki veriler (payload).
//
// Payload'da kullanıcı ID'si ve token'ın expire süresi bulunur.
// Server her request'te bu token'ı doğrular — DB'ye gitmeden
// kullanıcının kim olduğunu bilir.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, ws, middleware) tarafından kullanılır — circular dependency'yi
// önler, her katman models'e bağımlı olabilir.
type TokenClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
