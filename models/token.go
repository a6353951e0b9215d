package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ın payload'ı.
//
// Server her request'te imzayı doğrular — DB'ye gitmeden kullanıcının
// kim olduğunu bilir. models paketinde tanımlıdır çünkü birden fazla
// katman (services, middleware) kullanır; circular dependency önlenir.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
