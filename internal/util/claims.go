package util

import (
	jwt "github.com/golang-jwt/jwt/v4"
)

// Token type claim values. Access and refresh tokens are signed with the
// same secret, so the claim is what keeps one from standing in for the
// other.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type JwtCustomClaims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type JwtCustomRefreshClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type Config struct {
	AccessTokenExpiryHour  int
	RefreshTokenExpiryHour int
	AccessTokenSecret      string
	RefreshTokenSecret     string
}
