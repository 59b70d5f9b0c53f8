package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the stable numeric user identifier issued by the external
// identity service. No other identity data is consumed.
type JWTClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}
