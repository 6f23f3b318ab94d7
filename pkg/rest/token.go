package rest

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a bearer credential granted by the passport registry.
type Token struct {
	// Raw is the compact JWS, sent back as "Authorization: Bearer".
	Raw string

	// Subject is the subject claim of the token. It identifies the
	// acting user for audit fields of created records.
	Subject string
}

// ParseToken reads the subject claim out of a compact JWS without
// verifying its signature. The token is trusted as granted, since it
// has just been obtained from the login endpoint.
func ParseToken(raw string) (Token, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Token{}, fmt.Errorf("granted token is broken: %w", err)
	}
	return Token{Raw: raw, Subject: claims.Subject}, nil
}
