// ABOUTME: Best-effort expiry peek into JWT-shaped session tokens
// ABOUTME: Unverified parse for display only, never for authorization

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the exp claim from a JWT-shaped token without
// verifying the signature. The result is display-only: the server remains
// the authority on whether the session is valid. ok is false for tokens
// that are not JWTs or carry no expiry.
func TokenExpiry(token string) (expiry time.Time, ok bool) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
