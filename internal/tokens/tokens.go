package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// GenerateSessionToken mints the signed credential delivered in the session
// cookie. The token binds the server-side session id to the operator email.
func GenerateSessionToken(secret []byte, sessionID, email string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sessionID,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString(secret)
}

// ParseSessionToken verifies the credential signature and expiry and returns
// the embedded session id and operator email.
func ParseSessionToken(secret []byte, raw string) (sessionID, email string, err error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", "", ErrInvalidToken
	}
	sessionID, _ = claims["sid"].(string)
	email, _ = claims["email"].(string)
	if sessionID == "" || email == "" {
		return "", "", ErrInvalidToken
	}
	return sessionID, email, nil
}
