package demotokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature or expiry
// checks, or that carry no IP claim.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the demo token payload: the client IP plus standard expiry.
type Claims struct {
	IP string `json:"ip"`
	jwt.RegisteredClaims
}

// Sign issues an HS256 token binding ip for the given validity window.
func Sign(secret, ip string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		IP: ip,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify checks the signature and expiry and returns the embedded claims.
func Verify(secret, token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.IP == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
