package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/bautizosmaitte/storefront-api/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Claims identify an anonymous storefront visitor. The session ID
// namespaces the visitor's persisted cart and favorites state.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Mint issues a signed guest-session token for the given session ID. A
// blank ID mints a fresh session.
func Mint(cfg config.SessionConfig, now time.Time, sessionID string) (string, string, error) {
	if cfg.Secret == "" {
		return "", "", fmt.Errorf("session secret is required")
	}
	if cfg.Issuer == "" {
		return "", "", fmt.Errorf("session issuer is required")
	}
	if cfg.TTL <= 0 {
		return "", "", fmt.Errorf("session ttl must be positive")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		sid = uuid.NewString()
	}

	claims := Claims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, sid, nil
}

// Parse validates the token string and returns its claims.
func Parse(cfg config.SessionConfig, tokenString string) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if strings.TrimSpace(tokenString) == "" {
		return nil, fmt.Errorf("session token is required")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwtSigningMethod {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parsing session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if strings.TrimSpace(claims.SessionID) == "" {
		return nil, fmt.Errorf("session token missing session id")
	}
	return claims, nil
}
