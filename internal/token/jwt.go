package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/model"
)

// Claims represents JWT claims with token kind and user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	TokenKind string    `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC. One encoding is
// shared by access, refresh and verification tokens; the kind claim is the
// discriminant.
type JWT struct {
	secretKey string
	ttl       map[model.TokenKind]time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key and
// per-kind lifetimes. The secret is never mutated after construction and is
// safe for concurrent use.
func NewJWT(secretKey string, accessTTL, refreshTTL, verificationTTL time.Duration) *JWT {
	return &JWT{
		secretKey: secretKey,
		ttl: map[model.TokenKind]time.Duration{
			model.TokenKindAccess:       accessTTL,
			model.TokenKindRefresh:      refreshTTL,
			model.TokenKindVerification: verificationTTL,
		},
	}
}

var _ model.TokenManager = (*JWT)(nil)

// Generate creates a signed token of the given kind. Expiry is issue time
// plus the configured TTL for that kind.
func (j *JWT) Generate(userID uuid.UUID, kind model.TokenKind) (string, error) {
	ttl, ok := j.ttl[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %q", kind)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		TokenKind: string(kind),
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return tokenString, nil
}

// Parse validates a token and extracts the user ID. A tampered signature is
// reported before any structural detail: ErrTokenInvalidSignature takes
// precedence over expiry and kind checks.
func (j *JWT) Parse(tokenString string, kind model.TokenKind) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, model.ErrTokenInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, model.ErrTokenExpired
		default:
			return uuid.Nil, model.ErrTokenMalformed
		}
	}
	if !token.Valid {
		return uuid.Nil, model.ErrTokenMalformed
	}
	if claims.TokenKind != string(kind) {
		return uuid.Nil, model.ErrTokenKindMismatch
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, model.ErrTokenMalformed
	}
	return claims.UserID, nil
}
