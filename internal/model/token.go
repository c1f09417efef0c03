package model

import "github.com/google/uuid"

// TokenKind discriminates the three token variants sharing one encoding.
type TokenKind string

const (
	// TokenKindAccess is a short-lived credential authorizing API calls.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is a long-lived credential used solely to obtain
	// new access tokens.
	TokenKindRefresh TokenKind = "refresh"
	// TokenKindVerification is a single-use credential proving email
	// ownership.
	TokenKindVerification TokenKind = "verification"
)

// TokenManager generates and validates signed tokens.
type TokenManager interface {
	Generate(userID uuid.UUID, kind TokenKind) (string, error)
	Parse(token string, kind TokenKind) (uuid.UUID, error)
}

// TokenPair is the access/refresh pair issued on successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
