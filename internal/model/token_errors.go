package model

import "errors"

var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenKindMismatch     = errors.New("token kind mismatch")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenMissing          = errors.New("authorization token missing")
)
