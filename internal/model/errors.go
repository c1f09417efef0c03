package model

import "errors"

var (
	// ErrNotFound covers both a missing resource and one owned by a
	// different user; callers must not be able to tell them apart.
	ErrNotFound = errors.New("not found")

	ErrValidation         = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email address not verified")
	ErrVerificationFailed = errors.New("verification failed")
	ErrAlreadyVerified    = errors.New("email already verified")

	// ErrCorruptCredential signals a stored digest that cannot be parsed,
	// as opposed to a plain password mismatch.
	ErrCorruptCredential = errors.New("corrupt credential digest")
)
