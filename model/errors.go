package model

import "errors"

// Sentinel errors shared by the storage implementations.
var (
	ErrMalformedID    = errors.New("malformed id")
	ErrDuplicateEmail = errors.New("duplicate email")
)
