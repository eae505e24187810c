package domain

import "errors"

// Operation outcomes are classified by these sentinels; callers branch with
// errors.Is rather than inspecting concrete error types.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	ErrIO       = errors.New("io failure")
	ErrFormat   = errors.New("malformed encoding")
	ErrCrypto   = errors.New("crypto failure")
)
