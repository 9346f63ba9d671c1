package models

import "errors"

// Failure categories surfaced by the core. Callers match with errors.Is;
// controllers map them onto HTTP statuses.
var (
	ErrNotFound           = errors.New("document not found")
	ErrAlreadyExists      = errors.New("document already exists")
	ErrTransient          = errors.New("store temporarily unavailable")
	ErrCooldownActive     = errors.New("result cooldown active")
	ErrPreconditionFailed = errors.New("precondition failed")
)
