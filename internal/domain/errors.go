package domain

import "errors"

var (
	// ErrUnauthorized: no authenticated actor, or the actor is not an admin.
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrMissingID: update or delete without a target id.
	ErrMissingID = errors.New("missing id")
	// ErrValidation: malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrRateLimited: a rate-limit counter tripped.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrConstraint: unique or foreign key violation at the storage layer.
	ErrConstraint = errors.New("constraint violation")
	// ErrDispatchFailed: outbound email could not be sent.
	ErrDispatchFailed = errors.New("email dispatch failed")
	// ErrStorageUnavailable: the database is not configured or unreachable.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound: the target row does not exist.
	ErrNotFound = errors.New("record not found")
)
