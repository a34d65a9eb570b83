package util

import "errors"

// Stable error set surfaced by the gateway layer. Low-level storage and
// collaborator failures are wrapped into one of these before they reach the
// controllers.
var (
	// ErrGeneration: the question-generation collaborator failed or returned
	// malformed data. Retryable through the session retry endpoint.
	ErrGeneration = errors.New("question generation failed")

	// ErrStorage: a persistence read/write failed (network/permission). Never
	// swallowed when data loss is possible.
	ErrStorage = errors.New("storage operation failed")

	// ErrValidation: malformed input rejected before it reaches storage.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound: requested student/manual/result is absent. Idempotent
	// reads treat this as an empty result, deletes as a no-op.
	ErrNotFound = errors.New("resource not found")

	ErrInvalidCredentials = errors.New("contraseña incorrecta")
	ErrNoActiveSession    = errors.New("no active quiz session")
	ErrSessionCompleted   = errors.New("quiz session already completed")
	ErrTimeExpired        = errors.New("quiz time expired")
)
