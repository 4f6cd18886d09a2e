package domain

import "errors"

// ============================================================================
// Retrieval / Lookup Errors
// ============================================================================

var (
	// ErrRetrieval marks a registry-tier failure (server unreachable or the
	// entity is absent remotely). Callers fall back to the local cache.
	ErrRetrieval = errors.New("could not retrieve from registry")

	// ErrNotFound means the entity is absent from both the registry and the
	// local cache.
	ErrNotFound = errors.New("entity not found")

	// ErrLocalRecordCorrupt means a cached record file exists but cannot be
	// parsed. It is surfaced to the caller, never auto-repaired.
	ErrLocalRecordCorrupt = errors.New("local record is corrupt")
)

// ============================================================================
// Association Workflow Errors
// ============================================================================

var (
	ErrIncompatibleAssociation = errors.New("entity is not compatible with the benchmark workflow")
	ErrInvalidTransition       = errors.New("association is not pending")
	ErrUnauthorized            = errors.New("operation restricted to the benchmark owner")
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("entity state does not permit this operation")
	ErrIntegrity       = errors.New("content hash does not match expected hash")
)
