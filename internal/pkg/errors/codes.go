package errors

import (
	"errors"
	"net/http"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// Sentinel errors returned by the repository layer. Use cases translate them
// into AppErrors with resource-specific messages.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	// ErrMissingReference - нарушение внешнего ключа
	ErrMissingReference = errors.New("referenced record does not exist")
)

var (
	ErrSpeciesNotFound  = New(CodeNotFound, "Species not found", http.StatusNotFound)
	ErrLocationNotFound = New(CodeNotFound, "Location not found", http.StatusNotFound)
	ErrSightingNotFound = New(CodeNotFound, "Sighting not found", http.StatusNotFound)
	ErrReportNotFound   = New(CodeNotFound, "Report not found", http.StatusNotFound)
	ErrUserNotFound     = New(CodeNotFound, "User not found", http.StatusNotFound)

	ErrSearchQueryRequired = New(CodeValidation, "Search query is required", http.StatusBadRequest)
	ErrNoStatusProvided    = New(CodeValidation, "No status provided", http.StatusBadRequest)
	ErrInvalidStatus       = New(CodeValidation, "Invalid status", http.StatusBadRequest)
	ErrInvalidVerification = New(CodeValidation, "Invalid verification status", http.StatusBadRequest)
	ErrInvalidLocation     = New(CodeValidation, "Invalid location_id", http.StatusBadRequest)
	ErrInvalidSpecies      = New(CodeValidation, "Invalid species_id", http.StatusBadRequest)
	ErrInvalidRequest      = New(CodeValidation, "Invalid request parameters", http.StatusBadRequest)
	ErrInvalidID           = New(CodeValidation, "Invalid id", http.StatusBadRequest)

	ErrSelfDeletion      = New(CodeValidation, "Cannot delete your own account", http.StatusBadRequest)
	ErrAdminDeletion     = New(CodeValidation, "Cannot delete admin accounts", http.StatusBadRequest)
	ErrBadCredentials    = New(CodeUnauthorized, "Invalid username or password", http.StatusForbidden)
	ErrAccountInactive   = New(CodeUnauthorized, "Account is inactive", http.StatusForbidden)
	ErrNotAdminAccount   = New(CodeUnauthorized, "Unauthorized", http.StatusForbidden)

	ErrInternalServer = New(CodeInternal, "Internal server error", http.StatusInternalServerError)
)
