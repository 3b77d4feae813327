package domain

// Pagination defaults for list endpoints.
const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ClampLimit applies the list defaults to a requested limit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
