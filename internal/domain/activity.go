package domain

import "time"

// Activity action types written to the log.
const (
	ActionUserLogin        = "User Login"
	ActionAdminLogin       = "Admin Login"
	ActionFailedAdminLogin = "Failed Admin Login"
	ActionUserLogout       = "User Logout"
	ActionUserRegistration = "User Registration"
	ActionEditReport       = "edit_report"
	ActionDeleteReport     = "delete_report"
	ActionDeleteUser       = "delete_user"
	ActionDeleteSighting   = "delete_sighting"
	ActionVerifySighting   = "verify_sighting"
	ActionRefreshStats     = "refresh_stats"
)

// ActivityLog is append-only. UserID becomes nil when the user is deleted.
type ActivityLog struct {
	ID          int64     `db:"log_id" json:"log_id"`
	UserID      *int64    `db:"user_id" json:"user_id"`
	ActionType  string    `db:"action_type" json:"action_type"`
	Description string    `db:"description" json:"description"`
	IPAddress   *string   `db:"ip_address" json:"ip_address"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type ActivityFilter struct {
	UserID     *int64
	ActionType string
	Limit      int
}
