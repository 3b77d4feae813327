package domain

import "time"

// Stream names
const (
	StreamActivityLog = "stream:activity:log"
)

// ActivityEvent is an activity entry in flight through the stream.
type ActivityEvent struct {
	UserID      *int64    `json:"user_id,omitempty"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e *ActivityEvent) ToLog() *ActivityLog {
	return &ActivityLog{
		UserID:      e.UserID,
		ActionType:  e.ActionType,
		Description: e.Description,
		IPAddress:   e.IPAddress,
		CreatedAt:   e.OccurredAt,
	}
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
