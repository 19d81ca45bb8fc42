package domain

import "time"

const (
	EventCollabRequestCreated   = "collab.request.created"
	EventCollabRequestResponded = "collab.request.responded"
)

// CollabEvent is emitted after a collaboration request is created or resolved.
type CollabEvent struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	RequestID  int          `json:"request_id"`
	SenderID   int          `json:"sender_id"`
	ReceiverID int          `json:"receiver_id"`
	Status     CollabStatus `json:"status"`
	MatchScore float64      `json:"match_score"`
	OccurredAt time.Time    `json:"occurred_at"`
}
