package domain

import "time"

type CollabStatus string

const (
	CollabPending  CollabStatus = "pending"
	CollabAccepted CollabStatus = "accepted"
	CollabDeclined CollabStatus = "declined"
	CollabExpired  CollabStatus = "expired"
)

func (s CollabStatus) IsTerminal() bool {
	return s != CollabPending
}

type CollabRequest struct {
	ID         int          `json:"id" db:"id"`
	SenderID   int          `json:"sender_id" db:"sender_id"`
	ReceiverID int          `json:"receiver_id" db:"receiver_id"`
	Status     CollabStatus `json:"status" db:"status"`
	// CollabType is a free-form tag such as "joint video" or "shoutout".
	CollabType       *string    `json:"collab_type" db:"collab_type"`
	Message          *string    `json:"message" db:"message"`
	AIGeneratedPitch bool       `json:"ai_generated_pitch" db:"ai_generated_pitch"`
	MatchScore       float64    `json:"match_score" db:"match_score"`
	ResponseMessage  *string    `json:"response_message" db:"response_message"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	RespondedAt      *time.Time `json:"responded_at" db:"responded_at"`
	ExpiresAt        time.Time  `json:"expires_at" db:"expires_at"`
}

// IsExpiredAt reports whether a pending request is past its deadline.
func (r *CollabRequest) IsExpiredAt(now time.Time) bool {
	return r.Status == CollabPending && now.After(r.ExpiresAt)
}

func (r *CollabRequest) Involves(profileID int) bool {
	return r.SenderID == profileID || r.ReceiverID == profileID
}

func (r *CollabRequest) Counterpart(profileID int) (int, bool) {
	if r.SenderID == profileID {
		return r.ReceiverID, true
	}
	if r.ReceiverID == profileID {
		return r.SenderID, true
	}
	return 0, false
}

// ResponseAction is the receiver's decision on a pending request.
type ResponseAction string

const (
	ActionAccept  ResponseAction = "accept"
	ActionDecline ResponseAction = "decline"
)

// Status returns the terminal status the action leads to.
func (a ResponseAction) Status() (CollabStatus, error) {
	switch a {
	case ActionAccept:
		return CollabAccepted, nil
	case ActionDecline:
		return CollabDeclined, nil
	}
	return "", ErrInvalidAction
}

type CollabDirection string

const (
	DirectionIncoming CollabDirection = "incoming"
	DirectionOutgoing CollabDirection = "outgoing"
	DirectionBoth     CollabDirection = "both"
)

func ParseDirection(s string) (CollabDirection, error) {
	switch CollabDirection(s) {
	case "":
		return DirectionBoth, nil
	case DirectionIncoming, DirectionOutgoing, DirectionBoth:
		return CollabDirection(s), nil
	}
	return "", ErrInvalidDirection
}
