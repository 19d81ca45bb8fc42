package domain

import "errors"

// Kind classifies a domain failure so transports can map it without string matching.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindInvalidOperation Kind = "invalid_operation"
	KindExpired          Kind = "expired"
	KindUpstream         Kind = "upstream_failure"
	KindUnauthorized     Kind = "unauthorized"
	KindInternal         Kind = "internal"
)

// Error is a domain failure carrying its kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrInvalidInput = NewError(KindValidation, "invalid input")

	// Profiles
	ErrProfileNotFound      = NewError(KindNotFound, "profile not found")
	ErrProfileRequired      = NewError(KindValidation, "create a creator profile first")
	ErrNegativeFollowers    = NewError(KindValidation, "follower counts must not be negative")
	ErrAudienceTooLarge     = NewError(KindValidation, "total follower count is too large")
	ErrProfileFieldsMissing = NewError(KindValidation, "display_name and niche are required")

	// Collaboration requests
	ErrCollabRequestNotFound = NewError(KindNotFound, "collaboration request not found")
	ErrReceiverNotFound      = NewError(KindNotFound, "receiver profile not found")
	ErrSelfCollab            = NewError(KindConflict, "cannot send a collaboration request to yourself")
	ErrReceiverClosed        = NewError(KindInvalidOperation, "creator is not open to collaborations")
	ErrDuplicatePending      = NewError(KindConflict, "a pending request to this creator already exists")
	ErrRequestNotPending     = NewError(KindInvalidOperation, "request is no longer pending")
	ErrRequestExpired        = NewError(KindExpired, "request has expired")
	ErrInvalidAction         = NewError(KindValidation, "action must be accept or decline")
	ErrInvalidDirection      = NewError(KindValidation, "direction must be incoming, outgoing or both")

	// Users and auth
	ErrUserNotFound       = NewError(KindNotFound, "user not found")
	ErrEmailTaken         = NewError(KindConflict, "email already registered")
	ErrInvalidCredentials = NewError(KindUnauthorized, "invalid email or password")
	ErrInvalidToken       = NewError(KindUnauthorized, "invalid or expired token")

	// Trends and alerts
	ErrAlertRuleNotFound = NewError(KindNotFound, "alert rule not found")
	ErrInvalidChannel    = NewError(KindValidation, "channels must be email or sms")
	ErrEmptyTopic        = NewError(KindValidation, "topic is required")

	// Competitors
	ErrCompetitorNotFound = NewError(KindNotFound, "competitor not found")
	ErrCompetitorExists   = NewError(KindConflict, "competitor already tracked")
	ErrInvalidChannelURL  = NewError(KindValidation, "not a recognised YouTube channel URL")
	ErrChannelNotFound    = NewError(KindNotFound, "channel not found")

	ErrInvalidViralThreshold = NewError(KindValidation, "min_score must be between 0 and 100")

	// Upstream collaborators
	ErrUpstream = NewError(KindUpstream, "upstream service unavailable, try again later")
)
