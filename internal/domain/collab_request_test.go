package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollabRequestExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := &CollabRequest{Status: CollabPending, ExpiresAt: now}

	assert.False(t, r.IsExpiredAt(now), "deadline itself is still valid")
	assert.True(t, r.IsExpiredAt(now.Add(time.Second)))

	r.Status = CollabAccepted
	assert.False(t, r.IsExpiredAt(now.Add(time.Hour)))
}

func TestCollabRequestCounterpart(t *testing.T) {
	r := &CollabRequest{SenderID: 1, ReceiverID: 2}

	other, ok := r.Counterpart(1)
	assert.True(t, ok)
	assert.Equal(t, 2, other)

	_, ok = r.Counterpart(3)
	assert.False(t, ok)
	assert.True(t, r.Involves(2))
}

func TestResponseActionStatus(t *testing.T) {
	s, err := ActionAccept.Status()
	assert.NoError(t, err)
	assert.Equal(t, CollabAccepted, s)

	s, err = ActionDecline.Status()
	assert.NoError(t, err)
	assert.Equal(t, CollabDeclined, s)

	_, err = ResponseAction("maybe").Status()
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("")
	assert.NoError(t, err)
	assert.Equal(t, DirectionBoth, d)

	_, err = ParseDirection("sideways")
	assert.Equal(t, KindValidation, KindOf(err))
}
