package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func pending(sender, receiver int, created time.Time) *domain.CollabRequest {
	return &domain.CollabRequest{
		SenderID:   sender,
		ReceiverID: receiver,
		Status:     domain.CollabPending,
		CreatedAt:  created,
		ExpiresAt:  created.Add(14 * 24 * time.Hour),
	}
}

func TestCreateRejectsSecondPendingForPair(t *testing.T) {
	repo := NewCollabRequestRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pending(1, 2, now)))
	assert.ErrorIs(t, repo.Create(ctx, pending(1, 2, now)), domain.ErrDuplicatePending)
	assert.NoError(t, repo.Create(ctx, pending(2, 1, now)), "reverse direction is a different pair")
}

func TestConcurrentCreateKeepsSinglePending(t *testing.T) {
	repo := NewCollabRequestRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	var ok, dup int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, pending(1, 2, now))
			if err == nil {
				atomic.AddInt32(&ok, 1)
			} else if err == domain.ErrDuplicatePending {
				atomic.AddInt32(&dup, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(19), dup)
}

func TestResolveOnlyFromPending(t *testing.T) {
	repo := NewCollabRequestRepository()
	ctx := context.Background()
	req := pending(1, 2, now)
	require.NoError(t, repo.Create(ctx, req))

	responded := now.Add(time.Hour)
	req.Status = domain.CollabAccepted
	req.RespondedAt = &responded
	require.NoError(t, repo.Resolve(ctx, req))

	req.Status = domain.CollabDeclined
	assert.ErrorIs(t, repo.Resolve(ctx, req), domain.ErrRequestNotPending)

	stored, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CollabAccepted, stored.Status)

	require.NoError(t, repo.Create(ctx, pending(1, 2, now)), "terminal request frees the pair")
}

func TestListPendingIsOrderedAndSkipsExpired(t *testing.T) {
	repo := NewCollabRequestRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pending(1, 9, now.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, pending(2, 9, now)))
	require.NoError(t, repo.Create(ctx, pending(3, 9, now.Add(-20*24*time.Hour))))

	got, err := repo.ListIncomingPending(ctx, 9, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].SenderID)
	assert.Equal(t, 1, got[1].SenderID)

	stale, err := repo.FindPending(ctx, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.CollabPending, stale.Status, "listing never flips status")

	n, err := repo.ExpireStale(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = repo.FindPending(ctx, 3, 9)
	assert.ErrorIs(t, err, domain.ErrCollabRequestNotFound)
}
