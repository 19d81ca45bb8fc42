package memory

import (
	"context"
	"testing"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCandidatesFilters(t *testing.T) {
	repo := NewProfileRepository()
	ctx := context.Background()

	seed := []*domain.CreatorProfile{
		{UserID: 1, Niche: "Tech", ContentStyle: domain.StyleReviews, AudienceSize: 5000, OpenToCollabs: true},
		{UserID: 2, Niche: "Biotech", ContentStyle: domain.StyleEducational, AudienceSize: 50000, OpenToCollabs: true},
		{UserID: 3, Niche: "tech", AudienceSize: 100, OpenToCollabs: false},
		{UserID: 4, Niche: "Cooking", AudienceSize: 700, OpenToCollabs: true},
	}
	for _, p := range seed {
		require.NoError(t, repo.Create(ctx, p))
	}

	got, err := repo.SearchCandidates(ctx, seed[0].ID, repository.ProfileFilter{NicheContains: "TECH"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, seed[1].ID, got[0].ID)

	minAud, maxAud := int64(600), int64(10000)
	got, err = repo.SearchCandidates(ctx, 0, repository.ProfileFilter{MinAudience: &minAud, MaxAudience: &maxAud})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, seed[0].ID, got[0].ID)
	assert.Equal(t, seed[3].ID, got[1].ID)

	got, err = repo.SearchCandidates(ctx, 0, repository.ProfileFilter{StyleContains: "edu"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Biotech", got[0].Niche)
}

func TestProfileCopiesAreIsolated(t *testing.T) {
	repo := NewProfileRepository()
	ctx := context.Background()
	p := &domain.CreatorProfile{UserID: 7, Niche: "tech", SubNiches: []string{"ai"}}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByUserID(ctx, 7)
	require.NoError(t, err)
	got.SubNiches[0] = "changed"

	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ai"}, again.SubNiches)
}
