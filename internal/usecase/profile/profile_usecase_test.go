package profile

import (
	"context"
	"math"
	"testing"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateOrUpdateLifecycle(t *testing.T) {
	uc := NewProfileUseCase(memory.NewProfileRepository())
	ctx := context.Background()

	_, _, err := uc.CreateOrUpdate(ctx, 1, &UpsertProfileRequest{DisplayName: ptr("Ann")})
	assert.ErrorIs(t, err, domain.ErrProfileFieldsMissing)

	p, created, err := uc.CreateOrUpdate(ctx, 1, &UpsertProfileRequest{
		DisplayName: ptr("Ann"),
		Niche:       ptr("Tech"),
		Platforms:   map[string]int64{"youtube": 80000, "tiktok": 40000},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(120000), p.AudienceSize)
	assert.True(t, p.OpenToCollabs)
	assert.Equal(t, domain.StyleUnknown, p.ContentStyle)

	p, created, err = uc.CreateOrUpdate(ctx, 1, &UpsertProfileRequest{
		Platforms:    map[string]int64{"instagram": 10},
		ContentStyle: ptr("Comedy"),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(10), p.AudienceSize)
	assert.Equal(t, "Tech", p.Niche)
	assert.Equal(t, domain.StyleComedy, p.ContentStyle)

	got, err := uc.GetMyProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, got.Platforms.Total(), got.AudienceSize)
}

func TestCreateOrUpdateRejectsBadAudience(t *testing.T) {
	uc := NewProfileUseCase(memory.NewProfileRepository())
	ctx := context.Background()

	_, _, err := uc.CreateOrUpdate(ctx, 1, &UpsertProfileRequest{
		DisplayName: ptr("Ann"),
		Niche:       ptr("Tech"),
		Platforms:   map[string]int64{"youtube": -5},
	})
	assert.ErrorIs(t, err, domain.ErrNegativeFollowers)

	_, _, err = uc.CreateOrUpdate(ctx, 1, &UpsertProfileRequest{
		DisplayName:          ptr("Ann"),
		Niche:                ptr("Tech"),
		PreferredMinAudience: ptr(int64(5000)),
		PreferredMaxAudience: ptr(int64(100)),
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = uc.GetMyProfile(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound, "nothing stored after a failed create")
}

func TestCreateOrUpdateRejectsAudienceOverflow(t *testing.T) {
	uc := NewProfileUseCase(memory.NewProfileRepository())

	_, _, err := uc.CreateOrUpdate(context.Background(), 1, &UpsertProfileRequest{
		DisplayName: ptr("Ann"),
		Niche:       ptr("Tech"),
		Platforms:   map[string]int64{"youtube": math.MaxInt64, "tiktok": 10},
	})
	assert.ErrorIs(t, err, domain.ErrAudienceTooLarge)
}

func TestUpdateRejectsBlankRequiredFields(t *testing.T) {
	uc := NewProfileUseCase(memory.NewProfileRepository())
	ctx := context.Background()

	_, _, err := uc.CreateOrUpdate(ctx, 1, &UpsertProfileRequest{DisplayName: ptr("Ann"), Niche: ptr("Tech")})
	require.NoError(t, err)

	_, _, err = uc.CreateOrUpdate(ctx, 1, &UpsertProfileRequest{Niche: ptr("   ")})
	assert.ErrorIs(t, err, domain.ErrProfileFieldsMissing)

	_, _, err = uc.CreateOrUpdate(ctx, 1, &UpsertProfileRequest{DisplayName: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrProfileFieldsMissing)

	got, err := uc.GetMyProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Tech", got.Niche)
	assert.Equal(t, "Ann", got.DisplayName)
}

func TestGetProfileNotFound(t *testing.T) {
	uc := NewProfileUseCase(memory.NewProfileRepository())
	_, err := uc.GetProfile(context.Background(), 77)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
