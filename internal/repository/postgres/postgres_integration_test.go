//go:build integration

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/database"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "insightsphere",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(90 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(context.Background()) }) //nolint:errcheck

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=insightsphere sslmode=disable", host, port.Port())
	db, err := database.Open(dsn, 10, 2)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(ctx, db))
	// A second run is a no-op.
	require.NoError(t, database.Migrate(ctx, db))
	return db
}

type fixture struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	requests repository.CollabRequestRepository
}

func (f *fixture) creator(t *testing.T, email, niche string, followers int64) *domain.CreatorProfile {
	t.Helper()
	ctx := context.Background()
	user := &domain.User{Email: email, Provider: domain.ProviderLocal}
	require.NoError(t, f.users.Create(ctx, user))

	p := &domain.CreatorProfile{
		UserID:        user.ID,
		DisplayName:   email,
		Niche:         niche,
		SubNiches:     []string{"retro"},
		ContentStyle:  domain.StyleTutorials,
		OpenToCollabs: true,
	}
	require.NoError(t, p.SetPlatforms(map[string]int64{"youtube": followers}))
	require.NoError(t, f.profiles.Create(ctx, p))
	return p
}

func TestPostgresRepositories(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	f := &fixture{
		users:    NewUserRepository(db),
		profiles: NewProfileRepository(db),
		requests: NewCollabRequestRepository(db),
	}

	a := f.creator(t, "a@example.com", "Tech", 1000)
	b := f.creator(t, "b@example.com", "gaming", 5000)
	c := f.creator(t, "c@example.com", "tech reviews", 9000)

	t.Run("users", func(t *testing.T) {
		err := f.users.Create(ctx, &domain.User{Email: "A@example.com", Provider: domain.ProviderLocal})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)

		got, err := f.users.GetByEmail(ctx, "A@EXAMPLE.COM")
		require.NoError(t, err)
		assert.Equal(t, a.UserID, got.ID)

		_, err = f.users.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("profiles", func(t *testing.T) {
		got, err := f.profiles.GetByUserID(ctx, a.UserID)
		require.NoError(t, err)
		assert.Equal(t, domain.Platforms{"youtube": 1000}, got.Platforms)
		assert.Equal(t, []string{"retro"}, got.SubNiches)

		minAud := int64(2000)
		found, err := f.profiles.SearchCandidates(ctx, a.ID, repository.ProfileFilter{NicheContains: "TECH", MinAudience: &minAud})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, c.ID, found[0].ID)

		got.OpenToCollabs = false
		require.NoError(t, f.profiles.Update(ctx, got))
		found, err = f.profiles.SearchCandidates(ctx, b.ID, repository.ProfileFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, c.ID, found[0].ID)
	})

	t.Run("collab requests", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)

		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = f.requests.Create(ctx, &domain.CollabRequest{
					SenderID: b.ID, ReceiverID: c.ID, MatchScore: 55, ExpiresAt: now.Add(time.Hour),
				})
			}(i)
		}
		wg.Wait()
		created := 0
		for _, err := range errs {
			if err == nil {
				created++
			} else {
				assert.ErrorIs(t, err, domain.ErrDuplicatePending)
			}
		}
		assert.Equal(t, 1, created)

		pending, err := f.requests.FindPending(ctx, b.ID, c.ID)
		require.NoError(t, err)

		incoming, err := f.requests.ListIncomingPending(ctx, c.ID, now)
		require.NoError(t, err)
		assert.Len(t, incoming, 1)

		responded := now
		pending.Status = domain.CollabAccepted
		pending.RespondedAt = &responded
		require.NoError(t, f.requests.Resolve(ctx, pending))

		pending.Status = domain.CollabDeclined
		assert.ErrorIs(t, f.requests.Resolve(ctx, pending), domain.ErrRequestNotPending)

		pending.ID = 99999
		assert.ErrorIs(t, f.requests.Resolve(ctx, pending), domain.ErrCollabRequestNotFound)

		history, err := f.requests.ListHistory(ctx, b.ID, 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, domain.CollabAccepted, history[0].Status)

		collabType := "joint video"
		tagged := &domain.CollabRequest{
			SenderID: a.ID, ReceiverID: b.ID, CollabType: &collabType, AIGeneratedPitch: true,
			ExpiresAt: now.Add(time.Hour),
		}
		require.NoError(t, f.requests.Create(ctx, tagged))
		stored, err := f.requests.GetByID(ctx, tagged.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.CollabType)
		assert.Equal(t, "joint video", *stored.CollabType)
		assert.True(t, stored.AIGeneratedPitch)

		stale := &domain.CollabRequest{SenderID: c.ID, ReceiverID: b.ID, ExpiresAt: now.Add(-time.Minute)}
		require.NoError(t, f.requests.Create(ctx, stale))
		n, err := f.requests.ExpireStale(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := f.requests.GetByID(ctx, stale.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CollabExpired, got.Status)
	})
}

func TestPostgresAlertRules(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	rules := NewAlertRuleRepository(db)
	trends := NewTrendRepository(db)

	user := &domain.User{Email: "alerts@example.com", Provider: domain.ProviderLocal}
	require.NoError(t, users.Create(ctx, user))

	rule := &domain.AlertRule{UserID: user.ID, Topic: "ai", ThresholdScore: 70, Channels: []string{"email", "sms"}, IsActive: true}
	require.NoError(t, rules.Create(ctx, rule))

	active, err := rules.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, []string{"email", "sms"}, active[0].Channels)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, rules.MarkTriggered(ctx, rule.ID, at))
	got, err := rules.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastTriggeredAt)
	assert.True(t, at.Equal(*got.LastTriggeredAt))

	require.NoError(t, rules.Delete(ctx, rule.ID))
	assert.ErrorIs(t, rules.Delete(ctx, rule.ID), domain.ErrAlertRuleNotFound)

	analysis := &domain.TrendAnalysis{UserID: user.ID, Topic: "ai", Summary: "s", SummaryAvailable: true, ViralityScore: 50, VideoCount: 3}
	require.NoError(t, trends.Create(ctx, analysis))
	list, err := trends.ListByUser(ctx, user.ID, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 50, list[0].ViralityScore)
}

func TestPostgresCompetitors(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	repo := NewCompetitorRepository(db)

	user := &domain.User{Email: "rivals@example.com", Provider: domain.ProviderLocal}
	require.NoError(t, users.Create(ctx, user))

	comp := &domain.Competitor{UserID: user.ID, ChannelID: "UC1", ChannelName: "Rival", ChannelURL: "https://www.youtube.com/channel/UC1", UploadsPlaylist: "UU1", IsActive: true}
	require.NoError(t, repo.Create(ctx, comp))
	assert.NotZero(t, comp.ID)

	dup := &domain.Competitor{UserID: user.ID, ChannelID: "UC1", ChannelName: "Rival", ChannelURL: "x", IsActive: true}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrCompetitorExists)

	published := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	videos := []*domain.CompetitorVideo{
		{VideoID: "v1", Title: "one", PublishedAt: published, Views: 100, ViralScore: 40},
		{VideoID: "v2", Title: "two", PublishedAt: published.Add(time.Hour), Views: 50, ViralScore: 90},
	}
	added, err := repo.UpsertVideos(ctx, comp.ID, videos)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	videos[0].Views = 500
	added, err = repo.UpsertVideos(ctx, comp.ID, videos[:1])
	require.NoError(t, err)
	assert.Zero(t, added)

	list, err := repo.ListVideos(ctx, comp.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "v2", list[0].VideoID)
	assert.Equal(t, int64(500), list[1].Views)

	viral, err := repo.TopVideos(ctx, []int{comp.ID}, 70, repository.OrderByViralScore, 10)
	require.NoError(t, err)
	require.Len(t, viral, 1)
	assert.Equal(t, "v2", viral[0].VideoID)

	byViews, err := repo.TopVideos(ctx, []int{comp.ID}, 0, repository.OrderByViews, 1)
	require.NoError(t, err)
	require.Len(t, byViews, 1)
	assert.Equal(t, "v1", byViews[0].VideoID)

	freq := "Weekly"
	now := time.Now().UTC().Truncate(time.Second)
	comp.AverageViews, comp.UploadFrequency, comp.LastSyncedAt = 275, &freq, &now
	require.NoError(t, repo.Update(ctx, comp))
	got, err := repo.GetByID(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(275), got.AverageViews)
	assert.Equal(t, "Weekly", *got.UploadFrequency)
	assert.Equal(t, "UU1", got.UploadsPlaylist)

	require.NoError(t, repo.Delete(ctx, comp.ID))
	assert.ErrorIs(t, repo.Delete(ctx, comp.ID), domain.ErrCompetitorNotFound)
	_, err = repo.UpsertVideos(ctx, comp.ID, videos)
	assert.ErrorIs(t, err, domain.ErrCompetitorNotFound)
	list, err = repo.ListVideos(ctx, comp.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
