package competitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type stubSource struct {
	channel    *domain.Channel
	channelErr error
	videos     []domain.Video
	videosErr  error
	refs       []domain.ChannelRef
}

func (s *stubSource) Channel(ctx context.Context, ref domain.ChannelRef) (*domain.Channel, error) {
	s.refs = append(s.refs, ref)
	return s.channel, s.channelErr
}

func (s *stubSource) UploadVideos(ctx context.Context, playlistID string, limit int64) ([]domain.Video, error) {
	return s.videos, s.videosErr
}

func sampleChannel() *domain.Channel {
	return &domain.Channel{ID: "UC42", Title: "Gopher TV", SubscriberCount: 5000, VideoCount: 2, TotalViews: 10_000_100, UploadsPlaylist: "UU42"}
}

func sampleUploads() []domain.Video {
	return []domain.Video{
		{ID: "hit", Title: "Hit", PublishedAt: testNow.Add(-100 * time.Hour), Views: 10_000_000, Likes: 100_000, Comments: 10_000},
		{ID: "flop", Title: "Flop", PublishedAt: testNow.Add(-100*time.Hour - 7*24*time.Hour), Views: 100},
	}
}

func newUseCase(src ChannelSource) *CompetitorUseCase {
	uc := NewCompetitorUseCase(memory.NewCompetitorRepository(), src)
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestAddSyncsAndScoresUploads(t *testing.T) {
	src := &stubSource{channel: sampleChannel(), videos: sampleUploads()}
	uc := newUseCase(src)

	got, err := uc.Add(context.Background(), 1, AddRequest{ChannelURL: "https://www.youtube.com/@gopher"})
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelRef{Handle: "gopher"}, src.refs[0])

	c := got.Competitor
	assert.Equal(t, "UC42", c.ChannelID)
	assert.Equal(t, "https://www.youtube.com/channel/UC42", c.ChannelURL)
	assert.Equal(t, int64(5_000_050), c.AverageViews)
	require.NotNil(t, c.UploadFrequency)
	assert.Equal(t, "Weekly", *c.UploadFrequency)
	require.NotNil(t, c.LastSyncedAt)
	assert.Equal(t, testNow, *c.LastSyncedAt)

	require.Len(t, got.Videos, 2)
	hit, flop := got.Videos[0], got.Videos[1]
	assert.Equal(t, "hit", hit.VideoID)
	assert.Equal(t, 82, hit.ViralScore)
	assert.Equal(t, 1.1, hit.EngagementRate)
	assert.Equal(t, 2, flop.ViralScore)

	viral, err := uc.ViralVideos(context.Background(), 1, c.ID, nil)
	require.NoError(t, err)
	require.Len(t, viral, 1)
	assert.Equal(t, "hit", viral[0].VideoID)

	zero := 0
	all, err := uc.ViralVideos(context.Background(), 1, c.ID, &zero)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	tooHigh := 101
	_, err = uc.ViralVideos(context.Background(), 1, c.ID, &tooHigh)
	assert.ErrorIs(t, err, domain.ErrInvalidViralThreshold)
}

func TestAddRejectsDuplicatesAndBadURLs(t *testing.T) {
	uc := newUseCase(&stubSource{channel: sampleChannel()})
	ctx := context.Background()

	_, err := uc.Add(ctx, 1, AddRequest{ChannelURL: "https://vimeo.com/gopher"})
	assert.ErrorIs(t, err, domain.ErrInvalidChannelURL)

	_, err = uc.Add(ctx, 1, AddRequest{ChannelURL: "https://www.youtube.com/channel/UC42"})
	require.NoError(t, err)
	_, err = uc.Add(ctx, 1, AddRequest{ChannelURL: "https://www.youtube.com/c/GopherTV"})
	assert.ErrorIs(t, err, domain.ErrCompetitorExists)

	_, err = uc.Add(ctx, 2, AddRequest{ChannelURL: "https://www.youtube.com/channel/UC42"})
	assert.NoError(t, err)
}

func TestAddUpstreamFailures(t *testing.T) {
	ctx := context.Background()
	req := AddRequest{ChannelURL: "https://www.youtube.com/channel/UC42"}

	_, err := NewCompetitorUseCase(memory.NewCompetitorRepository(), nil).Add(ctx, 1, req)
	assert.Equal(t, domain.KindUpstream, domain.KindOf(err))

	_, err = newUseCase(&stubSource{channelErr: errors.New("quota")}).Add(ctx, 1, req)
	assert.Equal(t, domain.KindUpstream, domain.KindOf(err))

	_, err = newUseCase(&stubSource{channelErr: domain.ErrChannelNotFound}).Add(ctx, 1, req)
	assert.ErrorIs(t, err, domain.ErrChannelNotFound)

	// A failed first sync keeps the competitor.
	uc := newUseCase(&stubSource{channel: sampleChannel(), videosErr: errors.New("quota")})
	got, err := uc.Add(ctx, 1, req)
	require.NoError(t, err)
	assert.Empty(t, got.Videos)
	assert.Nil(t, got.Competitor.LastSyncedAt)
}

func TestSyncRefreshesStatistics(t *testing.T) {
	src := &stubSource{channel: sampleChannel()}
	uc := newUseCase(src)
	ctx := context.Background()

	added, err := uc.Add(ctx, 1, AddRequest{ChannelURL: "https://www.youtube.com/channel/UC42"})
	require.NoError(t, err)
	assert.Empty(t, added.Videos)

	src.channel = sampleChannel()
	src.channel.SubscriberCount = 9000
	src.videos = sampleUploads()
	res, err := uc.Sync(ctx, 1, added.Competitor.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Synced)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, int64(9000), res.Competitor.SubscriberCount)
	assert.Equal(t, domain.ChannelRef{ID: "UC42"}, src.refs[len(src.refs)-1])

	res, err = uc.Sync(ctx, 1, added.Competitor.ID)
	require.NoError(t, err)
	assert.Zero(t, res.Added)

	_, err = uc.Sync(ctx, 2, added.Competitor.ID)
	assert.ErrorIs(t, err, domain.ErrCompetitorNotFound)
}

func TestCompetitorsAreScopedToOwner(t *testing.T) {
	uc := newUseCase(&stubSource{channel: sampleChannel(), videos: sampleUploads()})
	ctx := context.Background()

	got, err := uc.Add(ctx, 1, AddRequest{ChannelURL: "https://www.youtube.com/channel/UC42"})
	require.NoError(t, err)
	id := got.Competitor.ID

	_, err = uc.Get(ctx, 2, id)
	assert.ErrorIs(t, err, domain.ErrCompetitorNotFound)
	_, err = uc.ViralVideos(ctx, 2, id, nil)
	assert.ErrorIs(t, err, domain.ErrCompetitorNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 2, id), domain.ErrCompetitorNotFound)

	others, err := uc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, uc.Delete(ctx, 1, id))
	mine, err := uc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)
	_, err = uc.Get(ctx, 1, id)
	assert.ErrorIs(t, err, domain.ErrCompetitorNotFound)
}

func TestContentGapsMergesCompetitorsByViews(t *testing.T) {
	src := &stubSource{channel: sampleChannel(), videos: sampleUploads()}
	uc := newUseCase(src)
	ctx := context.Background()

	_, err := uc.Add(ctx, 1, AddRequest{ChannelURL: "https://www.youtube.com/channel/UC42"})
	require.NoError(t, err)

	src.channel = &domain.Channel{ID: "UC7", Title: "Rival", UploadsPlaylist: "UU7"}
	src.videos = []domain.Video{{ID: "mid", Title: "Mid", PublishedAt: testNow.Add(-time.Hour), Views: 5000}}
	_, err = uc.Add(ctx, 1, AddRequest{ChannelURL: "https://www.youtube.com/channel/UC7"})
	require.NoError(t, err)

	gaps, err := uc.ContentGaps(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, gaps.CompetitorCount)
	assert.Equal(t, 3, gaps.TopicsAnalyzed)
	require.Len(t, gaps.TopContent, 3)
	assert.Equal(t, "Hit", gaps.TopContent[0].Title)
	assert.Equal(t, "Gopher TV", gaps.TopContent[0].Competitor)
	assert.Equal(t, "Mid", gaps.TopContent[1].Title)
	assert.Equal(t, "Rival", gaps.TopContent[1].Competitor)

	empty, err := uc.ContentGaps(ctx, 99)
	require.NoError(t, err)
	assert.Zero(t, empty.CompetitorCount)
	assert.Empty(t, empty.TopContent)
}
