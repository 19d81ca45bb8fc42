package competitor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/trend"
)

const (
	syncBatch      = 20
	viralLimit     = 10
	gapPerChannel  = 20
	gapResultLimit = 20
)

// ChannelSource looks channels up on the video platform.
type ChannelSource interface {
	Channel(ctx context.Context, ref domain.ChannelRef) (*domain.Channel, error)
	UploadVideos(ctx context.Context, playlistID string, limit int64) ([]domain.Video, error)
}

type CompetitorUseCase struct {
	repo   repository.CompetitorRepository
	source ChannelSource
	now    func() time.Time
}

func NewCompetitorUseCase(repo repository.CompetitorRepository, source ChannelSource) *CompetitorUseCase {
	return &CompetitorUseCase{
		repo:   repo,
		source: source,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type AddRequest struct {
	ChannelURL string `json:"channel_url" binding:"required,max=500"`
}

type ViralQuery struct {
	MinScore *int `form:"min_score" binding:"omitempty,min=0,max=100"`
}

type Details struct {
	Competitor *domain.Competitor        `json:"competitor"`
	Videos     []*domain.CompetitorVideo `json:"videos"`
}

type SyncResult struct {
	Competitor *domain.Competitor `json:"competitor"`
	Synced     int                `json:"videos_synced"`
	Added      int                `json:"videos_added"`
}

type GapVideo struct {
	Title          string  `json:"title"`
	Views          int64   `json:"views"`
	EngagementRate float64 `json:"engagement"`
	Competitor     string  `json:"competitor"`
}

type ContentGaps struct {
	CompetitorCount int        `json:"competitor_count"`
	TopicsAnalyzed  int        `json:"topics_analyzed"`
	TopContent      []GapVideo `json:"top_competitor_content"`
}

// upstream passes domain errors through and wraps everything else as an upstream failure.
func upstream(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
}

// Add starts tracking the channel at req.ChannelURL and pulls its latest uploads.
// A failed first sync is logged and the competitor is still returned.
func (uc *CompetitorUseCase) Add(ctx context.Context, userID int, req AddRequest) (*Details, error) {
	ref, err := domain.ParseChannelURL(req.ChannelURL)
	if err != nil {
		return nil, err
	}
	if uc.source == nil {
		return nil, domain.ErrUpstream
	}

	ch, err := uc.source.Channel(ctx, ref)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("channel_url", req.ChannelURL).Msg("[COMPETITORS] Channel lookup failed")
		return nil, upstream(err)
	}

	c := &domain.Competitor{
		UserID:          userID,
		ChannelID:       ch.ID,
		ChannelName:     ch.Title,
		ChannelURL:      "https://www.youtube.com/channel/" + ch.ID,
		SubscriberCount: ch.SubscriberCount,
		VideoCount:      ch.VideoCount,
		TotalViews:      ch.TotalViews,
		UploadsPlaylist: ch.UploadsPlaylist,
		IsActive:        true,
	}
	if ch.Thumbnail != "" {
		thumb := ch.Thumbnail
		c.Thumbnail = &thumb
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int("competitor_id", c.ID).Str("channel_id", c.ChannelID).Msg("[COMPETITORS] Competitor added")

	if _, err := uc.sync(ctx, c); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("competitor_id", c.ID).Msg("[COMPETITORS] Initial sync failed")
	}
	videos, err := uc.repo.ListVideos(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &Details{Competitor: c, Videos: videos}, nil
}

// owned loads a competitor and hides competitors belonging to other users.
func (uc *CompetitorUseCase) owned(ctx context.Context, userID, id int) (*domain.Competitor, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, domain.ErrCompetitorNotFound
	}
	return c, nil
}

// Sync refreshes the channel statistics and its latest uploads.
func (uc *CompetitorUseCase) Sync(ctx context.Context, userID, id int) (*SyncResult, error) {
	c, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if uc.source == nil {
		return nil, domain.ErrUpstream
	}

	ch, err := uc.source.Channel(ctx, domain.ChannelRef{ID: c.ChannelID})
	if err != nil {
		return nil, upstream(err)
	}
	c.ChannelName = ch.Title
	c.SubscriberCount, c.VideoCount, c.TotalViews = ch.SubscriberCount, ch.VideoCount, ch.TotalViews
	if ch.UploadsPlaylist != "" {
		c.UploadsPlaylist = ch.UploadsPlaylist
	}
	return uc.sync(ctx, c)
}

func (uc *CompetitorUseCase) sync(ctx context.Context, c *domain.Competitor) (*SyncResult, error) {
	if uc.source == nil {
		return nil, domain.ErrUpstream
	}
	var uploads []domain.Video
	if c.UploadsPlaylist != "" {
		var err error
		uploads, err = uc.source.UploadVideos(ctx, c.UploadsPlaylist, syncBatch)
		if err != nil {
			return nil, upstream(err)
		}
	}

	now := uc.now()
	videos := make([]*domain.CompetitorVideo, 0, len(uploads))
	published := make([]time.Time, 0, len(uploads))
	var totalViews int64
	for _, v := range uploads {
		videos = append(videos, scoreVideo(v, now))
		published = append(published, v.PublishedAt)
		totalViews += v.Views
	}

	added, err := uc.repo.UpsertVideos(ctx, c.ID, videos)
	if err != nil {
		return nil, err
	}

	if len(uploads) > 0 {
		c.AverageViews = totalViews / int64(len(uploads))
	}
	c.UploadFrequency = domain.UploadFrequency(published)
	c.LastSyncedAt = &now
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Int("competitor_id", c.ID).Int("videos", len(videos)).Int("added", added).Msg("[COMPETITORS] Sync complete")
	return &SyncResult{Competitor: c, Synced: len(videos), Added: added}, nil
}

func scoreVideo(v domain.Video, now time.Time) *domain.CompetitorVideo {
	out := &domain.CompetitorVideo{
		VideoID:        v.ID,
		Title:          v.Title,
		PublishedAt:    v.PublishedAt,
		Views:          v.Views,
		Likes:          v.Likes,
		Comments:       v.Comments,
		EngagementRate: domain.EngagementRate(v.Views, v.Likes, v.Comments),
	}
	if s, ok := trend.VideoScore(v, now); ok {
		out.ViralScore = min(100, max(0, int(s)))
	}
	return out
}

func (uc *CompetitorUseCase) List(ctx context.Context, userID int) ([]*domain.Competitor, error) {
	return uc.repo.ListByUser(ctx, userID)
}

func (uc *CompetitorUseCase) Get(ctx context.Context, userID, id int) (*Details, error) {
	c, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	videos, err := uc.repo.ListVideos(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &Details{Competitor: c, Videos: videos}, nil
}

// ViralVideos returns the competitor's ten best-scoring videos at or above minScore.
func (uc *CompetitorUseCase) ViralVideos(ctx context.Context, userID, id int, minScore *int) ([]*domain.CompetitorVideo, error) {
	c, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	threshold := domain.DefaultViralThreshold
	if minScore != nil {
		if *minScore < 0 || *minScore > 100 {
			return nil, domain.ErrInvalidViralThreshold
		}
		threshold = *minScore
	}
	return uc.repo.TopVideos(ctx, []int{c.ID}, threshold, repository.OrderByViralScore, viralLimit)
}

// ContentGaps collects the most viewed videos across every tracked competitor.
func (uc *CompetitorUseCase) ContentGaps(ctx context.Context, userID int) (*ContentGaps, error) {
	competitors, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	gaps := &ContentGaps{CompetitorCount: len(competitors), TopContent: []GapVideo{}}
	for _, c := range competitors {
		videos, err := uc.repo.TopVideos(ctx, []int{c.ID}, 0, repository.OrderByViews, gapPerChannel)
		if err != nil {
			return nil, err
		}
		for _, v := range videos {
			gaps.TopContent = append(gaps.TopContent, GapVideo{
				Title:          v.Title,
				Views:          v.Views,
				EngagementRate: v.EngagementRate,
				Competitor:     c.ChannelName,
			})
		}
	}
	gaps.TopicsAnalyzed = len(gaps.TopContent)

	sort.SliceStable(gaps.TopContent, func(i, j int) bool { return gaps.TopContent[i].Views > gaps.TopContent[j].Views })
	if len(gaps.TopContent) > gapResultLimit {
		gaps.TopContent = gaps.TopContent[:gapResultLimit]
	}
	return gaps, nil
}

func (uc *CompetitorUseCase) Delete(ctx context.Context, userID, id int) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
