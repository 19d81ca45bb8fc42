package trend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

const defaultSummary = "Summary is unavailable right now. Scores are based on the latest video statistics."

type VideoSearcher interface {
	Search(ctx context.Context, topic string) ([]domain.Video, error)
}

type LLMClient interface {
	Generate(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

type TrendUseCase struct {
	searcher  VideoSearcher
	cache     repository.VideoCache
	cacheTTL  time.Duration
	llm       LLMClient
	trendRepo repository.TrendRepository
	now       func() time.Time
}

func NewTrendUseCase(
	searcher VideoSearcher,
	cache repository.VideoCache,
	cacheTTL time.Duration,
	llm LLMClient,
	trendRepo repository.TrendRepository,
) *TrendUseCase {
	return &TrendUseCase{
		searcher:  searcher,
		cache:     cache,
		cacheTTL:  cacheTTL,
		llm:       llm,
		trendRepo: trendRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type AnalyzeRequest struct {
	Topic string `json:"topic" binding:"required,min=1,max=200"`
}

type AnalysisResult struct {
	Analysis *domain.TrendAnalysis `json:"analysis"`
	Videos   []domain.Video        `json:"videos"`
}

func normalizeTopic(topic string) string {
	return strings.Join(strings.Fields(topic), " ")
}

// searchVideos returns cached results when present. Cache failures are logged, not returned.
func (uc *TrendUseCase) searchVideos(ctx context.Context, topic string) ([]domain.Video, error) {
	if uc.cache != nil {
		videos, ok, err := uc.cache.Get(ctx, topic)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("topic", topic).Msg("[TRENDS] Cache read failed")
		} else if ok {
			return videos, nil
		}
	}

	if uc.searcher == nil {
		return nil, domain.ErrUpstream
	}
	videos, err := uc.searcher.Search(ctx, topic)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("topic", topic).Msg("[TRENDS] Video search failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, topic, videos, uc.cacheTTL); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("topic", topic).Msg("[TRENDS] Cache write failed")
		}
	}
	return videos, nil
}

// TopicVirality searches a topic and returns its aggregate virality score.
func (uc *TrendUseCase) TopicVirality(ctx context.Context, topic string) (int, error) {
	topic = normalizeTopic(topic)
	if topic == "" {
		return 0, domain.ErrEmptyTopic
	}
	videos, err := uc.searchVideos(ctx, topic)
	if err != nil {
		return 0, err
	}
	return ViralityScore(videos, uc.now()), nil
}

// Analyze scores a topic, summarizes it and stores the result for the user.
// A failed search aborts before anything is written; a failed summary falls
// back to a fixed text.
func (uc *TrendUseCase) Analyze(ctx context.Context, userID int, req AnalyzeRequest) (*AnalysisResult, error) {
	topic := normalizeTopic(req.Topic)
	if topic == "" {
		return nil, domain.ErrEmptyTopic
	}

	videos, err := uc.searchVideos(ctx, topic)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	scored := make([]domain.Video, len(videos))
	for i, v := range videos {
		if s, ok := VideoScore(v, now); ok {
			v.Virality = int(s)
		}
		scored[i] = v
	}
	score := ViralityScore(videos, now)

	summary, available := uc.summarize(ctx, topic, scored, score)

	analysis := &domain.TrendAnalysis{
		UserID:           userID,
		Topic:            topic,
		Summary:          summary,
		SummaryAvailable: available,
		ViralityScore:    score,
		VideoCount:       len(videos),
		CreatedAt:        now,
	}
	if err := uc.trendRepo.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to store trend analysis: %w", err)
	}

	logging.Ctx(ctx).Info().Str("topic", topic).Int("virality", score).Int("videos", len(videos)).Msg("[TRENDS] Analysis stored")
	return &AnalysisResult{Analysis: analysis, Videos: scored}, nil
}

func (uc *TrendUseCase) summarize(ctx context.Context, topic string, videos []domain.Video, score int) (string, bool) {
	if uc.llm == nil || len(videos) == 0 {
		return defaultSummary, false
	}

	var sb strings.Builder
	for i, v := range videos {
		if i == 10 {
			break
		}
		fmt.Fprintf(&sb, "- %q by %s: %d views, %d likes, %d comments, virality %d\n",
			v.Title, v.ChannelTitle, v.Views, v.Likes, v.Comments, v.Virality)
	}
	prompt := fmt.Sprintf(`You are a content strategy analyst. Topic: %q. Overall virality score: %d/100.
Recent videos:
%s
Summarize in 3-4 sentences what is trending, why it works, and one angle a creator could take.`, topic, score, sb.String())

	text, err := uc.llm.Generate(ctx, prompt, false)
	if err != nil || strings.TrimSpace(text) == "" {
		logging.Ctx(ctx).Warn().Err(err).Str("topic", topic).Msg("[TRENDS] Summary generation failed, using default")
		return defaultSummary, false
	}
	return strings.TrimSpace(text), true
}

func (uc *TrendUseCase) History(ctx context.Context, userID int, limit int) ([]*domain.TrendAnalysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	history, err := uc.trendRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []*domain.TrendAnalysis{}
	}
	return history, nil
}
