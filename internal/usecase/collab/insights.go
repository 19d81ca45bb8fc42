package collab

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

// LLMClient generates text, optionally constrained to a JSON document.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

// InsightUseCase enriches the deterministic score with generated text.
// It never writes to storage.
type InsightUseCase struct {
	profileRepo repository.ProfileRepository
	scorer      *Scorer
	llm         LLMClient
	now         func() time.Time
}

func NewInsightUseCase(profileRepo repository.ProfileRepository, llm LLMClient, cfg Config) *InsightUseCase {
	return &InsightUseCase{
		profileRepo: profileRepo,
		scorer:      NewScorer(cfg),
		llm:         llm,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type CompatibilityReport struct {
	Profile        *domain.CreatorProfile `json:"profile"`
	Match          MatchScore             `json:"match"`
	Analysis       string                 `json:"analysis"`
	Strengths      []string               `json:"strengths"`
	Considerations []string               `json:"considerations"`
}

type PitchInput struct {
	ReceiverID int    `json:"receiver_id" binding:"required,min=1"`
	Tone       string `json:"tone" binding:"omitempty,oneof=friendly professional casual"`
}

type PitchTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type IdeasInput struct {
	ProfileID int `json:"profile_id" binding:"required,min=1"`
}

type CollabIdea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Format      string `json:"format"`
}

func (uc *InsightUseCase) pair(ctx context.Context, userID, otherID int) (*domain.CreatorProfile, *domain.CreatorProfile, error) {
	me, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, nil, domain.ErrProfileRequired
		}
		return nil, nil, err
	}
	other, err := uc.profileRepo.GetByID(ctx, otherID)
	if err != nil {
		return nil, nil, err
	}
	if me.ID == other.ID {
		return nil, nil, domain.ErrSelfCollab
	}
	return me, other, nil
}

// Compatibility returns the score for the pair plus a generated analysis of it.
func (uc *InsightUseCase) Compatibility(ctx context.Context, userID, profileID int) (*CompatibilityReport, error) {
	me, other, err := uc.pair(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}

	score := uc.scorer.Score(me, other, uc.now())
	prompt := fmt.Sprintf(`Two content creators are considering a collaboration.
Creator A: %s
Creator B: %s
Computed compatibility: %.1f/100 (%s). Factor scores: niche %.0f, audience %.0f, style %.0f, platform %.0f, activity %.0f.

Explain the fit in 2-3 sentences, then list strengths and things to watch out for.
Respond with JSON: {"analysis": "...", "strengths": ["..."], "considerations": ["..."]}`,
		describe(me), describe(other), score.Total, score.Level,
		score.Breakdown.Niche, score.Breakdown.Audience, score.Breakdown.Style,
		score.Breakdown.Platform, score.Breakdown.Activity)

	var out struct {
		Analysis       string   `json:"analysis"`
		Strengths      []string `json:"strengths"`
		Considerations []string `json:"considerations"`
	}
	if err := uc.generateJSON(ctx, prompt, &out); err != nil {
		return nil, err
	}

	return &CompatibilityReport{
		Profile:        other,
		Match:          score,
		Analysis:       out.Analysis,
		Strengths:      out.Strengths,
		Considerations: out.Considerations,
	}, nil
}

// Pitch drafts outreach messages from the caller to the receiver.
func (uc *InsightUseCase) Pitch(ctx context.Context, userID int, in PitchInput) ([]PitchTemplate, error) {
	me, other, err := uc.pair(ctx, userID, in.ReceiverID)
	if err != nil {
		return nil, err
	}
	tone := in.Tone
	if tone == "" {
		tone = "friendly"
	}

	prompt := fmt.Sprintf(`Write 3 short collaboration pitch messages in a %s tone.
Sender: %s
Recipient: %s
Respond with JSON: {"pitches": [{"subject": "...", "body": "..."}]}`, tone, describe(me), describe(other))

	var out struct {
		Pitches []PitchTemplate `json:"pitches"`
	}
	if err := uc.generateJSON(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return out.Pitches, nil
}

// Ideas suggests joint content formats for the pair.
func (uc *InsightUseCase) Ideas(ctx context.Context, userID int, in IdeasInput) ([]CollabIdea, error) {
	me, other, err := uc.pair(ctx, userID, in.ProfileID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Suggest 5 collaboration content ideas for these two creators.
Creator A: %s
Creator B: %s
Respond with JSON: {"ideas": [{"title": "...", "description": "...", "format": "..."}]}`, describe(me), describe(other))

	var out struct {
		Ideas []CollabIdea `json:"ideas"`
	}
	if err := uc.generateJSON(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return out.Ideas, nil
}

func (uc *InsightUseCase) generateJSON(ctx context.Context, prompt string, v interface{}) error {
	if uc.llm == nil {
		return domain.ErrUpstream
	}
	text, err := uc.llm.Generate(ctx, prompt, true)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("[COLLAB] LLM generation failed")
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if err := decodeLLMJSON(text, v); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("[COLLAB] LLM returned malformed JSON")
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return nil
}

// decodeLLMJSON parses model output, tolerating markdown code fences.
func decodeLLMJSON(text string, v interface{}) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return json.Unmarshal([]byte(strings.TrimSpace(text)), v)
}

func describe(p *domain.CreatorProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s, niche %q", p.DisplayName, p.Niche)
	if len(p.SubNiches) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(p.SubNiches, ", "))
	}
	fmt.Fprintf(&sb, ", style %s, audience %d", p.ContentStyle.Normalize(), p.AudienceSize)
	if len(p.Platforms) > 0 {
		names := make([]string, 0, len(p.Platforms))
		for name := range p.Platforms {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, " on %s", strings.Join(names, ", "))
	}
	return sb.String()
}
