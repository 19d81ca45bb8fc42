package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/breaker"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

var errEmptyResponse = errors.New("gemini returned no content")

type Config struct {
	APIKey         string
	Model          string
	RequestsPerMin int
	Timeout        time.Duration
}

// GeminiClient generates text and JSON completions. Calls are rate limited
// and pass through a circuit breaker.
type GeminiClient struct {
	client    *genai.Client
	textModel *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
	limiter   *rate.Limiter
	breaker   *breaker.Breaker
	timeout   time.Duration
}

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	textModel := client.GenerativeModel(cfg.Model)
	textModel.SetTemperature(0.7)

	jsonModel := client.GenerativeModel(cfg.Model)
	jsonModel.SetTemperature(0.4)
	jsonModel.ResponseMIMEType = "application/json"

	perMin := cfg.RequestsPerMin
	if perMin <= 0 {
		perMin = 30
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GeminiClient{
		client:    client,
		textModel: textModel,
		jsonModel: jsonModel,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), 1),
		breaker:   breaker.New("gemini", breaker.DefaultSettings()),
		timeout:   timeout,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// Generate returns the model's answer to prompt. With jsonMode the model is
// asked for a JSON document, and markdown fences are stripped from the reply.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini rate limit: %w", err)
	}

	model := c.textModel
	if jsonMode {
		model = c.jsonModel
	}

	text, err := breaker.Execute(c.breaker, func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
		if err != nil {
			return "", err
		}
		return responseText(resp)
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Bool("json", jsonMode).Msg("[GEMINI] Generation failed")
		return "", err
	}

	if jsonMode {
		text = stripFences(text)
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
