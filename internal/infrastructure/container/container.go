package container

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/config"
	"github.com/gdugdh24/insightsphere-backend/internal/delivery/http"
	"github.com/gdugdh24/insightsphere-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/insightsphere-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/database"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/events"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/notify"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/oauth"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/server"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/supervisor"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/youtube"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/gdugdh24/insightsphere-backend/internal/repository/memory"
	"github.com/gdugdh24/insightsphere-backend/internal/repository/postgres"
	rediscache "github.com/gdugdh24/insightsphere-backend/internal/repository/redis"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/alert"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/auth"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/collab"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/competitor"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/profile"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/trend"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Gemini *gemini.GeminiClient
	NATS   *events.Client
	Server *server.Server
	Tree   *supervisor.Tree
}

type repositories struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	requests repository.CollabRequestRepository
	trends   repository.TrendRepository
	rules    repository.AlertRuleRepository
	rivals   repository.CompetitorRepository
	cache    repository.VideoCache
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	repos, err := c.initStorage(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	// Optional collaborators: the service runs without them and reports
	// upstream failures for the features that need them.
	var llm collab.LLMClient
	var trendLLM trend.LLMClient
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewGeminiClient(ctx, gemini.Config{
			APIKey:         cfg.Gemini.APIKey,
			Model:          cfg.Gemini.Model,
			RequestsPerMin: cfg.Gemini.RequestsPerMin,
		})
		if err != nil {
			logging.Warn().Err(err).Msg("[CONTAINER] Gemini client unavailable, AI features disabled")
		} else {
			c.Gemini = client
			llm, trendLLM = client, client
		}
	} else {
		logging.Warn().Msg("[CONTAINER] GEMINI_API_KEY not set, AI features disabled")
	}

	var searcher trend.VideoSearcher
	var channels competitor.ChannelSource
	if cfg.YouTube.APIKey != "" {
		client, err := youtube.NewClient(ctx, cfg.YouTube.APIKey, cfg.YouTube.MaxResults)
		if err != nil {
			logging.Warn().Err(err).Msg("[CONTAINER] YouTube client unavailable, trend analysis and competitor sync disabled")
		} else {
			searcher, channels = client, client
		}
	} else {
		logging.Warn().Msg("[CONTAINER] YOUTUBE_API_KEY not set, trend analysis and competitor sync disabled")
	}

	var publisher collab.EventPublisher
	if cfg.NATS.URL != "" {
		client, err := events.NewClient(events.Config{URL: cfg.NATS.URL, ClientName: "insightsphere"})
		if err != nil {
			logging.Warn().Err(err).Msg("[CONTAINER] NATS unavailable, collaboration events disabled")
		} else {
			c.NATS = client
			pub, err := events.NewPublisher(client)
			if err != nil {
				logging.Warn().Err(err).Msg("[CONTAINER] Failed to prepare collaboration stream")
			} else {
				publisher = pub
			}
		}
	}

	notifier := notify.NewNotifier(notify.Config{
		SMTPHost:      cfg.Notify.SMTPHost,
		SMTPPort:      cfg.Notify.SMTPPort,
		SMTPUser:      cfg.Notify.SMTPUser,
		SMTPPassword:  cfg.Notify.SMTPPassword,
		EmailFrom:     cfg.Notify.EmailFrom,
		TwilioSID:     cfg.Notify.TwilioSID,
		TwilioToken:   cfg.Notify.TwilioToken,
		TwilioFrom:    cfg.Notify.TwilioFrom,
		TwilioBaseURL: cfg.Notify.TwilioBaseURL,
	})

	verifiers := map[domain.AuthProvider]auth.IdentityVerifier{}
	if cfg.OAuth.GoogleClientID != "" {
		verifiers[domain.ProviderGoogle] = oauth.NewGoogleVerifier(cfg.OAuth.GoogleClientID)
	}
	if cfg.OAuth.GitHubClientID != "" && cfg.OAuth.GitHubClientSecret != "" {
		verifiers[domain.ProviderGitHub] = oauth.NewGitHubVerifier(cfg.OAuth.GitHubClientID, cfg.OAuth.GitHubClientSecret)
	}

	// Initialize use cases
	collabCfg := collabConfig(&cfg.Collab)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour, cfg.JWT.Issuer)
	authUseCase := auth.NewAuthUseCase(repos.users, tokens, verifiers)
	profileUseCase := profile.NewProfileUseCase(repos.profiles)
	collabUseCase := collab.NewCollabUseCase(repos.profiles, repos.requests, publisher, collabCfg)
	insightUseCase := collab.NewInsightUseCase(repos.profiles, llm, collabCfg)
	trendUseCase := trend.NewTrendUseCase(searcher, repos.cache, cfg.YouTube.CacheTTL, trendLLM, repos.trends)
	alertUseCase := alert.NewAlertUseCase(repos.rules, cfg.Alerts.DefaultThreshold)
	competitorUseCase := competitor.NewCompetitorUseCase(repos.rivals, channels)

	// Initialize router
	router := http.NewRouter(
		handler.NewAuthHandler(authUseCase),
		handler.NewProfileHandler(profileUseCase),
		handler.NewCollabHandler(collabUseCase, insightUseCase),
		handler.NewTrendHandler(trendUseCase),
		handler.NewAlertHandler(alertUseCase),
		handler.NewCompetitorHandler(competitorUseCase),
		middleware.NewAuthMiddleware(authUseCase),
	)
	c.Server = server.NewServer(&cfg.Server, router.Setup())

	// Supervised services
	c.Tree = supervisor.NewTree(supervisor.DefaultTreeConfig())
	c.Tree.AddAPIService(c.Server)
	c.Tree.AddBackgroundService(supervisor.NewPeriodic("collab-expiry-sweeper", cfg.Collab.SweepInterval, func(ctx context.Context) error {
		_, err := collabUseCase.ExpireStale(ctx)
		return err
	}))
	c.Tree.AddBackgroundService(alert.NewChecker(
		repos.rules, repos.users, trendUseCase, notifier,
		cfg.Alerts.ThrottleWindow, cfg.Alerts.CheckInterval,
	))
	if c.NATS != nil {
		c.Tree.AddBackgroundService(events.NewCollabNotifier(c.NATS, repos.profiles, repos.users, notifier))
	}

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) (*repositories, error) {
	cfg := c.Config
	repos := &repositories{}

	switch cfg.Storage.Type {
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		if err := database.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		repos.users = postgres.NewUserRepository(db)
		repos.profiles = postgres.NewProfileRepository(db)
		repos.requests = postgres.NewCollabRequestRepository(db)
		repos.trends = postgres.NewTrendRepository(db)
		repos.rules = postgres.NewAlertRuleRepository(db)
		repos.rivals = postgres.NewCompetitorRepository(db)
	default:
		logging.Warn().Msg("[CONTAINER] Using in-memory storage, data is lost on restart")
		repos.users = memory.NewUserRepository()
		repos.profiles = memory.NewProfileRepository()
		repos.requests = memory.NewCollabRequestRepository()
		repos.trends = memory.NewTrendRepository()
		repos.rules = memory.NewAlertRuleRepository()
		repos.rivals = memory.NewCompetitorRepository()
	}

	repos.cache = memory.NewVideoCache()
	if cfg.Redis.Enabled() {
		client, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			logging.Warn().Err(err).Msg("[CONTAINER] Redis unavailable, using in-process video cache")
		} else {
			c.Redis = client
			repos.cache = rediscache.NewVideoCache(client)
		}
	}

	return repos, nil
}

func collabConfig(cfg *config.CollabConfig) collab.Config {
	out := collab.DefaultConfig()
	out.Weights = collab.Weights{
		Niche:    cfg.NicheWeight,
		Audience: cfg.AudienceWeight,
		Style:    cfg.StyleWeight,
		Platform: cfg.PlatformWeight,
		Activity: cfg.ActivityWeight,
	}
	out.RequestTTL = cfg.RequestTTL
	if cfg.DefaultMatchLimit > 0 {
		out.DefaultMatchLimit = cfg.DefaultMatchLimit
	}
	if cfg.MaxMatchLimit > 0 {
		out.MaxMatchLimit = cfg.MaxMatchLimit
	}
	return out
}

// Close closes all connections
func (c *Container) Close() error {
	if c.NATS != nil {
		c.NATS.Close()
	}

	if c.Gemini != nil {
		c.Gemini.Close()
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logging.Warn().Err(err).Msg("[CONTAINER] Error closing Redis")
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
