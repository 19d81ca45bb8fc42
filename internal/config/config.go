package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	Gemini   GeminiConfig
	YouTube  YouTubeConfig
	OAuth    OAuthConfig
	Notify   NotifyConfig
	NATS     NATSConfig
	Collab   CollabConfig
	Alerts   AlertsConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	Issuer      string
}

type StorageConfig struct {
	Type string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	RequestsPerMin int
}

type YouTubeConfig struct {
	APIKey     string
	MaxResults int64
	CacheTTL   time.Duration
}

type OAuthConfig struct {
	GoogleClientID     string
	GitHubClientID     string
	GitHubClientSecret string
}

type NotifyConfig struct {
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	EmailFrom     string
	TwilioSID     string
	TwilioToken   string
	TwilioFrom    string
	TwilioBaseURL string
}

type NATSConfig struct {
	URL string
}

// CollabConfig holds the match-scoring weights and request lifecycle settings.
type CollabConfig struct {
	NicheWeight       float64
	AudienceWeight    float64
	StyleWeight       float64
	PlatformWeight    float64
	ActivityWeight    float64
	RequestTTL        time.Duration
	DefaultMatchLimit int
	MaxMatchLimit     int
	SweepInterval     time.Duration
}

type AlertsConfig struct {
	CheckInterval    time.Duration
	ThrottleWindow   time.Duration
	DefaultThreshold int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")

	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)

	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("JWT_ISSUER", "insightsphere")

	v.SetDefault("STORAGE_TYPE", StoragePostgres)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GEMINI_REQUESTS_PER_MIN", 30)

	v.SetDefault("YOUTUBE_MAX_RESULTS", 10)
	v.SetDefault("YOUTUBE_CACHE_TTL", "15m")

	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("TWILIO_BASE_URL", "https://api.twilio.com")

	v.SetDefault("COLLAB_NICHE_WEIGHT", 30)
	v.SetDefault("COLLAB_AUDIENCE_WEIGHT", 25)
	v.SetDefault("COLLAB_STYLE_WEIGHT", 20)
	v.SetDefault("COLLAB_PLATFORM_WEIGHT", 15)
	v.SetDefault("COLLAB_ACTIVITY_WEIGHT", 10)
	v.SetDefault("COLLAB_REQUEST_TTL", "336h")
	v.SetDefault("COLLAB_DEFAULT_MATCH_LIMIT", 20)
	v.SetDefault("COLLAB_MAX_MATCH_LIMIT", 100)
	v.SetDefault("COLLAB_SWEEP_INTERVAL", "1h")

	v.SetDefault("ALERTS_CHECK_INTERVAL", "1h")
	v.SetDefault("ALERTS_THROTTLE_WINDOW", "12h")
	v.SetDefault("ALERTS_DEFAULT_THRESHOLD", 70)
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			DBName:       v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
			Issuer:      v.GetString("JWT_ISSUER"),
		},
		Storage: StorageConfig{
			Type: strings.ToLower(v.GetString("STORAGE_TYPE")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Gemini: GeminiConfig{
			APIKey:         v.GetString("GEMINI_API_KEY"),
			Model:          v.GetString("GEMINI_MODEL"),
			RequestsPerMin: v.GetInt("GEMINI_REQUESTS_PER_MIN"),
		},
		YouTube: YouTubeConfig{
			APIKey:     v.GetString("YOUTUBE_API_KEY"),
			MaxResults: v.GetInt64("YOUTUBE_MAX_RESULTS"),
			CacheTTL:   v.GetDuration("YOUTUBE_CACHE_TTL"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			GitHubClientID:     v.GetString("GITHUB_CLIENT_ID"),
			GitHubClientSecret: v.GetString("GITHUB_CLIENT_SECRET"),
		},
		Notify: NotifyConfig{
			SMTPHost:      v.GetString("SMTP_HOST"),
			SMTPPort:      v.GetInt("SMTP_PORT"),
			SMTPUser:      v.GetString("SMTP_USER"),
			SMTPPassword:  v.GetString("SMTP_PASSWORD"),
			EmailFrom:     v.GetString("EMAIL_FROM"),
			TwilioSID:     v.GetString("TWILIO_ACCOUNT_SID"),
			TwilioToken:   v.GetString("TWILIO_AUTH_TOKEN"),
			TwilioFrom:    v.GetString("TWILIO_PHONE_NUMBER"),
			TwilioBaseURL: v.GetString("TWILIO_BASE_URL"),
		},
		NATS: NATSConfig{
			URL: v.GetString("NATS_URL"),
		},
		Collab: CollabConfig{
			NicheWeight:       v.GetFloat64("COLLAB_NICHE_WEIGHT"),
			AudienceWeight:    v.GetFloat64("COLLAB_AUDIENCE_WEIGHT"),
			StyleWeight:       v.GetFloat64("COLLAB_STYLE_WEIGHT"),
			PlatformWeight:    v.GetFloat64("COLLAB_PLATFORM_WEIGHT"),
			ActivityWeight:    v.GetFloat64("COLLAB_ACTIVITY_WEIGHT"),
			RequestTTL:        v.GetDuration("COLLAB_REQUEST_TTL"),
			DefaultMatchLimit: v.GetInt("COLLAB_DEFAULT_MATCH_LIMIT"),
			MaxMatchLimit:     v.GetInt("COLLAB_MAX_MATCH_LIMIT"),
			SweepInterval:     v.GetDuration("COLLAB_SWEEP_INTERVAL"),
		},
		Alerts: AlertsConfig{
			CheckInterval:    v.GetDuration("ALERTS_CHECK_INTERVAL"),
			ThrottleWindow:   v.GetDuration("ALERTS_THROTTLE_WINDOW"),
			DefaultThreshold: v.GetInt("ALERTS_DEFAULT_THRESHOLD"),
		},
	}
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StoragePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	sum := c.Collab.NicheWeight + c.Collab.AudienceWeight + c.Collab.StyleWeight +
		c.Collab.PlatformWeight + c.Collab.ActivityWeight
	if sum != 100 {
		return fmt.Errorf("collab weights must sum to 100, got %v", sum)
	}
	if c.Collab.RequestTTL <= 0 {
		return fmt.Errorf("collab request TTL must be positive")
	}
	if c.Alerts.DefaultThreshold < 0 || c.Alerts.DefaultThreshold > 100 {
		return fmt.Errorf("alert threshold must be within 0..100")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}
