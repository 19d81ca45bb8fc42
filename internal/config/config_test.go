package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaultsWithMemoryStorage(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 14*24*time.Hour, cfg.Collab.RequestTTL)
	assert.Equal(t, 20, cfg.Collab.DefaultMatchLimit)
	assert.Equal(t, 30.0, cfg.Collab.NicheWeight)
	assert.Equal(t, 12*time.Hour, cfg.Alerts.ThrottleWindow)
	assert.Equal(t, time.Hour, cfg.Alerts.CheckInterval)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadRequiresDatabaseForPostgres(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "postgres")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DB_HOST", "")

	_, err := Load()
	assert.ErrorContains(t, err, "database host")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Type: StorageMemory},
			JWT:     JWTConfig{Secret: testSecret},
			Collab: CollabConfig{
				NicheWeight: 30, AudienceWeight: 25, StyleWeight: 20,
				PlatformWeight: 15, ActivityWeight: 10, RequestTTL: time.Hour,
			},
			Alerts: AlertsConfig{DefaultThreshold: 70},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.JWT.Secret = "short"
	assert.ErrorContains(t, cfg.Validate(), "at least 32")

	cfg = valid()
	cfg.Collab.StyleWeight = 25
	assert.ErrorContains(t, cfg.Validate(), "sum to 100")

	cfg = valid()
	cfg.Storage.Type = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "unknown storage")

	cfg = valid()
	cfg.Alerts.DefaultThreshold = 101
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", db.GetDSN())
}
