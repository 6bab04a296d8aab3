package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equitylens/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(16), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, int64(16<<20), cfg.Upload.MaxBytes())
	assert.Equal(t, 90*time.Second, cfg.Vision.Timeout())
	assert.False(t, cfg.Vision.Enabled())
	assert.False(t, cfg.DB.Enabled)
	assert.False(t, cfg.S3.Enabled)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_VisionProvidersFromEnv(t *testing.T) {
	t.Setenv("EQUITYLENS_VISION_PRIMARY_PROVIDER", " Gemini ")
	t.Setenv("EQUITYLENS_VISION_PRIMARY_API_KEY", "g-key")
	t.Setenv("EQUITYLENS_VISION_SECONDARY_PROVIDER", "claude")
	t.Setenv("EQUITYLENS_VISION_SECONDARY_DEFAULT_MODEL", "claude-test")
	t.Setenv("EQUITYLENS_VISION_TIMEOUT_SECS", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.True(t, cfg.Vision.Enabled())
	assert.Equal(t, "gemini", cfg.Vision.PrimaryConfig().Provider)
	assert.Equal(t, "g-key", cfg.Vision.PrimaryConfig().APIKey)
	require.NotNil(t, cfg.Vision.SecondaryConfig())
	assert.Equal(t, "claude-test", cfg.Vision.SecondaryConfig().DefaultModel)
	assert.Nil(t, cfg.Vision.TertiaryConfig())
	assert.Equal(t, 30*time.Second, cfg.Vision.Timeout())
}

func TestLoad_PlatformPortOverride(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)

	t.Setenv("EQUITYLENS_SERVER_PORT", ":7070")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}

func TestLoad_RejectsNonPositiveUploadLimit(t *testing.T) {
	t.Setenv("EQUITYLENS_UPLOAD_MAX_FILE_SIZE_MB", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5433, Name: "n", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p@h:5433/n?sslmode=require", db.DSN())
}
