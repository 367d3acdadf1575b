package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
dsn: "user:pass@tcp(localhost:3306)/slidecast"
redis_url: "redis://localhost:6379/0"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2333, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "https://api.elevenlabs.io", cfg.TTS.Endpoint)
	assert.Equal(t, "eleven_turbo_v2_5", cfg.TTS.Model)
	assert.Equal(t, 3, cfg.Quiz.SlidesPerQuiz)
	assert.Equal(t, 3, cfg.Quiz.QuestionCount)
	assert.Equal(t, 70, cfg.Quiz.PassThreshold)
	assert.Equal(t, "auto", cfg.Storage.Region)
	assert.Equal(t, "presentations/", cfg.Storage.PresentationsPrefix)
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
dsn: "user:pass@tcp(db:3306)/slidecast"
redis_url: "redis://cache:6379/0"
allowed_origins:
  - "*.example.com"
quiz:
  slides_per_quiz: 4
  question_count: 5
  pass_threshold: 80
ai:
  providers:
    - id: openrouter
      type: OpenRouter
      api_key: sk-test
      default_model: meta-llama/llama-3-8b
      enabled: true
  script_model:
    provider_id: openrouter
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, []string{"*.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 4, cfg.Quiz.SlidesPerQuiz)
	assert.Equal(t, 80, cfg.Quiz.PassThreshold)
	require.Len(t, cfg.AI.Providers, 1)
	require.NotNil(t, cfg.AI.ScriptModel)
	assert.Equal(t, "openrouter", cfg.AI.ScriptModel.ProviderID)
}

func TestLoadEnvFallbacks(t *testing.T) {
	t.Setenv("SLIDECAST_DSN", "env:pass@tcp(localhost:3306)/slidecast")
	t.Setenv("SLIDECAST_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("SLIDECAST_TTS_API_KEY", "xi-secret")
	t.Setenv("SLIDECAST_AI_API_KEY_OPEN_ROUTER", "sk-env")

	path := writeConfig(t, `
ai:
  providers:
    - id: open-router
      type: OpenRouter
      enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env:pass@tcp(localhost:3306)/slidecast", cfg.DSN)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, "xi-secret", cfg.TTS.APIKey)
	assert.Equal(t, "sk-env", cfg.AI.Providers[0].APIKey)
}

func TestLoadFileKeysWinOverEnv(t *testing.T) {
	t.Setenv("SLIDECAST_DSN", "env-dsn")

	path := writeConfig(t, `
dsn: "file-dsn"
redis_url: "redis://localhost:6379/0"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-dsn", cfg.DSN)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, `redis_url: "redis://localhost:6379/0"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn")

	_, err = Load(writeConfig(t, `dsn: "x"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis_url")

	_, err = Load(writeConfig(t, `
dsn: "x"
redis_url: "y"
quiz:
  slides_per_quiz: -1
`))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
