package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort = 2333
	defaultEnv  = "development"

	defaultTTSEndpoint = "https://api.elevenlabs.io"
	defaultTTSModel    = "eleven_turbo_v2_5"

	defaultSlidesPerQuiz = 3
	defaultQuestionCount = 3
	defaultPassThreshold = 70
)

// Load reads and validates the YAML config at path. Secrets missing from the
// file fall back to environment variables so deployments can keep keys out of
// the config file.
func Load(path string) (*AppConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(cfg)
	applyEnvFallbacks(cfg)

	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("config: dsn is required")
	}
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, fmt.Errorf("config: redis_url is required")
	}
	if cfg.Quiz.SlidesPerQuiz < 1 {
		return nil, fmt.Errorf("config: quiz.slides_per_quiz must be >= 1")
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = defaultEnv
	}
	if strings.TrimSpace(cfg.TTS.Endpoint) == "" {
		cfg.TTS.Endpoint = defaultTTSEndpoint
	}
	if strings.TrimSpace(cfg.TTS.Model) == "" {
		cfg.TTS.Model = defaultTTSModel
	}
	if cfg.Quiz.SlidesPerQuiz == 0 {
		cfg.Quiz.SlidesPerQuiz = defaultSlidesPerQuiz
	}
	if cfg.Quiz.QuestionCount == 0 {
		cfg.Quiz.QuestionCount = defaultQuestionCount
	}
	if cfg.Quiz.PassThreshold == 0 {
		cfg.Quiz.PassThreshold = defaultPassThreshold
	}
	if strings.TrimSpace(cfg.Storage.Region) == "" {
		cfg.Storage.Region = "auto"
	}
	if strings.TrimSpace(cfg.Storage.PresentationsPrefix) == "" {
		cfg.Storage.PresentationsPrefix = "presentations/"
	}
}

func applyEnvFallbacks(cfg *AppConfig) {
	setIfEmpty(&cfg.DSN, "SLIDECAST_DSN")
	setIfEmpty(&cfg.RedisURL, "SLIDECAST_REDIS_URL")
	setIfEmpty(&cfg.Storage.AccessKeyID, "SLIDECAST_S3_ACCESS_KEY_ID")
	setIfEmpty(&cfg.Storage.SecretAccessKey, "SLIDECAST_S3_SECRET_ACCESS_KEY")
	setIfEmpty(&cfg.TTS.APIKey, "SLIDECAST_TTS_API_KEY")

	for i := range cfg.AI.Providers {
		if strings.TrimSpace(cfg.AI.Providers[i].APIKey) != "" {
			continue
		}
		// Per-provider key: SLIDECAST_AI_API_KEY_<ID>, uppercased.
		envKey := "SLIDECAST_AI_API_KEY_" + strings.ToUpper(strings.ReplaceAll(cfg.AI.Providers[i].ID, "-", "_"))
		if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
			cfg.AI.Providers[i].APIKey = v
		}
	}
}

func setIfEmpty(dst *string, envKey string) {
	if strings.TrimSpace(*dst) != "" {
		return
	}
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = v
	}
}
