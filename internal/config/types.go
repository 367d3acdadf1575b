package config

// AppConfig holds runtime configuration loaded from YAML.
type AppConfig struct {
	Port           int           `yaml:"port"`
	Env            string        `yaml:"env"` // "development" | "production"
	DSN            string        `yaml:"dsn"` // MySQL DSN
	RedisURL       string        `yaml:"redis_url"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Storage        StorageConfig `yaml:"storage"`
	AI             AIConfig      `yaml:"ai"`
	TTS            TTSConfig     `yaml:"tts"`
	Quiz           QuizConfig    `yaml:"quiz"`
}

// StorageConfig configures the S3-compatible object store (R2 in production).
type StorageConfig struct {
	Endpoint            string `yaml:"endpoint"`
	Region              string `yaml:"region"`
	Bucket              string `yaml:"bucket"`
	AccessKeyID         string `yaml:"access_key_id"`
	SecretAccessKey     string `yaml:"secret_access_key"`
	PublicBaseURL       string `yaml:"public_base_url"`
	PathStyleAccess     bool   `yaml:"path_style_access"`
	PresentationsPrefix string `yaml:"presentations_prefix"`
}

// AIConfig lists the configured LLM providers and per-task model assignments.
type AIConfig struct {
	Providers   []AIProvider       `yaml:"providers"`
	ScriptModel *AIModelAssignment `yaml:"script_model,omitempty"`
	QuizModel   *AIModelAssignment `yaml:"quiz_model,omitempty"`
}

// AIModelAssignment pins a task to a provider and optionally overrides its model.
type AIModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model"`
}

// AIProvider describes a text-generation backend.
type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic | OpenRouter
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// TTSConfig configures the ElevenLabs-compatible speech endpoint.
type TTSConfig struct {
	Enable   bool   `yaml:"enable"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	VoiceID  string `yaml:"voice_id"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

// QuizConfig tunes comprehension-quiz gating and generation.
type QuizConfig struct {
	SlidesPerQuiz int `yaml:"slides_per_quiz"`
	QuestionCount int `yaml:"question_count"`
	PassThreshold int `yaml:"pass_threshold"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }
