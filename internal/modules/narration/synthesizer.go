package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appcfg "github.com/slidecast/core/internal/config"
)

// ErrScriptEmpty is returned when synthesis is requested for an empty script.
var ErrScriptEmpty = errors.New("script cannot be empty")

// Synthesizer converts a narration script into speech audio. Implementations
// are independently fallible; the orchestrator degrades to text-only
// narration when synthesis fails.
type Synthesizer interface {
	Synthesize(ctx context.Context, script string) (audio []byte, mediaType string, err error)
}

// ElevenLabsSynthesizer speaks the ElevenLabs streaming-free TTS API.
type ElevenLabsSynthesizer struct {
	endpoint string
	apiKey   string
	voiceID  string
	model    string
	language string
	client   *http.Client
}

// NewElevenLabsSynthesizer builds a synthesizer from config, or nil when TTS
// is disabled or incompletely configured.
func NewElevenLabsSynthesizer(cfg appcfg.TTSConfig) *ElevenLabsSynthesizer {
	if !cfg.Enable || strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.VoiceID) == "" {
		return nil
	}
	return &ElevenLabsSynthesizer{
		endpoint: strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		apiKey:   strings.TrimSpace(cfg.APIKey),
		voiceID:  strings.TrimSpace(cfg.VoiceID),
		model:    strings.TrimSpace(cfg.Model),
		language: strings.TrimSpace(cfg.Language),
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type elevenLabsRequest struct {
	Text         string `json:"text"`
	ModelID      string `json:"model_id,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Synthesize posts the script to the text-to-speech endpoint and returns the
// raw audio bytes with their media type.
func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, script string) ([]byte, string, error) {
	if strings.TrimSpace(script) == "" {
		return nil, "", ErrScriptEmpty
	}

	body, err := json.Marshal(elevenLabsRequest{
		Text:         script,
		ModelID:      s.model,
		LanguageCode: s.language,
	})
	if err != nil {
		return nil, "", fmt.Errorf("marshal tts request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.endpoint, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, "", fmt.Errorf("tts service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(errBody)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read tts response: %w", err)
	}
	if len(audio) == 0 {
		return nil, "", errors.New("tts service returned empty audio")
	}

	mediaType := resp.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "audio/mpeg"
	}
	return audio, mediaType, nil
}
