package narration

import (
	"context"
	"errors"
	"fmt"

	appcfg "github.com/slidecast/core/internal/config"
	"github.com/slidecast/core/internal/models"
	"github.com/slidecast/core/internal/modules/ai"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Uploader persists audio bytes under a content-derived key and returns a
// durable retrieval URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// TextGenerator produces the narration script for a prompt.
type TextGenerator func(ctx context.Context, systemPrompt, prompt string) (string, error)

// Service orchestrates the narration pipeline for one slide:
// hash → cache lookup → generate → synthesize (best effort) → persist.
type Service struct {
	cache    CacheStore
	synth    Synthesizer
	uploader Uploader
	generate TextGenerator
	log      *zap.Logger
}

// NewService wires the pipeline against the configured LLM provider.
func NewService(db *gorm.DB, cfg *appcfg.AppConfig, synth Synthesizer, uploader Uploader, log *zap.Logger) *Service {
	aiCfg := cfg.AI
	assignment := cfg.AI.ScriptModel
	generate := func(ctx context.Context, systemPrompt, prompt string) (string, error) {
		provider := ai.SelectProvider(aiCfg, assignment)
		if provider == nil {
			return "", errors.New("no enabled AI provider")
		}
		return ai.GenerateText(ctx, provider, systemPrompt, prompt, ai.CallOptions{
			Temperature: 0.7,
			MaxTokens:   600,
		})
	}
	return &Service{cache: NewGormCache(db), synth: synth, uploader: uploader, generate: generate, log: log}
}

// NewServiceWithGenerator is NewService with an injected cache and generator,
// for tests.
func NewServiceWithGenerator(cache CacheStore, synth Synthesizer, uploader Uploader, generate TextGenerator, log *zap.Logger) *Service {
	return &Service{cache: cache, synth: synth, uploader: uploader, generate: generate, log: log}
}

// Generate runs the pipeline for one slide. Script generation failure is
// fatal; synthesis and upload failures degrade to a nil audio URL.
func (s *Service) Generate(ctx context.Context, req *NarrationRequest) (*NarrationResult, error) {
	hash := ContentHash(req.PDFID, req.PageNumber, req.TotalPages, req.TextContent, req.PreviousText, req.NextText)

	cached, err := s.cache.Lookup(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	if cached != nil {
		return &NarrationResult{Script: cached.Script, AudioURL: cached.AudioURL, Cached: true}, nil
	}

	script, err := s.generate(ctx, scriptSystemPrompt, BuildScriptPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	// Audio is generated from the finished script, never from raw slide text.
	audioURL := s.synthesizeAudio(ctx, hash, script)

	entry := models.ScriptCacheModel{
		ContentHash: hash,
		PDFID:       req.PDFID,
		PageNumber:  req.PageNumber,
		TotalPages:  req.TotalPages,
		Script:      script,
		AudioURL:    audioURL,
	}
	if err := s.cache.Save(ctx, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	return &NarrationResult{Script: script, AudioURL: audioURL, Cached: false}, nil
}

// synthesizeAudio runs TTS and upload best-effort, returning nil on any failure.
func (s *Service) synthesizeAudio(ctx context.Context, hash, script string) *string {
	if s.synth == nil || s.uploader == nil {
		return nil
	}

	audio, mediaType, err := s.synth.Synthesize(ctx, script)
	if err != nil {
		s.log.Warn("speech synthesis failed, continuing without audio",
			zap.String("hash", hash), zap.Error(err))
		return nil
	}

	key := AudioKey(hash)
	url, err := s.uploader.Upload(ctx, key, audio, mediaType)
	if err != nil {
		s.log.Warn("audio upload failed, continuing without audio",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return &url
}

// AudioKey is the object-store key for a content hash's audio. Deriving it
// from the hash keeps uploads idempotent and the URL reconstructible.
func AudioKey(hash string) string {
	return "audio/" + hash + ".mp3"
}
