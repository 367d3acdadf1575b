package narration

import "errors"

// FallbackScript is returned verbatim when script generation fails.
const FallbackScript = "Unable to generate script for this slide."

var (
	// ErrCacheUnavailable marks a cache store read/write failure. Fatal for
	// the request; no fallback generation is attempted past this point.
	ErrCacheUnavailable = errors.New("script cache unavailable")
	// ErrGeneration marks an LLM failure or malformed output. Fatal: there is
	// no narration without a script.
	ErrGeneration = errors.New("script generation failed")
)

// NarrationRequest describes one slide visit. Transient, never persisted.
type NarrationRequest struct {
	PDFID        string `json:"pdfId"        binding:"required"`
	PageNumber   int    `json:"pageNumber"   binding:"required,min=1"`
	TotalPages   int    `json:"totalPages"   binding:"required,min=1"`
	TextContent  string `json:"textContent"`
	PreviousText string `json:"previousText"`
	NextText     string `json:"nextText"`
}

// NarrationResult is the orchestrator's answer for one slide.
type NarrationResult struct {
	Script   string  `json:"script"`
	AudioURL *string `json:"audioUrl"`
	Cached   bool    `json:"cached"`
}
