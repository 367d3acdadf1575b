// Package player implements the viewer-side slide and quiz orchestration as
// explicit state machines, decoupled from any rendering environment so the
// gating and cancellation rules are unit-testable.
package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/slidecast/core/internal/modules/narration"
	"github.com/slidecast/core/internal/modules/quiz"
)

// NarrationClient requests narration for one slide. Implementations must
// honor context cancellation: a cancelled request's response is never used.
type NarrationClient interface {
	GenerateScript(ctx context.Context, req *narration.NarrationRequest) (*narration.NarrationResult, error)
}

// QuizClient requests a fresh quiz for one chunk of slides.
type QuizClient interface {
	GenerateQuiz(ctx context.Context, chunkID int, slides []quiz.SlideChunk) ([]quiz.QuizQuestion, error)
}

// TextExtractor pulls one page's text layer from the rendering engine.
type TextExtractor func(page int) (string, error)

// Client talks to the slidecast API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds an API client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// GenerateScript calls POST /api/v1/generate-script.
func (c *Client) GenerateScript(ctx context.Context, req *narration.NarrationRequest) (*narration.NarrationResult, error) {
	var result narration.NarrationResult
	if err := c.postJSON(ctx, "/api/v1/generate-script", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateQuiz calls POST /api/v1/quiz with mode "generate".
func (c *Client) GenerateQuiz(ctx context.Context, chunkID int, slides []quiz.SlideChunk) ([]quiz.QuizQuestion, error) {
	body := quiz.GenerateQuizDTO{Mode: "generate", ChunkID: chunkID, Slides: slides}
	var result quiz.QuizResponse
	if err := c.postJSON(ctx, "/api/v1/quiz", body, &result); err != nil {
		return nil, err
	}
	return result.Questions, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = apiErr.Message
		}
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("%s: %s", path, msg)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
