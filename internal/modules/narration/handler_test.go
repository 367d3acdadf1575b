package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postScript(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-script", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateScriptEndpoint(t *testing.T) {
	svc := NewServiceWithGenerator(newMemoryCache(), nil, nil, staticGenerator("Welcome everyone."), zap.NewNop())
	r := newTestRouter(svc)

	w := postScript(t, r, NarrationRequest{
		PDFID: "doc-1", PageNumber: 1, TotalPages: 3, TextContent: "Intro",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var result NarrationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Welcome everyone.", result.Script)
	assert.Nil(t, result.AudioURL)
	assert.False(t, result.Cached)
}

func TestGenerateScriptEndpointValidation(t *testing.T) {
	svc := NewServiceWithGenerator(newMemoryCache(), nil, nil, staticGenerator("x"), zap.NewNop())
	r := newTestRouter(svc)

	for name, body := range map[string]interface{}{
		"missing pdf id": gin.H{"pageNumber": 1, "totalPages": 3},
		"zero page":      gin.H{"pdfId": "doc", "pageNumber": 0, "totalPages": 3},
		"zero total":     gin.H{"pdfId": "doc", "pageNumber": 1, "totalPages": 0},
	} {
		w := postScript(t, r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestGenerateScriptEndpointFallback(t *testing.T) {
	gen := func(context.Context, string, string) (string, error) {
		return "", errors.New("provider down")
	}
	svc := NewServiceWithGenerator(newMemoryCache(), nil, nil, gen, zap.NewNop())
	r := newTestRouter(svc)

	w := postScript(t, r, NarrationRequest{
		PDFID: "doc-1", PageNumber: 2, TotalPages: 3, TextContent: "Body",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var payload struct {
		Script   string  `json:"script"`
		AudioURL *string `json:"audioUrl"`
		Error    string  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, FallbackScript, payload.Script)
	assert.Nil(t, payload.AudioURL)
	assert.NotEmpty(t, payload.Error)
}
