package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/slidecast/core/internal/modules/narration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	mu    sync.Mutex
	calls []int
	gate  chan struct{}
	err   error
}

func (c *scriptedClient) GenerateScript(ctx context.Context, req *narration.NarrationRequest) (*narration.NarrationResult, error) {
	c.mu.Lock()
	c.calls = append(c.calls, req.PageNumber)
	gate := c.gate
	err := c.err
	c.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &narration.NarrationResult{Script: fmt.Sprintf("script for page %d", req.PageNumber)}, nil
}

func (c *scriptedClient) pages() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.calls...)
}

type narrationEvent struct {
	page int
	memo PageNarration
}

func recordingController(client NarrationClient) (*PresentationController, chan narrationEvent) {
	extract := func(page int) (string, error) {
		return fmt.Sprintf("text %d", page), nil
	}
	ctrl := NewPresentationController(client, extract, "doc-1")
	events := make(chan narrationEvent, 16)
	ctrl.OnNarration = func(page int, n PageNarration) {
		events <- narrationEvent{page: page, memo: n}
	}
	return ctrl, events
}

func waitEvent(t *testing.T, events chan narrationEvent) narrationEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for narration event")
		return narrationEvent{}
	}
}

func TestVisitPageRequestsNarration(t *testing.T) {
	client := &scriptedClient{}
	ctrl, events := recordingController(client)
	ctrl.SetTotalPages(5)

	ctrl.VisitPage(1)

	ev := waitEvent(t, events)
	assert.Equal(t, 1, ev.page)
	assert.Equal(t, "script for page 1", ev.memo.Script)

	memo, ok := ctrl.Narration(1)
	require.True(t, ok)
	assert.Equal(t, "script for page 1", memo.Script)
}

func TestVisitPageWaitsForTotalPages(t *testing.T) {
	client := &scriptedClient{}
	ctrl, events := recordingController(client)

	// Document metadata has not loaded yet; nothing to send.
	ctrl.VisitPage(3)
	assert.Empty(t, client.pages())

	ctrl.SetTotalPages(5)
	ev := waitEvent(t, events)
	assert.Equal(t, 3, ev.page)
}

func TestVisitPageExtractsNeighbors(t *testing.T) {
	var mu sync.Mutex
	extracted := map[int]bool{}
	extract := func(page int) (string, error) {
		mu.Lock()
		extracted[page] = true
		mu.Unlock()
		return fmt.Sprintf("text %d", page), nil
	}

	ctrl := NewPresentationController(&scriptedClient{}, extract, "doc-1")
	ctrl.SetTotalPages(5)
	ctrl.VisitPage(3)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, extracted[2])
	assert.True(t, extracted[3])
	assert.True(t, extracted[4])
	assert.False(t, extracted[5])
}

func TestRevisitUsesMemoWithoutNetwork(t *testing.T) {
	client := &scriptedClient{}
	ctrl, events := recordingController(client)
	ctrl.SetTotalPages(5)

	ctrl.VisitPage(1)
	waitEvent(t, events)
	ctrl.VisitPage(2)
	waitEvent(t, events)

	ctrl.VisitPage(1)
	ev := waitEvent(t, events)
	assert.Equal(t, 1, ev.page)
	assert.Equal(t, "script for page 1", ev.memo.Script)

	assert.Equal(t, []int{1, 2}, client.pages(), "memo hit must not re-request")
}

func TestStaleResponseDropped(t *testing.T) {
	gate := make(chan struct{})
	client := &scriptedClient{gate: gate}
	ctrl, events := recordingController(client)
	ctrl.SetTotalPages(5)

	ctrl.VisitPage(1)
	// Navigate away before the page 1 response lands.
	ctrl.VisitPage(2)
	close(gate)

	ev := waitEvent(t, events)
	assert.Equal(t, 2, ev.page)
	assert.Equal(t, "script for page 2", ev.memo.Script)

	_, ok := ctrl.Narration(1)
	assert.False(t, ok, "cancelled response must not be memoized")
	assert.Equal(t, 2, ctrl.State().CurrentPage)

	select {
	case stray := <-events:
		t.Fatalf("unexpected event for page %d", stray.page)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRequestFailureFallsBack(t *testing.T) {
	client := &scriptedClient{err: errors.New("server unreachable")}
	ctrl, events := recordingController(client)
	ctrl.SetTotalPages(3)

	ctrl.VisitPage(1)

	ev := waitEvent(t, events)
	assert.True(t, ev.memo.Failed)
	assert.Equal(t, narration.FallbackScript, ev.memo.Script)
	assert.Nil(t, ev.memo.AudioURL)

	// Failures are not memoized, so a revisit retries.
	_, ok := ctrl.Narration(1)
	assert.False(t, ok)
	ctrl.VisitPage(1)
	waitEvent(t, events)
	assert.Equal(t, []int{1, 1}, client.pages())
}

func TestAudioLifecycle(t *testing.T) {
	url := "https://cdn.example.com/audio/abc.mp3"
	client := &audioClient{url: url}
	ctrl, events := recordingController(client)
	ctrl.SetTotalPages(2)

	ctrl.VisitPage(1)
	waitEvent(t, events)
	assert.True(t, ctrl.State().IsSpeaking)

	ctrl.StopAudio()
	assert.False(t, ctrl.State().IsSpeaking)

	assert.True(t, ctrl.ResumeAudio())
	assert.True(t, ctrl.State().IsSpeaking)
}

type audioClient struct {
	url string
}

func (c *audioClient) GenerateScript(_ context.Context, req *narration.NarrationRequest) (*narration.NarrationResult, error) {
	u := c.url
	return &narration.NarrationResult{Script: "with audio", AudioURL: &u}, nil
}

func TestResumeAudioWithoutNarration(t *testing.T) {
	ctrl := NewPresentationController(&scriptedClient{}, nil, "doc-1")
	assert.False(t, ctrl.ResumeAudio())
}
