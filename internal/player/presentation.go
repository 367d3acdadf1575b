package player

import (
	"context"
	"sync"

	"github.com/slidecast/core/internal/modules/narration"
)

// PageNarration is the memoized narration for one page.
type PageNarration struct {
	Script   string
	AudioURL *string
	Failed   bool
}

// PresentationState is a read-only snapshot of the controller.
type PresentationState struct {
	CurrentPage     int
	TotalPages      int
	IsLoadingScript bool
	IsSpeaking      bool
}

// PresentationController owns the slide-visit state machine: current page,
// per-page extracted text, narration memoization, audio playback flags, and
// cancellation of stale narration requests. All state lives in this explicit
// object; nothing is ambient.
type PresentationController struct {
	mu sync.Mutex

	client  NarrationClient
	extract TextExtractor
	pdfID   string

	currentPage int
	totalPages  int
	texts       map[int]string
	narrations  map[int]PageNarration

	isLoadingScript bool
	isSpeaking      bool

	// Cancellation token for the in-flight narration request. Navigating
	// invalidates it before issuing a new one, so a late response for a
	// previous page can never mutate visible state.
	cancelInflight context.CancelFunc

	// OnNarration is invoked (outside the lock) when a page's narration
	// becomes available or fails; rendering hangs off this.
	OnNarration func(page int, n PageNarration)
}

// NewPresentationController builds a controller for one document.
func NewPresentationController(client NarrationClient, extract TextExtractor, pdfID string) *PresentationController {
	return &PresentationController{
		client:     client,
		extract:    extract,
		pdfID:      pdfID,
		texts:      make(map[int]string),
		narrations: make(map[int]PageNarration),
	}
}

// SetTotalPages records the page count once the document loads. If a page is
// already being viewed, its pending narration request fires now.
func (p *PresentationController) SetTotalPages(n int) {
	p.mu.Lock()
	p.totalPages = n
	page := p.currentPage
	var notify func()
	if page >= 1 {
		notify = p.maybeRequestLocked(page)
	}
	p.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// VisitPage is the single entry point for page navigation and initial render.
// It cancels any stale narration request, stops audio immediately, extracts
// the page text (plus a bounded lookahead of one page in each direction), and
// fires the narration request once text and total pages are both known.
func (p *PresentationController) VisitPage(page int) {
	if page < 1 {
		return
	}

	p.mu.Lock()
	p.currentPage = page
	p.isSpeaking = false
	p.isLoadingScript = false
	if p.cancelInflight != nil {
		p.cancelInflight()
		p.cancelInflight = nil
	}

	p.extractLocked(page)
	// Pre-extract neighbors so the next navigation has context available
	// without blocking this one.
	p.extractLocked(page - 1)
	if p.totalPages == 0 || page+1 <= p.totalPages {
		p.extractLocked(page + 1)
	}

	notify := p.maybeRequestLocked(page)
	p.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// extractLocked fills the in-memory text cache for a page if absent.
func (p *PresentationController) extractLocked(page int) {
	if page < 1 || p.extract == nil {
		return
	}
	if _, ok := p.texts[page]; ok {
		return
	}
	text, err := p.extract(page)
	if err != nil {
		return
	}
	p.texts[page] = text
}

// maybeRequestLocked resolves the narration for the current page: memo hit
// resumes playback with no network call, otherwise an in-flight request is
// started. Returns a notification closure to run outside the lock.
func (p *PresentationController) maybeRequestLocked(page int) func() {
	if p.totalPages == 0 {
		return nil
	}
	text, ok := p.texts[page]
	if !ok {
		return nil
	}

	if memo, ok := p.narrations[page]; ok {
		p.isSpeaking = memo.AudioURL != nil
		if cb := p.OnNarration; cb != nil {
			return func() { cb(page, memo) }
		}
		return nil
	}

	req := &narration.NarrationRequest{
		PDFID:        p.pdfID,
		PageNumber:   page,
		TotalPages:   p.totalPages,
		TextContent:  text,
		PreviousText: p.texts[page-1],
		NextText:     p.texts[page+1],
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancelInflight = cancel
	p.isLoadingScript = true

	go p.requestNarration(ctx, page, req)
	return nil
}

func (p *PresentationController) requestNarration(ctx context.Context, page int, req *narration.NarrationRequest) {
	result, err := p.client.GenerateScript(ctx, req)

	p.mu.Lock()
	// Stale responses are dropped silently: only the request matching the
	// current page may update visible state.
	if ctx.Err() != nil || p.currentPage != page {
		p.mu.Unlock()
		return
	}
	p.isLoadingScript = false

	var memo PageNarration
	if err != nil {
		memo = PageNarration{Script: narration.FallbackScript, Failed: true}
	} else {
		memo = PageNarration{Script: result.Script, AudioURL: result.AudioURL}
		p.narrations[page] = memo
		p.isSpeaking = memo.AudioURL != nil
	}
	cb := p.OnNarration
	p.mu.Unlock()

	if cb != nil {
		cb(page, memo)
	}
}

// StopAudio halts playback without touching the memo.
func (p *PresentationController) StopAudio() {
	p.mu.Lock()
	p.isSpeaking = false
	p.mu.Unlock()
}

// ResumeAudio restarts playback for the current page if it has audio.
func (p *PresentationController) ResumeAudio() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	memo, ok := p.narrations[p.currentPage]
	if !ok || memo.AudioURL == nil {
		return false
	}
	p.isSpeaking = true
	return true
}

// PageText returns the extracted text for a page, if known.
func (p *PresentationController) PageText(page int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	text, ok := p.texts[page]
	return text, ok
}

// Narration returns the memoized narration for a page, if any.
func (p *PresentationController) Narration(page int) (PageNarration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	memo, ok := p.narrations[page]
	return memo, ok
}

// State returns a snapshot of the controller's visible state.
func (p *PresentationController) State() PresentationState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PresentationState{
		CurrentPage:     p.currentPage,
		TotalPages:      p.totalPages,
		IsLoadingScript: p.isLoadingScript,
		IsSpeaking:      p.isSpeaking,
	}
}
