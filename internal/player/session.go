package player

import "context"

// Session composes the presentation and quiz controllers into the navigation
// surface the viewer binds its next/previous controls to.
type Session struct {
	Presentation *PresentationController
	Quiz         *QuizController
}

// NewSession wires both controllers against one API client.
func NewSession(client *Client, extract TextExtractor, pdfID string, slidesPerChunk, passThreshold int) *Session {
	return &Session{
		Presentation: NewPresentationController(client, extract, pdfID),
		Quiz:         NewQuizController(client, slidesPerChunk, passThreshold),
	}
}

// Next advances one page, unless the current page sits on an uncompleted
// chunk boundary, in which case the quiz modal opens and navigation stays
// put. Returns true when the page actually changed.
func (s *Session) Next(ctx context.Context) bool {
	state := s.Presentation.State()
	page := state.CurrentPage
	if state.TotalPages > 0 && page >= state.TotalPages {
		return false
	}
	if s.Quiz.ShouldGate(page, s.Presentation.PageText) {
		s.Quiz.Open(ctx, page, s.Presentation.PageText)
		return false
	}
	s.Presentation.VisitPage(page + 1)
	return true
}

// Prev moves one page back. Backward navigation is never gated.
func (s *Session) Prev() bool {
	page := s.Presentation.State().CurrentPage
	if page <= 1 {
		return false
	}
	s.Presentation.VisitPage(page - 1)
	return true
}

// Start opens the document on page one.
func (s *Session) Start(totalPages int) {
	s.Presentation.SetTotalPages(totalPages)
	s.Presentation.VisitPage(1)
}
