package player

import (
	"context"
	"sync"

	"github.com/slidecast/core/internal/modules/quiz"
)

// QuizState is a snapshot of the quiz modal.
type QuizState struct {
	Open      bool
	Loading   bool
	ChunkID   int
	Questions []quiz.QuizQuestion
	Result    *quiz.GradeResult
	Err       error
}

// QuizController gates forward navigation on periodic knowledge checks. Every
// slidesPerChunk pages form a chunk; crossing a chunk boundary forward blocks
// until the chunk's quiz has been attempted. Completion is per session and
// per chunk, so revisiting a chunk never re-gates it.
type QuizController struct {
	mu sync.Mutex

	client         QuizClient
	slidesPerChunk int
	passThreshold  int

	completed map[int]quiz.GradeResult

	open      bool
	loading   bool
	chunkID   int
	questions []quiz.QuizQuestion
	result    *quiz.GradeResult
	err       error

	// OnChange is invoked (outside the lock) whenever the modal state
	// moves; rendering hangs off this.
	OnChange func(QuizState)
}

// NewQuizController builds a controller with the given chunk size and pass
// threshold. Non-positive arguments fall back to the defaults.
func NewQuizController(client QuizClient, slidesPerChunk, passThreshold int) *QuizController {
	if slidesPerChunk <= 0 {
		slidesPerChunk = 3
	}
	if passThreshold <= 0 {
		passThreshold = quiz.DefaultPassThreshold
	}
	return &QuizController{
		client:         client,
		slidesPerChunk: slidesPerChunk,
		passThreshold:  passThreshold,
		completed:      make(map[int]quiz.GradeResult),
	}
}

// ShouldGate reports whether advancing past the given page must first pass
// through a quiz. It gates only on an uncompleted chunk boundary, and only
// when every page of the chunk has extracted text to build the quiz from.
func (q *QuizController) ShouldGate(page int, pageText func(int) (string, bool)) bool {
	if !quiz.IsChunkBoundary(page, q.slidesPerChunk) {
		return false
	}
	chunkID := quiz.ChunkID(page, q.slidesPerChunk)

	q.mu.Lock()
	_, done := q.completed[chunkID]
	q.mu.Unlock()
	if done {
		return false
	}

	for _, p := range quiz.ChunkPages(chunkID, q.slidesPerChunk) {
		if _, ok := pageText(p); !ok {
			return false
		}
	}
	return true
}

// Open shows the blocking modal for the chunk ending at page and requests a
// fresh quiz. The request runs asynchronously; errors land in the modal state
// and persist until Retry.
func (q *QuizController) Open(ctx context.Context, page int, pageText func(int) (string, bool)) {
	chunkID := quiz.ChunkID(page, q.slidesPerChunk)
	pages := quiz.ChunkPages(chunkID, q.slidesPerChunk)

	slides := make([]quiz.SlideChunk, 0, len(pages))
	for _, p := range pages {
		text, ok := pageText(p)
		if !ok {
			continue
		}
		slides = append(slides, quiz.SlideChunk{Page: p, Text: text})
	}

	q.mu.Lock()
	q.open = true
	q.loading = true
	q.chunkID = chunkID
	q.questions = nil
	q.result = nil
	q.err = nil
	state := q.stateLocked()
	q.mu.Unlock()
	q.notify(state)

	go q.fetch(ctx, chunkID, slides)
}

// Retry discards the failed attempt and regenerates from scratch. Questions
// are never reused across attempts.
func (q *QuizController) Retry(ctx context.Context, pageText func(int) (string, bool)) {
	q.mu.Lock()
	chunkID := q.chunkID
	q.mu.Unlock()
	pages := quiz.ChunkPages(chunkID, q.slidesPerChunk)
	q.Open(ctx, pages[len(pages)-1], pageText)
}

func (q *QuizController) fetch(ctx context.Context, chunkID int, slides []quiz.SlideChunk) {
	questions, err := q.client.GenerateQuiz(ctx, chunkID, slides)

	q.mu.Lock()
	if !q.open || q.chunkID != chunkID {
		q.mu.Unlock()
		return
	}
	q.loading = false
	if err != nil {
		q.err = err
	} else {
		q.questions = questions
	}
	state := q.stateLocked()
	q.mu.Unlock()
	q.notify(state)
}

// Submit grades the answers locally against the loaded questions, records the
// attempt as the chunk's completion, and closes the modal. Any graded attempt
// unlocks the gate regardless of score; the result carries pass or fail.
func (q *QuizController) Submit(answers map[string][]string) (quiz.GradeResult, bool) {
	q.mu.Lock()
	if !q.open || q.loading || len(q.questions) == 0 {
		q.mu.Unlock()
		return quiz.GradeResult{}, false
	}
	result := quiz.Grade(q.questions, answers, q.passThreshold)
	q.completed[q.chunkID] = result
	q.result = &result
	q.open = false
	state := q.stateLocked()
	q.mu.Unlock()
	q.notify(state)
	return result, true
}

// Completed returns the recorded result for a chunk, if attempted.
func (q *QuizController) Completed(chunkID int) (quiz.GradeResult, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	r, ok := q.completed[chunkID]
	return r, ok
}

// State returns a snapshot of the modal state.
func (q *QuizController) State() QuizState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stateLocked()
}

func (q *QuizController) stateLocked() QuizState {
	return QuizState{
		Open:      q.open,
		Loading:   q.loading,
		ChunkID:   q.chunkID,
		Questions: q.questions,
		Result:    q.result,
		Err:       q.err,
	}
}

func (q *QuizController) notify(state QuizState) {
	if cb := q.OnChange; cb != nil {
		cb(state)
	}
}
