package quiz

import (
	"math"
	"sort"
)

// DefaultPassThreshold is the minimum passing score.
const DefaultPassThreshold = 70

// ChunkID maps a page to its quiz chunk (1-based), with slidesPerQuiz pages
// per chunk.
func ChunkID(page, slidesPerQuiz int) int {
	return (page-1)/slidesPerQuiz + 1
}

// ChunkPages returns the page range covered by a chunk.
func ChunkPages(chunkID, slidesPerQuiz int) []int {
	pages := make([]int, slidesPerQuiz)
	start := (chunkID-1)*slidesPerQuiz + 1
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

// IsChunkBoundary reports whether a page closes a chunk and should trigger
// its quiz.
func IsChunkBoundary(page, slidesPerQuiz int) bool {
	return page > 0 && page%slidesPerQuiz == 0
}

// CheckAnswer compares submitted answers against the answer key as sorted
// sequences: order-independent exact set equality. Grading never trusts a
// server verdict; it is a pure function of the two slices.
func CheckAnswer(submitted, correct []string) bool {
	if len(submitted) != len(correct) {
		return false
	}
	a := append([]string(nil), submitted...)
	b := append([]string(nil), correct...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GradeResult summarizes one graded attempt.
type GradeResult struct {
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Score   int  `json:"score"`
	Passed  bool `json:"passed"`
}

// Grade scores a full attempt. Unanswered questions grade as incorrect.
func Grade(questions []QuizQuestion, answers map[string][]string, passThreshold int) GradeResult {
	if passThreshold <= 0 {
		passThreshold = DefaultPassThreshold
	}

	result := GradeResult{Total: len(questions)}
	for _, q := range questions {
		if CheckAnswer(answers[q.ID], q.CorrectAnswers) {
			result.Correct++
		}
	}
	if result.Total > 0 {
		result.Score = int(math.Round(100 * float64(result.Correct) / float64(result.Total)))
	}
	result.Passed = result.Score >= passThreshold
	return result
}
