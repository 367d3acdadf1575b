package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkID(t *testing.T) {
	cases := []struct {
		page, per, want int
	}{
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{6, 3, 2},
		{7, 3, 3},
		{4, 4, 1},
		{5, 4, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ChunkID(tc.page, tc.per), "page %d per %d", tc.page, tc.per)
	}
}

func TestChunkPages(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, ChunkPages(1, 3))
	assert.Equal(t, []int{4, 5, 6}, ChunkPages(2, 3))
	assert.Equal(t, []int{1, 2, 3, 4}, ChunkPages(1, 4))
}

func TestIsChunkBoundary(t *testing.T) {
	assert.False(t, IsChunkBoundary(1, 3))
	assert.False(t, IsChunkBoundary(2, 3))
	assert.True(t, IsChunkBoundary(3, 3))
	assert.False(t, IsChunkBoundary(4, 3))
	assert.True(t, IsChunkBoundary(6, 3))
	assert.False(t, IsChunkBoundary(0, 3))
	assert.True(t, IsChunkBoundary(4, 4))
}

func TestCheckAnswerSingle(t *testing.T) {
	assert.True(t, CheckAnswer([]string{"A"}, []string{"A"}))
	assert.False(t, CheckAnswer([]string{"B"}, []string{"A"}))
	assert.False(t, CheckAnswer([]string{"A", "B"}, []string{"A"}))
	assert.False(t, CheckAnswer(nil, []string{"A"}))
}

func TestCheckAnswerMultipleOrderIndependent(t *testing.T) {
	correct := []string{"A", "C"}
	assert.True(t, CheckAnswer([]string{"C", "A"}, correct))
	assert.True(t, CheckAnswer([]string{"A", "C"}, correct))
	assert.False(t, CheckAnswer([]string{"A"}, correct))
	assert.False(t, CheckAnswer([]string{"A", "B"}, correct))
	assert.False(t, CheckAnswer([]string{"A", "B", "C"}, correct))
}

func gradeQuestions() []QuizQuestion {
	return []QuizQuestion{
		{ID: "q1", Type: KindSingle, Options: []string{"A", "B", "C"}, CorrectAnswers: []string{"A"}},
		{ID: "q2", Type: KindMultiple, Options: []string{"A", "B", "C"}, CorrectAnswers: []string{"A", "C"}},
		{ID: "q3", Type: KindSingle, Options: []string{"A", "B"}, CorrectAnswers: []string{"B"}},
	}
}

func TestGradeAllCorrect(t *testing.T) {
	result := Grade(gradeQuestions(), map[string][]string{
		"q1": {"A"},
		"q2": {"C", "A"},
		"q3": {"B"},
	}, DefaultPassThreshold)

	assert.Equal(t, 3, result.Correct)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
}

func TestGradeTwoOfThreeFails(t *testing.T) {
	result := Grade(gradeQuestions(), map[string][]string{
		"q1": {"A"},
		"q2": {"A", "C"},
		"q3": {"A"},
	}, DefaultPassThreshold)

	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 67, result.Score)
	assert.False(t, result.Passed)
}

func TestGradeExactThresholdPasses(t *testing.T) {
	questions := []QuizQuestion{
		{ID: "a", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
		{ID: "b", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
		{ID: "c", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
		{ID: "d", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
		{ID: "e", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
		{ID: "f", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
		{ID: "g", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
		{ID: "h", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
		{ID: "i", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
		{ID: "j", Type: KindSingle, Options: []string{"x", "y"}, CorrectAnswers: []string{"x"}},
	}
	answers := map[string][]string{}
	for i, q := range questions {
		if i < 7 {
			answers[q.ID] = []string{"x"}
		} else {
			answers[q.ID] = []string{"y"}
		}
	}

	result := Grade(questions, answers, DefaultPassThreshold)
	assert.Equal(t, 70, result.Score)
	assert.True(t, result.Passed)
}

func TestGradeUnansweredCountsIncorrect(t *testing.T) {
	result := Grade(gradeQuestions(), map[string][]string{"q1": {"A"}}, DefaultPassThreshold)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 33, result.Score)
	assert.False(t, result.Passed)
}

func TestGradeNoQuestions(t *testing.T) {
	result := Grade(nil, nil, DefaultPassThreshold)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
}
