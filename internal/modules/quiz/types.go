package quiz

import "errors"

// ErrGeneration marks a quiz generation failure (model error or unusable output).
var ErrGeneration = errors.New("quiz generation failed")

// QuestionKind distinguishes radio-style from checkbox-style questions.
type QuestionKind string

const (
	KindSingle   QuestionKind = "single"
	KindMultiple QuestionKind = "multiple"
)

// QuizQuestion is one generated question. CorrectAnswers are exact string
// matches from Options so grading can run locally on the client.
type QuizQuestion struct {
	ID             string       `json:"id"`
	Question       string       `json:"question"`
	Type           QuestionKind `json:"type"`
	Options        []string     `json:"options"`
	CorrectAnswers []string     `json:"correctAnswers"`
}

// SlideChunk is one slide's extracted text inside a quiz request.
type SlideChunk struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// GenerateQuizDTO is the request body for POST /quiz.
type GenerateQuizDTO struct {
	Mode    string       `json:"mode"`
	ChunkID int          `json:"chunkId"`
	Slides  []SlideChunk `json:"slides"`
}

// QuizResponse is the generated quiz for one chunk.
type QuizResponse struct {
	ChunkID   int            `json:"chunkId"`
	Questions []QuizQuestion `json:"questions"`
}
