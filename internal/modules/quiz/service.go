package quiz

import (
	"context"
	"errors"
	"fmt"

	appcfg "github.com/slidecast/core/internal/config"
	"github.com/slidecast/core/internal/modules/ai"
	"go.uber.org/zap"
)

// TextGenerator produces a model reply for a prompt.
type TextGenerator func(ctx context.Context, prompt string) (string, error)

// Service generates comprehension quizzes from slide text. Quizzes are
// intentionally never cached: an explicit retry must produce fresh questions.
type Service struct {
	generate      TextGenerator
	questionCount int
	log           *zap.Logger
}

// NewService wires quiz generation against the configured LLM provider.
func NewService(cfg *appcfg.AppConfig, log *zap.Logger) *Service {
	aiCfg := cfg.AI
	assignment := cfg.AI.QuizModel
	generate := func(ctx context.Context, prompt string) (string, error) {
		provider := ai.SelectProvider(aiCfg, assignment)
		if provider == nil {
			return "", errors.New("no enabled AI provider")
		}
		// Low temperature keeps questions anchored to the slide facts.
		return ai.GenerateText(ctx, provider, "", prompt, ai.CallOptions{
			Temperature: 0.4,
			MaxTokens:   900,
		})
	}
	return &Service{generate: generate, questionCount: cfg.Quiz.QuestionCount, log: log}
}

// NewServiceWithGenerator is NewService with an injected generator, for tests.
func NewServiceWithGenerator(generate TextGenerator, questionCount int, log *zap.Logger) *Service {
	return &Service{generate: generate, questionCount: questionCount, log: log}
}

// GenerateQuiz produces the questions for one chunk of slides.
func (s *Service) GenerateQuiz(ctx context.Context, chunkID int, slides []SlideChunk) ([]QuizQuestion, error) {
	raw, err := s.generate(ctx, BuildQuizPrompt(slides, s.questionCount))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var parsed struct {
		Questions []QuizQuestion `json:"questions"`
	}
	if err := ai.UnmarshalJSONResponse(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	questions := make([]QuizQuestion, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		if err := validateQuestion(q); err != nil {
			s.log.Warn("dropping malformed quiz question",
				zap.Int("chunk", chunkID), zap.String("id", q.ID), zap.Error(err))
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no usable questions in model output", ErrGeneration)
	}
	return questions, nil
}

func validateQuestion(q QuizQuestion) error {
	if q.ID == "" || q.Question == "" {
		return errors.New("missing id or question text")
	}
	if len(q.Options) < 2 {
		return errors.New("fewer than 2 options")
	}
	if len(q.CorrectAnswers) == 0 {
		return errors.New("no correct answers")
	}

	options := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		options[opt] = struct{}{}
	}
	for _, ans := range q.CorrectAnswers {
		if _, ok := options[ans]; !ok {
			return fmt.Errorf("correct answer %q is not an option", ans)
		}
	}

	switch q.Type {
	case KindSingle:
		if len(q.CorrectAnswers) != 1 {
			return errors.New("single question must have exactly 1 correct answer")
		}
	case KindMultiple:
		if len(q.CorrectAnswers) < 2 {
			return errors.New("multiple question must have 2+ correct answers")
		}
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}
