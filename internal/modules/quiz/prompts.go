package quiz

import (
	"fmt"
	"strings"
)

// BuildQuizPrompt assembles the knowledge-check prompt for one chunk of
// slides. The model must return the correct answers so grading can run
// locally without another round trip.
func BuildQuizPrompt(slides []SlideChunk, questionCount int) string {
	var slidesText strings.Builder
	for i, s := range slides {
		if i > 0 {
			slidesText.WriteString("\n")
		}
		text := strings.TrimSpace(s.Text)
		if text == "" {
			text = "No text"
		}
		fmt.Fprintf(&slidesText, "Slide %d: %s", s.Page, text)
	}

	return fmt.Sprintf(`You are creating a short knowledge check from training slides.
Slides (last %d):
%s

Generate exactly %d EASY questions that focus on core facts from these slides.
Mix radio (single correct) and checkbox (multiple correct) styles.

IMPORTANT: Include the correct answer(s) for each question so we can grade automatically.

Return ONLY JSON in this shape:
{
  "questions": [
    {
      "id": "q1",
      "question": "What ...?",
      "type": "single",
      "options": ["A", "B", "C", "D"],
      "correctAnswers": ["A"]
    },
    {
      "id": "q2",
      "question": "Which of the following...?",
      "type": "multiple",
      "options": ["A", "B", "C", "D"],
      "correctAnswers": ["A", "C"]
    }
  ]
}

Rules:
- For "single" type: correctAnswers must have exactly 1 option
- For "multiple" type: correctAnswers must have 2+ options
- correctAnswers must be exact matches from the options array
- Write the questions in the SAME language as the slide content
`, len(slides), slidesText.String(), questionCount)
}
