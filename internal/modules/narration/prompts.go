package narration

import (
	"fmt"
	"strings"
)

const (
	previousExcerptMax = 500
	nextExcerptMax     = 300
)

const scriptSystemPrompt = `You are a professional presentation speaker for a training seminar. You turn slide content into natural spoken narration.`

// BuildScriptPrompt assembles the narration prompt for one slide. Framing
// depends on the slide position, and neighboring slide text is injected as
// truncated excerpts so the narration flows between slides.
func BuildScriptPrompt(req *NarrationRequest) string {
	text := strings.TrimSpace(req.TextContent)
	if text == "" {
		text = "No text content available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a natural, engaging presentation script for this slide.\n\n")
	fmt.Fprintf(&b, "Slide %d of %d:\nSlide Content: %s\n\n", req.PageNumber, req.TotalPages, text)

	switch {
	case req.PageNumber == 1:
		b.WriteString("This is the OPENING slide: greet the audience and introduce the topic of the presentation.\n")
	case req.PageNumber == req.TotalPages:
		b.WriteString("This is the CLOSING slide: wrap up the presentation and thank the audience.\n")
	default:
		b.WriteString("This is a CONTINUATION slide: the presentation is already underway, so do NOT greet the audience or reintroduce the topic. Transition smoothly from the previous slide.\n")
	}

	if prev := strings.TrimSpace(req.PreviousText); prev != "" && req.PageNumber > 1 {
		fmt.Fprintf(&b, "\nFor context, the previous slide content was: %s\n", truncateExcerpt(prev, previousExcerptMax))
	}
	if next := strings.TrimSpace(req.NextText); next != "" && req.PageNumber < req.TotalPages {
		fmt.Fprintf(&b, "\nNext slide preview (you may hint at it, do not explain it yet): %s\n", truncateExcerpt(next, nextExcerptMax))
	}

	b.WriteString(`
Create a 30-50 second speaking script that:
- Sounds natural and conversational (like a real presenter, not just reading the slide)
- Explains key concepts in an engaging and educational way
- Maintains a professional training/educational tone
- IMPORTANT: write the script in the SAME language as the slide content, no translation
- Focuses on the main points and makes them accessible to the audience

Only return the script text, nothing else.`)

	return b.String()
}

func truncateExcerpt(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
