package narration

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
)

// ContentHash derives the cache key for one slide's narration. It is a pure
// function of the slide's identity and text context, so identical inputs hash
// identically across process restarts.
func ContentHash(pdfID string, pageNumber, totalPages int, textContent, previousText, nextText string) string {
	content := strings.Join([]string{
		pdfID,
		strconv.Itoa(pageNumber),
		strconv.Itoa(totalPages),
		textContent,
		previousText,
		nextText,
	}, "-")
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", h)
}
