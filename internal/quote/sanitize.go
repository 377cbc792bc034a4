package quote

import (
	"regexp"
	"strings"
)

var (
	markupTags = regexp.MustCompile(`<[^>]+>`)
	clockToken = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}$`)
	ampmToken  = regexp.MustCompile(`^\d{1,2}:\d{2}[AP]M$`)
	timeToken  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// Clean strips markup tags and the redundant digital timestamps some rows
// embed next to the excerpt, and normalises whitespace. It is idempotent:
// cleaning already-clean text changes nothing.
//
// Only standalone tokens are removed. A time written into the prose proper
// ("the 10:08 to Paddington") stays.
func Clean(text string) string {
	if text == "" {
		return text
	}

	tokens := strings.Fields(markupTags.ReplaceAllString(text, " "))

	kept := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if clockToken.MatchString(tok) || ampmToken.MatchString(tok) {
			continue
		}
		if timeToken.MatchString(tok) && i+1 < len(tokens) {
			if next := tokens[i+1]; next == "AM" || next == "PM" {
				i++
				continue
			}
		}
		kept = append(kept, tok)
	}

	return strings.Join(kept, " ")
}
