package dialogue

import (
	"regexp"
	"strings"
)

var (
	// "1. **Aria** - description"
	suggestionHeader = regexp.MustCompile(`\d+\.\s+\*\*([^*]+)\*\*\s+-\s+`)
	// A description runs until the next numbered line.
	suggestionBoundary = regexp.MustCompile(`\n\d+\.`)
)

// ExtractSuggestions pulls numbered, bolded names out of a prose answer. It
// returns an empty, non-nil slice when nothing matches.
func ExtractSuggestions(text string) []Suggestion {
	out := []Suggestion{}

	pos := 0
	for pos < len(text) {
		loc := suggestionHeader.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		name := strings.TrimSpace(text[pos+loc[2] : pos+loc[3]])
		bodyStart := pos + loc[1]

		bodyEnd := len(text)
		if b := suggestionBoundary.FindStringIndex(text[bodyStart:]); b != nil {
			bodyEnd = bodyStart + b[0]
		}

		if name != "" {
			out = append(out, Suggestion{
				Name:        name,
				Description: strings.TrimSpace(text[bodyStart:bodyEnd]),
			})
		}
		pos = bodyEnd
	}

	return out
}
