package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

const maxMarkupPasses = 3

// Text is the default text sanitizer. It is safe for concurrent use.
type Text struct {
	policy    *bluemonday.Policy
	multiline Pipeline
}

func NewText() *Text {
	t := &Text{policy: bluemonday.StrictPolicy()}
	t.multiline = Pipeline{
		norm.NFC.String,
		normalizeNewlines,
		replaceExoticSpaces,
		dropControl,
		collapseZalgo,
		t.stripMarkup,
		trimSpacesAndTabs,
	}
	return t
}

// Clean neutralizes s and returns it as a single trimmed line.
func (t *Text) Clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(flattenNewlines(t.multiline.Apply(s)))
}

// CleanKeepNewlines neutralizes s but keeps its line breaks.
func (t *Text) CleanKeepNewlines(s string) string {
	if s == "" {
		return ""
	}
	return t.multiline.Apply(s)
}

// stripMarkup removes tags and decodes entities until the text is stable, so
// entity-encoded markup cannot survive a single decode.
func (t *Text) stripMarkup(s string) string {
	for i := 0; i < maxMarkupPasses; i++ {
		if !strings.ContainsAny(s, "<&") {
			return s
		}
		next := html.UnescapeString(t.policy.Sanitize(s))
		if next == s {
			return s
		}
		s = next
	}
	return s
}
