package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reZalgo = regexp.MustCompile(`(\p{M}{2})\p{M}+`)

	spaceReplacer = strings.NewReplacer(
		"\u00a0", " ", // no-break space
		"\u1680", " ", // ogham space mark
		"\u180e", " ", // mongolian vowel separator
		"\u2000", " ", "\u2001", " ", "\u2002", " ", "\u2003", " ",
		"\u2004", " ", "\u2005", " ", "\u2006", " ", "\u2007", " ",
		"\u2008", " ", "\u2009", " ", "\u200a", " ",
		"\u200b", " ", // zero width space
		"\u202f", " ", // narrow no-break space
		"\u205f", " ", // medium mathematical space
		"\u3000", " ", // ideographic space
		"\ufeff", " ", // byte order mark
	)

	newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

func replaceExoticSpaces(s string) string {
	return spaceReplacer.Replace(s)
}

func normalizeNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

// dropControl removes control characters, keeping newlines and turning tabs into spaces.
func dropControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

func collapseZalgo(s string) string {
	return reZalgo.ReplaceAllString(s, "$1")
}

func flattenNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func trimSpacesAndTabs(s string) string {
	return strings.Trim(s, " \t")
}

// SanitizeSlice applies strategy to every value and drops empty results and duplicates.
func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
