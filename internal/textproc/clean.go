package textproc

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	disallowedPattern = regexp.MustCompile(`[^\w\s\-\+\#\.\,\(\)]`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

// Clean prepares raw job description text for extraction: strips markup
// tags, replaces characters outside the allow-list with spaces and
// collapses whitespace. Clean(Clean(x)) == Clean(x) for any x.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = tagPattern.ReplaceAllString(text, "")
	text = disallowedPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Fold lowercases and trims a candidate for comparison.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Words splits a folded string into whitespace-separated tokens.
func Words(s string) []string {
	return strings.Fields(Fold(s))
}

// WordSet returns the distinct tokens of a folded string.
func WordSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range Words(s) {
		out[w] = struct{}{}
	}
	return out
}

// ContainsWord reports whether needle occurs in haystack on word
// boundaries. Plain substring checks misfire on compound skill names
// ("restful" vs "rest"), so boundaries are non-alphanumeric or ends.
func ContainsWord(haystack, needle string) bool {
	haystack = Fold(haystack)
	needle = Fold(needle)
	if haystack == "" || needle == "" {
		return false
	}

	pat := `(^|[^a-z0-9])` + regexp.QuoteMeta(needle) + `([^a-z0-9]|$)`
	re, err := regexp.Compile(pat)
	if err != nil {
		return false
	}
	return re.MatchString(haystack)
}
