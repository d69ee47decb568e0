package triage

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spec-kit/ticket-router/internal/domain"
)

const (
	// MaxTitleLength bounds the full title, category prefix included, in runes.
	MaxTitleLength = 30

	maxDerivedWords = 6
	fallbackTitle   = "Ticket"
	ellipsis        = "…"
)

var sentenceEnd = regexp.MustCompile(`[.!?\r\n]`)

// DeriveTitle builds a short title from the first sentence of description.
func DeriveTitle(description string) string {
	text := strings.TrimSpace(description)
	if loc := sentenceEnd.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return fallbackTitle
	}
	if len(words) > maxDerivedWords {
		words = words[:maxDerivedWords]
	}
	return capitalize(strings.Join(words, " "))
}

// BuildTitle returns candidate prefixed with "<category>: " exactly once and
// bounded to MaxTitleLength. Applying it to its own output is a no-op.
func BuildTitle(candidate string, category domain.Category) string {
	core := normalizeCore(strings.TrimSpace(candidate), category)
	if core == "" {
		core = fallbackTitle
	}
	core = capitalize(core)
	if category == "" {
		return truncate(core, 0)
	}
	prefix := string(category) + ": "
	return truncate(prefix+core, utf8.RuneCountInString(prefix))
}

// normalizeCore strips category prefixes and leading bullet punctuation
// until neither applies, so the result is stable under another pass.
func normalizeCore(title string, category domain.Category) string {
	for {
		next := strings.TrimLeftFunc(stripCategoryPrefix(title, category), isLeadingJunk)
		if next == title {
			return title
		}
		title = next
	}
}

func isLeadingJunk(r rune) bool {
	switch r {
	case '-', '–', '—', ':':
		return true
	}
	return unicode.IsSpace(r)
}

// stripCategoryPrefix removes every leading "<category>:" (any case), along
// with dashes that follow it, so titles never carry a doubled prefix.
func stripCategoryPrefix(title string, category domain.Category) string {
	if category == "" {
		return title
	}
	pattern := regexp.MustCompile(`(?i)^(?:` + regexp.QuoteMeta(string(category)) + `(?:\s*:|\s+[-–—])[\s\-–—]*)+`)
	return strings.TrimSpace(pattern.ReplaceAllString(title, ""))
}

// truncate cuts title to MaxTitleLength runes, ending with an ellipsis.
// The cut never falls before keep runes.
func truncate(title string, keep int) string {
	runes := []rune(title)
	if len(runes) <= MaxTitleLength {
		return title
	}
	cut := MaxTitleLength - len([]rune(ellipsis))
	if cut < keep {
		cut = keep
	}
	return string(runes[:cut]) + ellipsis
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
