package triage

import (
	"regexp"
	"strings"

	"github.com/spec-kit/ticket-router/internal/domain"
)

// MinWords is the word count below which a non-operations description is vague.
const MinWords = 10

var vaguePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bi have (an )?issue\b`),
	regexp.MustCompile(`\bsomething (is )?not working\b`),
	regexp.MustCompile(`\bplease fix\b`),
	regexp.MustCompile(`^help\b`),
	regexp.MustCompile(`\bhelp\b$`),
}

// IsVague reports whether description lacks enough detail to become a ticket.
// The operations category skips the word-count rule but not the patterns.
func IsVague(description string, category domain.Category) bool {
	text := strings.ToLower(strings.TrimSpace(description))
	if !category.IsOperations() && WordCount(text) < MinWords {
		return true
	}
	return MatchesVaguePattern(text)
}

// MatchesVaguePattern reports whether text reads as a generic complaint.
func MatchesVaguePattern(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, p := range vaguePatterns {
		if p.MatchString(t) {
			return true
		}
	}
	return false
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
