package domain

import "strings"

// Priority enumerates canonical board severities.
type Priority string

const (
	PriorityUrgente Priority = "URGENTE"
	PriorityAlta    Priority = "ALTA"
	PriorityMedia   Priority = "MEDIA"
	PriorityBassa   Priority = "BASSA"
)

// PriorityAliases maps accepted spellings to canonical priorities.
var PriorityAliases = map[string]Priority{
	"URGENTE": PriorityUrgente,
	"ALTA":    PriorityAlta,
	"MEDIA":   PriorityMedia,
	"BASSA":   PriorityBassa,
	"URGENT":  PriorityUrgente,
	"HIGH":    PriorityAlta,
	"MEDIUM":  PriorityMedia,
	"LOW":     PriorityBassa,
}

// NormalizePriority trims and upper-cases label and resolves aliases.
// Unknown labels pass through upper-cased.
func NormalizePriority(label string) string {
	upper := strings.ToUpper(strings.TrimSpace(label))
	if p, ok := PriorityAliases[upper]; ok {
		return string(p)
	}
	return upper
}

// ParsePriority normalizes label and reports whether it is canonical.
func ParsePriority(label string) (Priority, bool) {
	p := Priority(NormalizePriority(label))
	switch p {
	case PriorityUrgente, PriorityAlta, PriorityMedia, PriorityBassa:
		return p, true
	}
	return "", false
}

func (p Priority) String() string {
	return string(p)
}
