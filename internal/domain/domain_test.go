package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"urgente", "URGENTE"},
		{" Urgent ", "URGENTE"},
		{"high", "ALTA"},
		{"MEDIUM", "MEDIA"},
		{"low", "BASSA"},
		{"bassa", "BASSA"},
		{"critical", "CRITICAL"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePriority(tt.in))
		})
	}
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority("high")
	assert.True(t, ok)
	assert.Equal(t, PriorityAlta, p)

	_, ok = ParsePriority("critical")
	assert.False(t, ok)

	_, ok = ParsePriority("")
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" CONSOLE ")
	assert.True(t, ok)
	assert.Equal(t, CategoryConsole, c)

	c, ok = ParseCategory("OPERATIONS (Cambi asseganzione, etc.)")
	assert.True(t, ok)
	assert.True(t, c.IsOperations())

	_, ok = ParseCategory("OPERATIONS")
	assert.False(t, ok, "operations label must match byte-for-byte")

	_, ok = ParseCategory("crm")
	assert.False(t, ok)
}

func TestIsOperations(t *testing.T) {
	assert.True(t, Category("operations (anything)").IsOperations())
	assert.False(t, CategoryCRM.IsOperations())
}

func TestDecisionRoutedTo(t *testing.T) {
	assert.Equal(t, "create", Decision{Action: ActionCreate, Source: SourceOracle}.RoutedTo())
	assert.Equal(t, "create_fallback", Decision{Action: ActionCreate, Source: SourceGate}.RoutedTo())
	assert.Equal(t, "ask_clarify", Decision{Action: ActionAskClarify, Source: SourceGate}.RoutedTo())
}

func TestNewSubmission(t *testing.T) {
	sub := NewSubmission("  export broken \n", " CRM ", "high", " anna@example.com ", " https://crm.example/9 ", []any{"a"})

	assert.Equal(t, "export broken", sub.Description)
	assert.Equal(t, CategoryCRM, sub.Category)
	assert.Equal(t, "CRM", sub.RawCategory)
	assert.Equal(t, PriorityAlta, sub.Priority)
	assert.Equal(t, "high", sub.RawPriority)
	assert.Equal(t, "anna@example.com", sub.ReporterEmail)
	assert.Equal(t, "https://crm.example/9", sub.LinkOfRecord)
	assert.Equal(t, []any{"a"}, sub.Attachments)

	invalid := NewSubmission("x", "Sales", "whenever", "", "", nil)
	assert.Empty(t, invalid.Category)
	assert.Empty(t, invalid.Priority)
	assert.Equal(t, "Sales", invalid.RawCategory)
}
