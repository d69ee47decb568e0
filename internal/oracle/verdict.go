package oracle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spec-kit/ticket-router/internal/domain"
)

// ErrMalformedVerdict marks a model reply that is not a usable verdict document.
var ErrMalformedVerdict = errors.New("malformed verdict")

var requiredKeys = []string{"next_action", "normalized_title", "categoria", "priorita", "monday_fields"}

// Input is the submission document sent to the oracle.
type Input struct {
	Description  string `json:"description"`
	Category     string `json:"categoria"`
	Priority     string `json:"priorita"`
	Email        string `json:"email"`
	LinkOfRecord string `json:"link_of_record"`
	Attachments  []any  `json:"attachments"`
}

// Verdict is the oracle's judgment for one submission.
type Verdict struct {
	NextAction      string          `json:"next_action"`
	RouterDecision  string          `json:"router_decision"`
	NormalizedTitle string          `json:"normalized_title"`
	Category        string          `json:"categoria"`
	Priority        string          `json:"priorita"`
	Fields          Fields          `json:"monday_fields"`
	Raw             json.RawMessage `json:"-"`
}

// Fields mirrors the board columns as the oracle fills them.
type Fields struct {
	Item        string               `json:"Item"`
	Category    string               `json:"Categoria"`
	Priority    string               `json:"Priorità"`
	Description string               `json:"Descrizione Dettagliata"`
	Attachments any                  `json:"Allegati"`
	Link        string               `json:"Link_of_the_record"`
	Email       *domain.EmailAddress `json:"Email"`
}

// Creates reports whether the oracle asked for item creation.
func (v Verdict) Creates() bool {
	return strings.EqualFold(strings.TrimSpace(v.NextAction), string(domain.ActionCreate))
}

// AttachmentList returns the Allegati entries when the oracle sent a list.
func (f Fields) AttachmentList() ([]any, bool) {
	list, ok := f.Attachments.([]any)
	return list, ok
}

// ParseVerdict decodes a model reply, tolerating markdown code fences.
func ParseVerdict(text string) (Verdict, error) {
	clean := stripFences(text)
	if clean == "" {
		return Verdict{}, fmt.Errorf("%w: empty reply", ErrMalformedVerdict)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &keys); err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return Verdict{}, fmt.Errorf("%w: missing key %q", ErrMalformedVerdict, key)
		}
	}

	var v Verdict
	if err := json.Unmarshal([]byte(clean), &v); err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	v.Raw = json.RawMessage(clean)
	return v, nil
}

func stripFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
