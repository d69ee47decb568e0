package domain

// Action is the terminal routing outcome for a submission.
type Action string

const (
	ActionCreate     Action = "create"
	ActionAskClarify Action = "ask_clarify"
)

// DecisionSource tells which judge produced a decision.
type DecisionSource string

const (
	SourceOracle DecisionSource = "oracle"
	SourceGate   DecisionSource = "gate"
)

// ReasonCode explains an ask_clarify decision.
type ReasonCode string

const (
	ReasonTooShortOrVague   ReasonCode = "too_short_or_vague"
	ReasonCategoryMismatch  ReasonCode = "categoria_mismatch"
	ReasonPriorityInvalid   ReasonCode = "priorita_invalid"
	ReasonTitleMissing      ReasonCode = "title_missing"
	ReasonOracleRejected    ReasonCode = "oracle_rejected"
	ReasonCategoryNotListed ReasonCode = "categoria_invalid"
)

// Ticket is a finalized board item ready for creation.
type Ticket struct {
	Title        string
	Category     Category
	Priority     Priority
	Description  string
	Reporter     EmailAddress
	Attachments  []string
	LinkOfRecord string
}

// Decision is the result of gating a submission. Ticket is set only for
// ActionCreate, Reason only for ActionAskClarify.
type Decision struct {
	Action Action
	Source DecisionSource
	Reason ReasonCode
	Ticket *Ticket
}

// RoutedTo is the label reported to the caller for the decision.
func (d Decision) RoutedTo() string {
	if d.Action != ActionCreate {
		return string(ActionAskClarify)
	}
	if d.Source == SourceGate {
		return "create_fallback"
	}
	return string(ActionCreate)
}
