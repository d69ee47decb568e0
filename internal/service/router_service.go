package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/board"
	"github.com/spec-kit/ticket-router/internal/domain"
	"github.com/spec-kit/ticket-router/internal/observability"
	"github.com/spec-kit/ticket-router/internal/oracle"
	"github.com/spec-kit/ticket-router/internal/triage"
	apperrors "github.com/spec-kit/ticket-router/pkg/util"
)

// Oracle returns a routing verdict for a submission.
type Oracle interface {
	Consult(ctx context.Context, in oracle.Input) oracle.Result
}

// Board creates items for accepted tickets.
type Board interface {
	CreateItem(ctx context.Context, ticket domain.Ticket) (*board.CreatedItem, error)
}

// Notifier asks a reporter to resubmit with more detail.
type Notifier interface {
	Enabled() bool
	SendClarification(ctx context.Context, address string) error
}

// RouterDependencies bundles collaborators for the router. Oracle and
// Notifier may be nil.
type RouterDependencies struct {
	Oracle   Oracle
	Board    Board
	Notifier Notifier
	Logger   *zap.Logger
	Metrics  *observability.Metrics
}

// NoticeStatus describes the clarification notice for an ask_clarify outcome.
type NoticeStatus struct {
	Attempted bool
	Sent      bool
	Err       error
}

// RouteResult is the outcome of routing one submission.
type RouteResult struct {
	Decision domain.Decision
	Created  *board.CreatedItem
	Notice   NoticeStatus
	Verdict  *oracle.Verdict
}

// RouterService decides whether a submission becomes a board item and
// carries the decision out.
type RouterService struct {
	oracle   Oracle
	board    Board
	notifier Notifier
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewRouterService constructs the service.
func NewRouterService(deps RouterDependencies) *RouterService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouterService{
		oracle:   deps.Oracle,
		board:    deps.Board,
		notifier: deps.Notifier,
		logger:   logger,
		metrics:  deps.Metrics,
	}
}

// Route decides on sub and then creates the board item or sends the
// clarification notice. Only a failed board creation is returned as an error.
func (s *RouterService) Route(ctx context.Context, sub domain.Submission) (*RouteResult, error) {
	decision, verdict := s.Decide(ctx, sub)
	result := &RouteResult{Decision: decision, Verdict: verdict}
	s.metrics.RecordDecision(decision.RoutedTo(), string(decision.Reason))

	if decision.Action == domain.ActionCreate {
		item, err := s.board.CreateItem(ctx, *decision.Ticket)
		if err != nil {
			s.logger.Error("board item creation failed",
				zap.String("title", decision.Ticket.Title),
				zap.String("source", string(decision.Source)),
				zap.Error(err))
			return nil, apperrors.NewBadGateway("ticket board rejected the item", map[string]any{
				"routed_to": decision.RoutedTo(),
				"board":     boardErrorKind(err),
			}, err)
		}
		s.logger.Info("board item created",
			zap.String("item_id", item.ID),
			zap.String("title", decision.Ticket.Title),
			zap.String("source", string(decision.Source)))
		result.Created = item
		return result, nil
	}

	s.logger.Info("submission needs clarification",
		zap.String("reason", string(decision.Reason)),
		zap.String("source", string(decision.Source)),
		zap.String("category", sub.RawCategory))
	result.Notice = s.notify(ctx, sub.ReporterEmail)
	return result, nil
}

// Decide produces the routing decision for sub. The returned verdict is
// the oracle's, when one was obtained.
func (s *RouterService) Decide(ctx context.Context, sub domain.Submission) (domain.Decision, *oracle.Verdict) {
	if sub.Category == "" {
		return clarify(domain.SourceGate, domain.ReasonCategoryNotListed), nil
	}

	if s.oracle == nil {
		s.metrics.RecordOracle("skipped")
		return s.judgeByGate(sub), nil
	}

	res := s.oracle.Consult(ctx, oracleInput(sub))
	s.metrics.RecordOracle(res.Status.String())
	switch res.Status {
	case oracle.StatusVerdict:
		verdict := res.Verdict
		return judgeVerdict(sub, verdict), &verdict
	default:
		s.logger.Warn("oracle unavailable, using rule-based gate", zap.Error(res.Err))
		return s.judgeByGate(sub), nil
	}
}

func (s *RouterService) judgeByGate(sub domain.Submission) domain.Decision {
	if triage.IsVague(sub.Description, sub.Category) {
		return clarify(domain.SourceGate, domain.ReasonTooShortOrVague)
	}
	ticket := &domain.Ticket{
		Title:        triage.BuildTitle(triage.DeriveTitle(sub.Description), sub.Category),
		Category:     sub.Category,
		Priority:     sub.Priority,
		Description:  sub.Description,
		Reporter:     domain.NewEmailAddress(sub.ReporterEmail),
		Attachments:  triage.FilterAttachments(sub.Attachments),
		LinkOfRecord: sub.LinkOfRecord,
	}
	if sub.Priority == "" && sub.RawPriority != "" {
		s.logger.Warn("unknown priority left blank", zap.String("priority", sub.RawPriority))
	}
	return domain.Decision{Action: domain.ActionCreate, Source: domain.SourceGate, Ticket: ticket}
}

// judgeVerdict trusts a verdict only when it restates the submission's own
// category and a canonical priority.
func judgeVerdict(sub domain.Submission, v oracle.Verdict) domain.Decision {
	if !v.Creates() {
		return clarify(domain.SourceOracle, domain.ReasonOracleRejected)
	}
	if strings.TrimSpace(v.Category) != string(sub.Category) {
		return clarify(domain.SourceOracle, domain.ReasonCategoryMismatch)
	}
	priority, ok := domain.ParsePriority(v.Priority)
	if !ok {
		return clarify(domain.SourceOracle, domain.ReasonPriorityInvalid)
	}
	title := strings.TrimSpace(v.NormalizedTitle)
	if title == "" {
		return clarify(domain.SourceOracle, domain.ReasonTitleMissing)
	}

	fields := v.Fields
	attachments, ok := fields.AttachmentList()
	if !ok {
		attachments = sub.Attachments
	}
	ticket := &domain.Ticket{
		Title:        triage.BuildTitle(title, sub.Category),
		Category:     sub.Category,
		Priority:     priority,
		Description:  firstNonEmpty(fields.Description, sub.Description),
		Reporter:     reporter(fields.Email, sub.ReporterEmail),
		Attachments:  triage.FilterAttachments(attachments),
		LinkOfRecord: firstNonEmpty(fields.Link, sub.LinkOfRecord),
	}
	return domain.Decision{Action: domain.ActionCreate, Source: domain.SourceOracle, Ticket: ticket}
}

func (s *RouterService) notify(ctx context.Context, address string) NoticeStatus {
	if s.notifier == nil || !s.notifier.Enabled() || address == "" {
		return NoticeStatus{}
	}
	if err := s.notifier.SendClarification(ctx, address); err != nil {
		s.logger.Warn("clarification notice not delivered", zap.String("to", address), zap.Error(err))
		return NoticeStatus{Attempted: true, Err: err}
	}
	return NoticeStatus{Attempted: true, Sent: true}
}

func clarify(source domain.DecisionSource, reason domain.ReasonCode) domain.Decision {
	return domain.Decision{Action: domain.ActionAskClarify, Source: source, Reason: reason}
}

func oracleInput(sub domain.Submission) oracle.Input {
	attachments := sub.Attachments
	if attachments == nil {
		attachments = []any{}
	}
	return oracle.Input{
		Description:  sub.Description,
		Category:     sub.RawCategory,
		Priority:     sub.RawPriority,
		Email:        sub.ReporterEmail,
		LinkOfRecord: sub.LinkOfRecord,
		Attachments:  attachments,
	}
}

func reporter(fromOracle *domain.EmailAddress, submitted string) domain.EmailAddress {
	if fromOracle == nil || strings.TrimSpace(fromOracle.Address) == "" {
		return domain.NewEmailAddress(submitted)
	}
	addr := domain.EmailAddress{
		Address: strings.TrimSpace(fromOracle.Address),
		Display: strings.TrimSpace(fromOracle.Display),
	}
	if addr.Display == "" {
		addr.Display = addr.Address
	}
	return addr
}

func boardErrorKind(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, board.ErrAPI):
		return "api_error"
	default:
		return "transport_error"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
