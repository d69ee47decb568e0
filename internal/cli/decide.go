package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/ticket-router/internal/api/dto"
	"github.com/spec-kit/ticket-router/internal/config"
	"github.com/spec-kit/ticket-router/internal/domain"
	"github.com/spec-kit/ticket-router/internal/oracle"
	"github.com/spec-kit/ticket-router/internal/service"
)

// oracleFactory opens an oracle, returning a close func for it.
type oracleFactory func(ctx context.Context, logger *zap.Logger) (service.Oracle, func() error, error)

func defaultOracle(ctx context.Context, logger *zap.Logger) (service.Oracle, func() error, error) {
	cfg := config.LoadGemini()
	if !cfg.Enabled() {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	client, err := oracle.NewGeminiClient(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

type decisionReport struct {
	RoutedTo string          `json:"routed_to" yaml:"routed_to"`
	Source   string          `json:"source" yaml:"source"`
	Reason   string          `json:"reason,omitempty" yaml:"reason,omitempty"`
	Ticket   *ticketReport   `json:"ticket,omitempty" yaml:"ticket,omitempty"`
	Verdict  json.RawMessage `json:"ai,omitempty" yaml:"-"`
}

type ticketReport struct {
	Title        string   `json:"title" yaml:"title"`
	Category     string   `json:"categoria" yaml:"categoria"`
	Priority     string   `json:"priorita,omitempty" yaml:"priorita,omitempty"`
	Reporter     string   `json:"email,omitempty" yaml:"email,omitempty"`
	Attachments  []string `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	LinkOfRecord string   `json:"link_of_record,omitempty" yaml:"link_of_record,omitempty"`
}

func newDecideCommand(openOracle oracleFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Print the routing decision for a submission",
		Long: `Decide reads one submission in the webhook JSON shape and prints the
decision: create, create_fallback or ask_clarify, with the ticket that
would be created.

Example:
  triage decide -f submission.json
  cat submission.json | triage decide --oracle -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			useOracle, err := cmd.Flags().GetBool("oracle")
			if err != nil {
				return err
			}
			if output != "yaml" && output != "json" {
				return fmt.Errorf("unsupported output %q, want yaml or json", output)
			}

			logger, err := loggerFor(cmd)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			sub, err := readSubmission(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			deps := service.RouterDependencies{Logger: logger}
			if useOracle {
				o, closeFn, err := openOracle(ctx, logger)
				if err != nil {
					return fmt.Errorf("failed to open oracle: %w", err)
				}
				if closeFn != nil {
					defer closeFn() //nolint:errcheck
				}
				deps.Oracle = o
			}

			decision, verdict := service.NewRouterService(deps).Decide(ctx, sub)
			return writeReport(cmd.OutOrStdout(), output, report(decision, verdict))
		},
	}
	cmd.Flags().StringP("file", "f", "-", "Submission JSON file, - for stdin")
	cmd.Flags().StringP("output", "o", "yaml", "Output format: yaml or json")
	cmd.Flags().Bool("oracle", false, "Consult Gemini (needs GEMINI_API_KEY)")
	return cmd
}

func readSubmission(stdin io.Reader, file string) (domain.Submission, error) {
	var raw []byte
	var err error
	if file == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return domain.Submission{}, fmt.Errorf("failed to read submission: %w", err)
	}

	var req dto.WebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return domain.Submission{}, fmt.Errorf("invalid submission JSON: %w", err)
	}
	return domain.NewSubmission(req.Description, req.Categoria, req.Priorita, req.Email, req.LinkOfRecord, req.Attachments), nil
}

func report(decision domain.Decision, verdict *oracle.Verdict) decisionReport {
	out := decisionReport{
		RoutedTo: decision.RoutedTo(),
		Source:   string(decision.Source),
		Reason:   string(decision.Reason),
	}
	if verdict != nil {
		out.Verdict = verdict.Raw
	}
	if t := decision.Ticket; t != nil {
		out.Ticket = &ticketReport{
			Title:        t.Title,
			Category:     string(t.Category),
			Priority:     string(t.Priority),
			Reporter:     t.Reporter.Address,
			Attachments:  t.Attachments,
			LinkOfRecord: t.LinkOfRecord,
		}
	}
	return out
}

func writeReport(w io.Writer, format string, r decisionReport) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
