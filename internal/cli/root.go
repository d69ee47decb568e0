// Package cli implements the triage command, a dry run of the webhook
// decision for a single submission file. It never writes to the board or
// sends mail.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/config"
	"github.com/spec-kit/ticket-router/internal/observability"
)

// NewRootCommand builds the triage command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultOracle)
}

func newRootCommand(openOracle oracleFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "triage",
		Short: "Inspect routing decisions without touching the board",
		Long: `Triage runs the same decision the webhook makes for a form submission
and prints it. No board item is created and no clarification email is sent.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stdout")

	root.AddCommand(newDecideCommand(openOracle))
	return root
}

func loggerFor(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	if !verbose {
		return zap.NewNop(), nil
	}
	return observability.NewLogger(config.LoggerConfig{Level: "debug"})
}
