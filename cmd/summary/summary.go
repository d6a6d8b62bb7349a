package summary

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/riskreg/riskreg/internal/apiclient"
	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/render"
	risksummary "github.com/riskreg/riskreg/internal/summary"
	"github.com/riskreg/riskreg/pkg/shared"
	"github.com/riskreg/riskreg/pkg/shared/config"
	"github.com/riskreg/riskreg/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig *config.Config
	logger    hclog.Logger
	level     string
	asJSON    bool
)

// SummaryCmd represents the summary command.
var SummaryCmd = &cobra.Command{
	Use:                   "summary [--level LEVEL] [--json]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Print register statistics",
	RunE:                  runSummaryCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runSummaryCommand(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.NewCommandError(args, nil, fmt.Errorf("the summary command does not accept positional arguments"), errors.ExitCodeInvalidArgs)
	}
	filter, err := register.ParseFilter(level)
	if err != nil {
		return errors.NewCommandError(level, nil, fmt.Errorf("invalid summary arguments: %w", err), errors.ExitCodeInvalidArgs)
	}

	client := apiclient.NewFromConfig(AppConfig, logger.Named("api"))
	records, err := client.List(cmd.Context(), filter)
	if err != nil {
		logger.Error("summary command failed", "api", client.BaseURL(), "error", err)
		return errors.NewCommandError(level, nil, fmt.Errorf("summary command failed: %w", err), errors.ExitCodeFailed)
	}

	s := risksummary.Summarize(records)
	if asJSON {
		return shared.PrintResultAsJSON(cmd.OutOrStdout(), s)
	}
	return render.Summary(cmd.OutOrStdout(), s)
}

func init() {
	SummaryCmd.Flags().StringVar(&level, "level", "", "Summarize only one level: Low, Medium, High, Critical or All.")
	SummaryCmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON.")
	SummaryCmd.Flags().BoolP("help", "h", false, "Show help for the summary command.")
}
