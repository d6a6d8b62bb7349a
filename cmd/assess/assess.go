package assess

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/riskreg/riskreg/internal/apiclient"
	"github.com/riskreg/riskreg/internal/render"
	"github.com/riskreg/riskreg/internal/risk"
	"github.com/riskreg/riskreg/pkg/shared"
	"github.com/riskreg/riskreg/pkg/shared/config"
	"github.com/riskreg/riskreg/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	logger             hclog.Logger
	assessOptions      risk.Input
	asJSON             bool
	exampleAssessUsage = `  # Assess unauthorized access to the customer database
  riskreg assess --asset "Customer DB" --threat "Unauthorized access" --likelihood 3 --impact 4

  # Submit to a remote API and print the stored record as JSON
  RISKREG_API_URL=https://grc.example.com riskreg assess --asset Web --threat DDoS -l 5 -i 5 --json`
)

// AssessCmd represents the assess command.
var AssessCmd = &cobra.Command{
	Use:                   "assess --asset ASSET --threat THREAT --likelihood/-l 1-5 --impact/-i 1-5 [--json]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAssessUsage,
	Short:                 "Score a risk and store it in the register",
	RunE:                  runAssessCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runAssessCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	in, err := validateAssessArgs(assessOptions, args)
	if err != nil {
		logger.Error("invalid assess arguments", "error", err)
		return errors.NewCommandError(assessOptions, nil, fmt.Errorf("invalid assess arguments: %w", err), errors.ExitCodeInvalidArgs)
	}

	client := apiclient.NewFromConfig(AppConfig, logger.Named("api"))
	record, err := client.Assess(cmd.Context(), in)
	if err != nil {
		logger.Error("assess command failed", "api", client.BaseURL(), "error", err)
		return errors.NewCommandError(in, nil, fmt.Errorf("assess command failed: %w", err), errors.ExitCodeFailed)
	}

	logger.Info("risk assessed", "id", record.ID, "score", record.Score, "level", record.Level)
	if asJSON {
		return shared.PrintResultAsJSON(cmd.OutOrStdout(), record)
	}
	return render.Table(cmd.OutOrStdout(), []risk.Record{record})
}

func init() {
	AssessCmd.Flags().StringVar(&assessOptions.Asset, "asset", "", "Asset at risk.")
	AssessCmd.Flags().StringVar(&assessOptions.Threat, "threat", "", "Threat to the asset.")
	AssessCmd.Flags().IntVarP(&assessOptions.Likelihood, "likelihood", "l", 0, "Likelihood rating from 1 to 5.")
	AssessCmd.Flags().IntVarP(&assessOptions.Impact, "impact", "i", 0, "Impact rating from 1 to 5.")
	AssessCmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored record as JSON.")
	AssessCmd.Flags().BoolP("help", "h", false, "Show help for the assess command.")
}
