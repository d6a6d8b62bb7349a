package matrix

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/riskreg/riskreg/internal/apiclient"
	riskmatrix "github.com/riskreg/riskreg/internal/matrix"
	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/render"
	"github.com/riskreg/riskreg/pkg/shared/config"
	"github.com/riskreg/riskreg/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	logger             hclog.Logger
	preview            int
	exampleMatrixUsage = `  # Print the heatmap with up to five assets per cell
  riskreg matrix

  # List every asset in each occupied cell
  riskreg matrix --preview 100`
)

// MatrixCmd represents the matrix command.
var MatrixCmd = &cobra.Command{
	Use:                   "matrix [--preview N]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleMatrixUsage,
	Short:                 "Print the 5x5 likelihood/impact heatmap",
	RunE:                  runMatrixCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runMatrixCommand(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.NewCommandError(args, nil, fmt.Errorf("the matrix command does not accept positional arguments"), errors.ExitCodeInvalidArgs)
	}
	if preview < 0 {
		return errors.NewCommandError(preview, nil, fmt.Errorf("preview must not be negative, got %d", preview), errors.ExitCodeInvalidArgs)
	}

	client := apiclient.NewFromConfig(AppConfig, logger.Named("api"))
	records, err := client.List(cmd.Context(), register.FilterAll)
	if err != nil {
		logger.Error("matrix command failed", "api", client.BaseURL(), "error", err)
		return errors.NewCommandError(preview, nil, fmt.Errorf("matrix command failed: %w", err), errors.ExitCodeFailed)
	}

	m := riskmatrix.Build(records)
	out := cmd.OutOrStdout()
	if err := render.Grid(out, m); err != nil {
		return err
	}
	if m.Total() == 0 {
		return nil
	}
	fmt.Fprintln(out)
	return render.Cells(out, m, preview)
}

func init() {
	MatrixCmd.Flags().IntVar(&preview, "preview", render.DefaultPreview, "Number of assets listed per cell before \"...and N more\".")
	MatrixCmd.Flags().BoolP("help", "h", false, "Show help for the matrix command.")
}
