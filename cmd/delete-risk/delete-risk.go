package deleterisk

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/riskreg/riskreg/internal/apiclient"
	"github.com/riskreg/riskreg/pkg/shared/config"
	"github.com/riskreg/riskreg/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	logger             hclog.Logger
	exampleDeleteUsage = `  # Remove the risk with id 7 from the register
  riskreg delete 7`
)

// DeleteCmd represents the delete command.
var DeleteCmd = &cobra.Command{
	Use:                   "delete ID",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleDeleteUsage,
	Short:                 "Remove a risk from the register",
	RunE:                  runDeleteCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runDeleteCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	id, err := validateDeleteArgs(args)
	if err != nil {
		logger.Error("invalid delete arguments", "error", err)
		return errors.NewCommandError(args, nil, fmt.Errorf("invalid delete arguments: %w", err), errors.ExitCodeInvalidArgs)
	}

	client := apiclient.NewFromConfig(AppConfig, logger.Named("api"))
	if err := client.Delete(cmd.Context(), id); err != nil {
		logger.Error("delete command failed", "api", client.BaseURL(), "id", id, "error", err)
		return errors.NewCommandError(id, nil, fmt.Errorf("delete command failed: %w", err), errors.ExitCodeFailed)
	}

	logger.Info("risk deleted", "id", id)
	return nil
}

func init() {
	DeleteCmd.Flags().BoolP("help", "h", false, "Show help for the delete command.")
}
