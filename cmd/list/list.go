package list

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/riskreg/riskreg/internal/apiclient"
	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/render"
	"github.com/riskreg/riskreg/pkg/shared"
	"github.com/riskreg/riskreg/pkg/shared/config"
	"github.com/riskreg/riskreg/pkg/shared/errors"
)

// RunOptionsList holds the arguments for the list command.
type RunOptionsList struct {
	Sort   string   `json:"sort,omitempty"`
	Dir    string   `json:"dir,omitempty"`
	Level  string   `json:"level,omitempty"`
	Toggle []string `json:"toggle,omitempty"`
	JSON   bool     `json:"json,omitempty"`
}

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	logger           hclog.Logger
	listOptions      RunOptionsList
	exampleListUsage = `  # List the register with the highest scores first
  riskreg list

  # List only critical risks
  riskreg list --level Critical

  # Sort by asset name, A to Z
  riskreg list --sort asset --dir asc

  # Replay header clicks: score is already the key, so one toggle flips it to ascending
  riskreg list --toggle score`
)

// ListCmd represents the list command.
var ListCmd = &cobra.Command{
	Use:                   "list [--sort FIELD] [--dir asc|desc] [--level LEVEL] [--toggle FIELD]... [--json]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleListUsage,
	Short:                 "Print the risk register with mitigation advice",
	RunE:                  runListCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runListCommand(cmd *cobra.Command, args []string) error {
	view, err := validateListArgs(&listOptions, args)
	if err != nil {
		logger.Error("invalid list arguments", "error", err)
		return errors.NewCommandError(listOptions, nil, fmt.Errorf("invalid list arguments: %w", err), errors.ExitCodeInvalidArgs)
	}

	client := apiclient.NewFromConfig(AppConfig, logger.Named("api"))
	records, err := client.List(cmd.Context(), register.FilterAll)
	if err != nil {
		logger.Error("list command failed", "api", client.BaseURL(), "error", err)
		return errors.NewCommandError(listOptions, nil, fmt.Errorf("list command failed: %w", err), errors.ExitCodeFailed)
	}

	projected := register.Project(records, view)
	logger.Debug("register projected", "key", view.Key, "dir", view.Dir, "filter", view.Filter, "shown", len(projected), "total", len(records))

	if listOptions.JSON {
		return shared.PrintResultAsJSON(cmd.OutOrStdout(), projected)
	}
	return render.Table(cmd.OutOrStdout(), projected)
}

func init() {
	ListCmd.Flags().StringVar(&listOptions.Sort, "sort", "", "Field to sort by: id, asset, threat, likelihood, impact or score (default score).")
	ListCmd.Flags().StringVar(&listOptions.Dir, "dir", "", "Sort direction: asc or desc (default desc).")
	ListCmd.Flags().StringVar(&listOptions.Level, "level", "", "Show only one level: Low, Medium, High, Critical or All.")
	ListCmd.Flags().StringArrayVar(&listOptions.Toggle, "toggle", nil, "Toggle the sort on a field, as clicking its column header. Repeatable.")
	ListCmd.Flags().BoolVar(&listOptions.JSON, "json", false, "Print the projected register as JSON.")
	ListCmd.Flags().BoolP("help", "h", false, "Show help for the list command.")
}
