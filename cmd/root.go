package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/riskreg/riskreg/cmd/assess"
	deleterisk "github.com/riskreg/riskreg/cmd/delete-risk"
	"github.com/riskreg/riskreg/cmd/export"
	"github.com/riskreg/riskreg/cmd/list"
	"github.com/riskreg/riskreg/cmd/matrix"
	"github.com/riskreg/riskreg/cmd/serve"
	"github.com/riskreg/riskreg/cmd/summary"
	"github.com/riskreg/riskreg/cmd/version"
	"github.com/riskreg/riskreg/pkg/shared/config"
	"github.com/riskreg/riskreg/pkg/shared/errors"
	"github.com/riskreg/riskreg/pkg/shared/logger"
)

var (
	cfgFile   string
	AppConfig *config.Config
	Logger    hclog.Logger
	rootCmd   = &cobra.Command{
		Use:                   "riskreg [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Riskreg is a risk assessment register.",
		Long: `Riskreg scores risks by likelihood and impact, serves the register over HTTP,
	and renders it as a sortable table, a 5x5 heatmap, summary statistics or an export file.
	`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the config file (default is $RISKREG_CONFIG or config.yml).")

	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(serve.ServeCmd)
	rootCmd.AddCommand(assess.AssessCmd)
	rootCmd.AddCommand(list.ListCmd)
	rootCmd.AddCommand(matrix.MatrixCmd)
	rootCmd.AddCommand(summary.SummaryCmd)
	rootCmd.AddCommand(export.ExportCmd)
	rootCmd.AddCommand(deleterisk.DeleteCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return errors.ExitCode(err)
	}
	return 0
}

func initConfig() error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return errors.NewCommandError(cfgFile, nil, fmt.Errorf("failed to load config: %w", err), errors.ExitCodeInvalidArgs)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return errors.NewCommandError(cfgFile, nil, fmt.Errorf("invalid config: %w", err), errors.ExitCodeInvalidArgs)
	}

	Logger = logger.NewLogger(AppConfig, "core")

	version.Init(AppConfig)
	serve.Init(AppConfig, Logger.Named("serve"))
	assess.Init(AppConfig, Logger.Named("assess"))
	list.Init(AppConfig, Logger.Named("list"))
	matrix.Init(AppConfig, Logger.Named("matrix"))
	summary.Init(AppConfig, Logger.Named("summary"))
	export.Init(AppConfig, Logger.Named("export"))
	deleterisk.Init(AppConfig, Logger.Named("delete"))
	return nil
}
