package version

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/riskreg/riskreg/pkg/shared"
	"github.com/riskreg/riskreg/pkg/shared/config"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = runtime.Version()
	BuildTime     = "unknown"

	asJSON bool
)

// Versions holds build information for the binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"go_version"`
	BuildTime     string `json:"build_time"`
	APIBaseURL    string `json:"api_base_url"`
	StoreDriver   string `json:"store_driver"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// Current collects the version information with the effective API and store settings.
func Current(cfg *config.Config) Versions {
	driver, _ := config.GetStore(cfg)
	return Versions{
		Version:       CoreVersion,
		GolangVersion: GolangVersion,
		BuildTime:     BuildTime,
		APIBaseURL:    config.GetAPIBaseURL(cfg),
		StoreDriver:   driver,
	}
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "version [--json]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			versions := Current(AppConfig)
			if asJSON {
				return shared.PrintResultAsJSON(cmd.OutOrStdout(), versions)
			}
			printVersionInfo(cmd.OutOrStdout(), versions)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON.")
	return cmd
}

// printVersionInfo prints the version information for the core application.
func printVersionInfo(w io.Writer, versions Versions) {
	fmt.Fprintf(w, "Core Version: v%s\n", versions.Version)
	fmt.Fprintf(w, "Go Version: %s\n", versions.GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", versions.BuildTime)
	fmt.Fprintf(w, "API: %s\n", versions.APIBaseURL)
	fmt.Fprintf(w, "Store: %s\n", versions.StoreDriver)
}
