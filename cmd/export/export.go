package export

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/riskreg/riskreg/cmd/version"
	"github.com/riskreg/riskreg/internal/apiclient"
	riskexport "github.com/riskreg/riskreg/internal/export"
	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/upload"
	"github.com/riskreg/riskreg/pkg/shared/config"
	"github.com/riskreg/riskreg/pkg/shared/errors"
)

// RunOptionsExport holds the arguments for the export command.
type RunOptionsExport struct {
	Format     string `json:"format,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	Sort       string `json:"sort,omitempty"`
	Dir        string `json:"dir,omitempty"`
	Level      string `json:"level,omitempty"`
	S3Bucket   string `json:"s3_bucket,omitempty"`
	S3Key      string `json:"s3_key,omitempty"`
}

// exportPlan is the validated form of RunOptionsExport.
type exportPlan struct {
	Format     riskexport.Format
	View       register.View
	OutputPath string
	S3         config.S3
	S3Key      string
}

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	logger             hclog.Logger
	exportOptions      RunOptionsExport
	exampleExportUsage = `  # Export the register as risks.csv in the current directory
  riskreg export

  # Export critical risks, sorted by asset, to a specific file
  riskreg export --level Critical --sort asset --dir asc -o /path/to/critical.csv

  # Export SARIF into a folder and upload it to S3
  riskreg export --format sarif -o /path/to/reports --s3-bucket grc-exports --s3-key registers/risks.sarif`
)

// ExportCmd represents the export command.
var ExportCmd = &cobra.Command{
	Use:                   "export [--format/-f csv|json|sarif] [--output/-o PATH] [--sort FIELD] [--dir asc|desc] [--level LEVEL] [--s3-bucket BUCKET] [--s3-key KEY]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleExportUsage,
	Short:                 "Write the register view to a file and optionally upload it to S3",
	RunE:                  runExportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runExportCommand(cmd *cobra.Command, args []string) error {
	plan, err := validateExportArgs(&exportOptions, AppConfig, args)
	if err != nil {
		logger.Error("invalid export arguments", "error", err)
		return errors.NewCommandError(exportOptions, nil, fmt.Errorf("invalid export arguments: %w", err), errors.ExitCodeInvalidArgs)
	}

	client := apiclient.NewFromConfig(AppConfig, logger.Named("api"))
	records, err := client.List(cmd.Context(), register.FilterAll)
	if err != nil {
		logger.Error("export command failed", "api", client.BaseURL(), "error", err)
		return errors.NewCommandError(exportOptions, nil, fmt.Errorf("export command failed: %w", err), errors.ExitCodeFailed)
	}

	projected := register.Project(records, plan.View)
	data, err := riskexport.Render(plan.Format, projected, version.CoreVersion)
	if err != nil {
		logger.Error("failed to render export", "format", plan.Format, "error", err)
		return errors.NewCommandError(exportOptions, nil, fmt.Errorf("failed to render export: %w", err), errors.ExitCodeFailed)
	}

	path, err := riskexport.WriteFile(plan.OutputPath, plan.Format, data)
	if err != nil {
		logger.Error("failed to write export", "error", err)
		return errors.NewCommandError(exportOptions, nil, fmt.Errorf("failed to write export: %w", err), errors.ExitCodeFailed)
	}
	logger.Info("export saved to file", "path", path, "format", plan.Format, "records", len(projected))

	if plan.S3.Bucket == "" {
		return nil
	}
	uploader, err := upload.NewS3Uploader(plan.S3, logger.Named("s3"))
	if err != nil {
		return errors.NewCommandError(exportOptions, path, fmt.Errorf("failed to prepare upload: %w", err), errors.ExitCodeFailed)
	}
	location, err := uploader.Upload(cmd.Context(), plan.S3Key, plan.Format.ContentType(), data)
	if err != nil {
		logger.Error("failed to upload export", "error", err)
		return errors.NewCommandError(exportOptions, path, fmt.Errorf("failed to upload export: %w", err), errors.ExitCodeFailed)
	}
	logger.Info("export uploaded", "location", location)
	return nil
}

func init() {
	ExportCmd.Flags().StringVarP(&exportOptions.Format, "format", "f", "", "Export format: csv, json or sarif (default from config or csv).")
	ExportCmd.Flags().StringVarP(&exportOptions.OutputPath, "output", "o", "", "Output file or directory (default from config or the current directory).")
	ExportCmd.Flags().StringVar(&exportOptions.Sort, "sort", "", "Field to sort by (default score).")
	ExportCmd.Flags().StringVar(&exportOptions.Dir, "dir", "", "Sort direction: asc or desc (default desc).")
	ExportCmd.Flags().StringVar(&exportOptions.Level, "level", "", "Export only one level: Low, Medium, High, Critical or All.")
	ExportCmd.Flags().StringVar(&exportOptions.S3Bucket, "s3-bucket", "", "Upload the export to this S3 bucket.")
	ExportCmd.Flags().StringVar(&exportOptions.S3Key, "s3-key", "", "Object key of the upload (default is the export file name).")
	ExportCmd.Flags().BoolP("help", "h", false, "Show help for the export command.")
}
