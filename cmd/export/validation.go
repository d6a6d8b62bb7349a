package export

import (
	"fmt"

	riskexport "github.com/riskreg/riskreg/internal/export"
	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/pkg/shared/config"
)

// validateExportArgs validates the arguments and merges them with the export configuration.
func validateExportArgs(options *RunOptionsExport, cfg *config.Config, args []string) (exportPlan, error) {
	var plan exportPlan

	if len(args) > 0 {
		return plan, fmt.Errorf("the export command does not accept positional arguments")
	}

	format, err := riskexport.ParseFormat(config.SetThen(options.Format, config.GetExportFormat(cfg)))
	if err != nil {
		return plan, err
	}
	plan.Format = format

	plan.View = register.DefaultView()
	if options.Sort != "" {
		if plan.View.Key, err = register.ParseField(options.Sort); err != nil {
			return plan, err
		}
	}
	if options.Dir != "" {
		if plan.View.Dir, err = register.ParseDirection(options.Dir); err != nil {
			return plan, err
		}
	}
	if plan.View.Filter, err = register.ParseFilter(options.Level); err != nil {
		return plan, err
	}

	if cfg != nil {
		plan.OutputPath = cfg.Export.OutputPath
		plan.S3 = cfg.Export.S3
	}
	plan.OutputPath = config.SetThen(options.OutputPath, config.SetThen(plan.OutputPath, "."))

	plan.S3.Bucket = config.SetThen(options.S3Bucket, plan.S3.Bucket)
	if options.S3Key != "" && plan.S3.Bucket == "" {
		return plan, fmt.Errorf("the 's3-key' flag requires an S3 bucket")
	}
	plan.S3Key = config.SetThen(options.S3Key, format.FileName())

	return plan, nil
}
