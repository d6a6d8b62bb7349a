package export

import (
	"fmt"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/riskreg/riskreg/internal/risk"
)

const (
	toolName           = "riskreg"
	toolInformationURI = "https://github.com/riskreg/riskreg"
)

// RuleID returns the SARIF rule identifier for a level, e.g. "risk/critical".
func RuleID(level risk.Level) string {
	return fmt.Sprintf("risk/%s", strings.ToLower(level.String()))
}

// SARIF builds a SARIF 2.1.0 report with one rule per level and one result per record.
func SARIF(records []risk.Record, toolVersion string) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolInformationURI)
	if toolVersion != "" {
		run.Tool.Driver.Version = &toolVersion
	}

	for _, level := range risk.Levels() {
		run.AddRule(RuleID(level)).
			WithDescription(risk.Advise(level)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifLevel(level),
			})
	}

	for _, r := range records {
		result := sarif.NewRuleResult(RuleID(r.Level)).
			WithMessage(sarif.NewTextMessage(fmt.Sprintf("%s: %s (score %d, %s). %s",
				r.Asset, r.Threat, r.Score, r.Level, r.Advice()))).
			WithLevel(toSarifLevel(r.Level))
		result.PropertyBag = *sarif.NewPropertyBag()
		result.Add("id", r.ID)
		result.Add("asset", r.Asset)
		result.Add("threat", r.Threat)
		result.Add("likelihood", r.Likelihood)
		result.Add("impact", r.Impact)
		result.Add("score", r.Score)
		run.AddResult(result)
	}

	report.AddRun(run)
	return report, nil
}

func toSarifLevel(level risk.Level) string {
	switch level {
	case risk.LevelCritical, risk.LevelHigh:
		return "error"
	case risk.LevelMedium:
		return "warning"
	case risk.LevelLow:
		return "note"
	default:
		return "none"
	}
}
