package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	riskexport "github.com/riskreg/riskreg/internal/export"
	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/risk"
	"github.com/riskreg/riskreg/pkg/shared/config"
)

func TestValidateExportArgsDefaults(t *testing.T) {
	plan, err := validateExportArgs(&RunOptionsExport{}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, riskexport.FormatCSV, plan.Format)
	assert.Equal(t, register.DefaultView(), plan.View)
	assert.Equal(t, ".", plan.OutputPath)
	assert.Empty(t, plan.S3.Bucket)
	assert.Equal(t, "risks.csv", plan.S3Key)
}

func TestValidateExportArgsMergesConfig(t *testing.T) {
	cfg := &config.Config{Export: config.Export{
		Format:     "json",
		OutputPath: "/tmp/exports",
		S3:         config.S3{Bucket: "grc-exports", Prefix: "registers", Region: "us-east-1"},
	}}

	plan, err := validateExportArgs(&RunOptionsExport{Level: "critical", Sort: "asset", Dir: "asc"}, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, riskexport.FormatJSON, plan.Format)
	assert.Equal(t, "/tmp/exports", plan.OutputPath)
	assert.Equal(t, "grc-exports", plan.S3.Bucket)
	assert.Equal(t, "registers", plan.S3.Prefix)
	assert.Equal(t, "risks.json", plan.S3Key)
	assert.Equal(t, register.View{Key: register.FieldAsset, Dir: register.Asc, Filter: register.LevelFilter(risk.LevelCritical)}, plan.View)

	plan, err = validateExportArgs(&RunOptionsExport{Dir: "asc"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, register.View{Key: register.FieldScore, Dir: register.Asc, Filter: register.FilterAll}, plan.View)

	plan, err = validateExportArgs(&RunOptionsExport{Format: "sarif", OutputPath: "out.sarif", S3Key: "x/y.sarif"}, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, riskexport.FormatSARIF, plan.Format)
	assert.Equal(t, "out.sarif", plan.OutputPath)
	assert.Equal(t, "x/y.sarif", plan.S3Key)
}

func TestValidateExportArgsErrors(t *testing.T) {
	tests := []struct {
		name    string
		options RunOptionsExport
		args    []string
	}{
		{name: "unknown format", options: RunOptionsExport{Format: "pdf"}},
		{name: "unknown sort", options: RunOptionsExport{Sort: "level"}},
		{name: "bad dir", options: RunOptionsExport{Dir: "sideways"}},
		{name: "bad level", options: RunOptionsExport{Level: "Severe"}},
		{name: "key without bucket", options: RunOptionsExport{S3Key: "risks.csv"}},
		{name: "positional", args: []string{"file.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateExportArgs(&tt.options, nil, tt.args)
			assert.Error(t, err)
		})
	}
}
