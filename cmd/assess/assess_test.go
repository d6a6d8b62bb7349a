package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskreg/riskreg/internal/risk"
)

func TestValidateAssessArgs(t *testing.T) {
	tests := []struct {
		name    string
		input   risk.Input
		args    []string
		wantErr string
	}{
		{name: "valid", input: risk.Input{Asset: "DB", Threat: "Access", Likelihood: 3, Impact: 4}},
		{name: "missing asset", input: risk.Input{Threat: "Access", Likelihood: 3, Impact: 4}, wantErr: "asset"},
		{name: "blank threat", input: risk.Input{Asset: "DB", Threat: "  ", Likelihood: 3, Impact: 4}, wantErr: "threat"},
		{name: "likelihood unset", input: risk.Input{Asset: "DB", Threat: "Access", Impact: 4}, wantErr: "likelihood"},
		{name: "impact too high", input: risk.Input{Asset: "DB", Threat: "Access", Likelihood: 1, Impact: 6}, wantErr: "impact"},
		{name: "positional", input: risk.Input{Asset: "DB", Threat: "Access", Likelihood: 1, Impact: 1}, args: []string{"x"}, wantErr: "positional"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateAssessArgs(tt.input, tt.args)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAssessArgsTrims(t *testing.T) {
	in, err := validateAssessArgs(risk.Input{Asset: " DB ", Threat: "Access\n", Likelihood: 2, Impact: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, "DB", in.Asset)
	assert.Equal(t, "Access", in.Threat)
}
