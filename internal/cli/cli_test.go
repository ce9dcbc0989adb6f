package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufkecer/eatsmart-backend/internal/bmi"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalc(t *testing.T) {
	tests := []struct {
		height, weight string
		want           string
	}{
		{"170", "70", "BMI 24.2  Normal weight\n"},
		{"160", "45", "BMI 17.6  Underweight\n"},
		{"180", "95", "BMI 29.3  Overweight\n"},
		{"150", "90", "BMI 40.0  Obese\n"},
	}

	for _, tt := range tests {
		t.Run(tt.height+"x"+tt.weight, func(t *testing.T) {
			out, err := run(t, "calc", "--height", tt.height, "--weight", tt.weight)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCalc_JSON(t *testing.T) {
	out, err := run(t, "calc", "--height", "170", "--weight", "70", "--json")
	require.NoError(t, err)

	var got calcOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 24.2, got.Rounded)
	assert.InDelta(t, 24.2215, got.Index, 0.0001)
	assert.Equal(t, "normal_weight", got.Category)
	assert.Equal(t, "green", got.Color)
}

func TestCalc_InvalidInput(t *testing.T) {
	_, err := run(t, "calc", "--height", "abc", "--weight", "70")
	assert.ErrorIs(t, err, bmi.ErrInvalidInput)

	_, err = run(t, "calc", "--weight", "70")
	assert.ErrorIs(t, err, bmi.ErrInvalidInput)

	_, err = run(t, "calc", "--height", "0", "--weight", "70")
	assert.ErrorIs(t, err, bmi.ErrInvalidInput)

	_, err = run(t, "calc", "--height", "170", "--weight", "1e308", "--json")
	assert.ErrorIs(t, err, bmi.ErrInvalidInput)
}

func TestCategories(t *testing.T) {
	out, err := run(t, "categories")
	require.NoError(t, err)

	assert.Contains(t, out, "Underweight")
	assert.Contains(t, out, "< 18.5")
	assert.Contains(t, out, "18.5 - 25.0")
	assert.Contains(t, out, "25.0 - 30.0")
	assert.Contains(t, out, ">= 30.0")
}
