package formula_test

import (
	"testing"

	"github.com/halebuild/takeoff-engine/internal/formula"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	vars := map[string]float64{
		"heated_sf_inside_studs": 2400,
		"total_sf_outside_studs": 3100,
		"stair_count":            2,
	}

	tests := []struct {
		expr string
		want float64
	}{
		{"1 + 2", 3},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"-5 + 3", -2},
		{"--4", 4},
		{"heated_sf_inside_studs / 32", 75},
		{"heated_sf_inside_studs * 1.1", 2640},
		{"total_sf_outside_studs - heated_sf_inside_studs", 700},
		{"stair_count * 13 + 2", 28},
		{"  1.5 *  ( 2 + 2 ) ", 6},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := formula.Evaluate(tt.expr, vars)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	vars := map[string]float64{"heated_sf_inside_studs": 2400}

	for _, expr := range []string{
		"",
		"1 +",
		"(1 + 2",
		"1 / 0",
		"unknown_var * 2",
		"1 ** 2",
		"import os",
		"foo(1)",
		"1..5",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := formula.Evaluate(expr, vars)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	names := []string{"heated_sf_inside_studs", "stair_count"}

	assert.NoError(t, formula.Validate("heated_sf_inside_studs / 32", names))
	assert.NoError(t, formula.Validate("stair_count * 13", names))
	assert.Error(t, formula.Validate("bedroom_count * 2", names))
	assert.Error(t, formula.Validate("stair_count +", names))
}
