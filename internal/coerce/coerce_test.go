package coerce_test

import (
	"testing"
	"time"

	"github.com/halebuild/takeoff-engine/internal/coerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *int
	}{
		{"plain integer string", "42", intPtr(42)},
		{"decimal string truncates", "3.0", intPtr(3)},
		{"fractional string truncates", "3.7", intPtr(3)},
		{"thousands separator", "1,250", intPtr(1250)},
		{"whitespace", "  17 ", intPtr(17)},
		{"empty string", "", nil},
		{"garbage", "N/A", nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coerce.Int(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestFloat(t *testing.T) {
	assert.Nil(t, coerce.Float(""))
	assert.Nil(t, coerce.Float("abc"))
	assert.Nil(t, coerce.Float(nil))
	assert.Nil(t, coerce.Float(true))

	got := coerce.Float("2.5")
	require.NotNil(t, got)
	assert.Equal(t, 2.5, *got)

	got = coerce.Float("1,234.56")
	require.NotNil(t, got)
	assert.Equal(t, 1234.56, *got)

	got = coerce.Float(float64(10))
	require.NotNil(t, got)
	assert.Equal(t, 10.0, *got)
}

func TestString(t *testing.T) {
	assert.Nil(t, coerce.String(""))
	assert.Nil(t, coerce.String("   "))
	assert.Nil(t, coerce.String(nil))

	got := coerce.String("  Drywall 1/2in  ")
	require.NotNil(t, got)
	assert.Equal(t, "Drywall 1/2in", *got)
}

func TestBool(t *testing.T) {
	truthy := []string{"true", "TRUE", "1", "yes", "Yes", "y"}
	for _, s := range truthy {
		got := coerce.Bool(s)
		require.NotNil(t, got, s)
		assert.True(t, *got, s)
	}

	falsy := []string{"false", "0", "no", "n", "maybe"}
	for _, s := range falsy {
		got := coerce.Bool(s)
		require.NotNil(t, got, s)
		assert.False(t, *got, s)
	}

	assert.Nil(t, coerce.Bool(""))
	assert.Nil(t, coerce.Bool(nil))
}

func TestDate(t *testing.T) {
	got := coerce.Date("2025-04-07")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), got.UTC())

	// Compact dotted version-stamp format with 2-digit year
	got = coerce.Date("4.7.25")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), *got)

	got = coerce.Date("12.31.2024")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, coerce.Date(""))
	assert.Nil(t, coerce.Date("13.1.25"))
	assert.Nil(t, coerce.Date("not a date"))
	assert.Nil(t, coerce.Date(nil))
}

func intPtr(v int) *int { return &v }
