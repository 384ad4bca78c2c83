package fees_test

import (
	"testing"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils/fees"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformFeeCents(t *testing.T) {
	tests := []struct {
		name       string
		percentage string
		fixedCents int64
		totalCents int64
		want       int64
	}{
		{"five percent no fixed", "5", 0, 10000, 500},
		{"five percent with fixed", "5", 100, 10000, 600},
		{"rounds half up", "2.5", 0, 101, 3}, // 2.525 -> 3
		{"rounds down below half", "2.5", 0, 99, 2},
		{"zero percentage", "0", 250, 10000, 250},
		{"zero total", "5", 0, 0, 0},
		{"fractional percentage", "3.99", 0, 123456, 4926},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := domain.FeePolicy{
				Percentage: decimal.RequireFromString(tt.percentage),
				FixedCents: tt.fixedCents,
			}
			got, err := fees.PlatformFeeCents(policy, tt.totalCents)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatformFeeCents_NegativeInputs(t *testing.T) {
	policy := domain.FeePolicy{Percentage: decimal.NewFromInt(5)}
	_, err := fees.PlatformFeeCents(policy, -1)
	assert.Error(t, err)

	policy.Percentage = decimal.NewFromInt(-5)
	_, err = fees.PlatformFeeCents(policy, 1000)
	assert.Error(t, err)
}

func TestPercentageOf(t *testing.T) {
	assert.True(t, fees.PercentageOf(500, 10000).Equal(decimal.NewFromInt(5)))
	assert.True(t, fees.PercentageOf(0, 10000).IsZero())
	assert.True(t, fees.PercentageOf(500, 0).IsZero())
	assert.Equal(t, "33.33", fees.PercentageOf(100, 300).String())
}
