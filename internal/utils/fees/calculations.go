package fees

import (
	"fmt"

	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlatformFeeCents computes the platform fee for a sale total under the given
// policy: round(total * percentage / 100) + fixed. Amounts stay integer cents;
// the percentage arithmetic runs on decimals and rounds half-up at the cent.
func PlatformFeeCents(policy domain.FeePolicy, totalCents int64) (int64, error) {
	if totalCents < 0 {
		return 0, fmt.Errorf("sale total must not be negative, got %d", totalCents)
	}
	if policy.Percentage.IsNegative() {
		return 0, fmt.Errorf("fee percentage must not be negative, got %s", policy.Percentage.String())
	}
	pctFee := decimal.NewFromInt(totalCents).
		Mul(policy.Percentage).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return pctFee.IntPart() + policy.FixedCents, nil
}

// PercentageOf returns what share of the total the given amount represents, in
// percentage points. Stored on split rows for audit; never used for balance math.
func PercentageOf(amountCents, totalCents int64) decimal.Decimal {
	if totalCents == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(amountCents).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(totalCents)).
		Round(2)
}
