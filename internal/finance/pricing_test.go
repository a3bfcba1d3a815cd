package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_ProgramRateWins(t *testing.T) {
	p, err := Price(dec("750000"), 12, Terms{
		ProjectType:   "livestock",
		Profile:       Profile{MonthlyIncome: dec("500000"), ExperienceYears: 10},
		InterestRate:  dec("15"),
		MaxEffortRate: dec("40"),
	})
	require.NoError(t, err)
	assert.False(t, p.RateDerived)
	assert.Equal(t, RiskLow, p.RiskCategory)
	assert.True(t, p.Quote.MonthlyPayment.Equal(dec("67693.73")))
	assert.False(t, p.Quote.IsEffortRateViolated)
}

func TestPrice_DerivesRateFromProjectAndRisk(t *testing.T) {
	// ratio 0.4, 3 years: medium risk, crop_production 12 + 1.5
	p, err := Price(dec("120000"), 12, Terms{
		ProjectType: "crop_production",
		Profile:     Profile{MonthlyIncome: dec("100000"), MonthlyExpenses: dec("40000"), ExperienceYears: 3},
	})
	require.NoError(t, err)
	assert.True(t, p.RateDerived)
	assert.Equal(t, RiskMedium, p.RiskCategory)
	assert.True(t, p.Quote.Schedule.AnnualRate.Equal(dec("13.5")), "rate %s", p.Quote.Schedule.AnnualRate)
	assert.True(t, p.Quote.MaxEffortRate.Equal(DefaultMaxEffortRate))
}

func TestPrice_DefaultEffortOverridesPackageDefault(t *testing.T) {
	p, err := Price(dec("120000"), 12, Terms{
		ProjectType:   "other",
		Profile:       Profile{MonthlyIncome: dec("10000"), ExperienceYears: 6},
		DefaultEffort: dec("30"),
	})
	require.NoError(t, err)
	assert.True(t, p.Quote.MaxEffortRate.Equal(dec("30")))
	assert.True(t, p.Quote.IsEffortRateViolated)
	assert.True(t, p.Quote.MonthlyPayment.Equal(dec("3000")))
}

func TestPrice_FixedZeroRateIsInterestFree(t *testing.T) {
	p, err := Price(dec("180000"), 18, Terms{
		ProjectType:   "crop_production",
		Profile:       Profile{MonthlyIncome: dec("100000"), ExperienceYears: 1},
		InterestRate:  decimal.Zero,
		RateFixed:     true,
		MaxEffortRate: dec("40"),
	})
	require.NoError(t, err)
	assert.False(t, p.RateDerived)
	assert.True(t, p.Quote.Schedule.AnnualRate.IsZero())
	assert.True(t, p.Quote.MonthlyPayment.Equal(dec("10000")))
	assert.True(t, p.Quote.Schedule.TotalAmount.Equal(dec("180000")))
}

func TestPrice_InvalidInput(t *testing.T) {
	_, err := Price(decimal.Zero, 12, Terms{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
