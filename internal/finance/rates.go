package finance

import (
	"github.com/shopspring/decimal"
)

type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// annual %, keyed by project type
var baseRates = map[string]decimal.Decimal{
	"crop_production": decimal.NewFromInt(12),
	"livestock":       decimal.NewFromInt(13),
	"agro_processing": decimal.NewFromInt(14),
	"equipment":       decimal.NewFromInt(11),
	"irrigation":      decimal.NewFromInt(10),
	"other":           decimal.NewFromInt(15),
}

var riskAdjustments = map[RiskCategory]decimal.Decimal{
	RiskLow:    decimal.Zero,
	RiskMedium: decimal.NewFromFloat(1.5),
	RiskHigh:   decimal.NewFromInt(3),
}

var (
	lowRiskRatio  = decimal.NewFromFloat(0.3)
	highRiskRatio = decimal.NewFromFloat(0.6)
)

// Profile is the part of an applicant's situation that drives pricing.
type Profile struct {
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	OtherDebts      decimal.Decimal
	ExperienceYears int
}

// DebtRatio is (expenses + other debts) / income. Zero income counts as
// fully indebted.
func (p Profile) DebtRatio() decimal.Decimal {
	if !p.MonthlyIncome.IsPositive() {
		return one
	}
	return p.MonthlyExpenses.Add(p.OtherDebts).Div(p.MonthlyIncome)
}

func (p Profile) Risk() RiskCategory {
	ratio := p.DebtRatio()
	switch {
	case ratio.GreaterThan(highRiskRatio) || p.ExperienceYears < 2:
		return RiskHigh
	case ratio.LessThan(lowRiskRatio) && p.ExperienceYears >= 5:
		return RiskLow
	default:
		return RiskMedium
	}
}

// BaseRate returns the annual rate for a project type; unknown types price
// as "other".
func BaseRate(projectType string) decimal.Decimal {
	if r, ok := baseRates[projectType]; ok {
		return r
	}
	return baseRates["other"]
}

// DerivedRate is the rate used when no credit program fixes one.
func DerivedRate(projectType string, risk RiskCategory) decimal.Decimal {
	return BaseRate(projectType).Add(riskAdjustments[risk])
}
