package finance

import "github.com/shopspring/decimal"

// Terms selects the rate and effort ceiling for a loan. Without RateFixed a
// zero InterestRate means "not set" and the rate is derived from project type
// and risk. A zero ceiling falls back to DefaultEffort and then
// DefaultMaxEffortRate.
type Terms struct {
	ProjectType  string
	Profile      Profile
	InterestRate decimal.Decimal
	// RateFixed makes InterestRate binding even at 0, as for a program.
	RateFixed     bool
	MaxEffortRate decimal.Decimal
	DefaultEffort decimal.Decimal
}

// Pricing is a quote plus how its rate was chosen.
type Pricing struct {
	Quote        Quote
	RiskCategory RiskCategory
	RateDerived  bool
}

// Price quotes principal over termMonths under t.
func Price(principal decimal.Decimal, termMonths int, t Terms) (Pricing, error) {
	risk := t.Profile.Risk()
	rate, derived := t.InterestRate, false
	if !t.RateFixed && !rate.IsPositive() {
		rate, derived = DerivedRate(t.ProjectType, risk), true
	}
	effort := t.MaxEffortRate
	if !effort.IsPositive() {
		effort = t.DefaultEffort
	}
	q, err := QuoteWithEffortCap(principal, termMonths, rate, t.Profile.MonthlyIncome, effort)
	if err != nil {
		return Pricing{}, err
	}
	return Pricing{Quote: q, RiskCategory: risk, RateDerived: derived}, nil
}
