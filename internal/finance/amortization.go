package finance

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("principal and term must be positive and rate non-negative")

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// DefaultMaxEffortRate applies when no program sets a ceiling.
var DefaultMaxEffortRate = decimal.NewFromInt(40)

// Schedule is a fixed-payment (French) amortization.
type Schedule struct {
	Principal      decimal.Decimal `json:"principal"`
	TermMonths     int             `json:"termMonths"`
	AnnualRate     decimal.Decimal `json:"interestRate"`
	MonthlyRate    decimal.Decimal `json:"monthlyRate"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// Amortize computes the monthly payment for principal over termMonths at an
// annual percentage rate. The payment is rounded half-up to the cent and the
// totals derive from the rounded payment. At rate 0 the total is the
// principal itself; the last installment absorbs the rounding remainder.
func Amortize(principal decimal.Decimal, termMonths int, annualRate decimal.Decimal) (Schedule, error) {
	if !principal.IsPositive() || termMonths <= 0 || annualRate.IsNegative() {
		return Schedule{}, ErrInvalidInput
	}
	n := decimal.NewFromInt(int64(termMonths))
	monthlyRate := annualRate.Div(hundred).Div(twelve)

	var payment decimal.Decimal
	if monthlyRate.IsZero() {
		payment = principal.Div(n)
	} else {
		factor := one.Add(monthlyRate).Pow(n)
		payment = principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(one))
	}
	payment = payment.Round(2)
	total := payment.Mul(n)
	if monthlyRate.IsZero() {
		total = principal
	}

	return Schedule{
		Principal:      principal,
		TermMonths:     termMonths,
		AnnualRate:     annualRate,
		MonthlyRate:    monthlyRate,
		MonthlyPayment: payment,
		TotalAmount:    total,
		TotalInterest:  total.Sub(principal),
	}, nil
}

// Installment is one row of the repayment plan.
type Installment struct {
	Number    int             `json:"number"`
	DueDate   time.Time       `json:"dueDate"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Installments expands s into monthly rows starting one month after start.
// The last row absorbs rounding drift so the remaining balance ends at zero.
func Installments(s Schedule, start time.Time) []Installment {
	out := make([]Installment, 0, s.TermMonths)
	remaining := s.Principal
	for i := 1; i <= s.TermMonths; i++ {
		interest := remaining.Mul(s.MonthlyRate).Round(2)
		principalPart := s.MonthlyPayment.Sub(interest)
		payment := s.MonthlyPayment
		if i == s.TermMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
			payment = principalPart.Add(interest)
		}
		remaining = remaining.Sub(principalPart)
		out = append(out, Installment{
			Number:    i,
			DueDate:   start.AddDate(0, i, 0),
			Payment:   payment,
			Principal: principalPart,
			Interest:  interest,
			Remaining: remaining,
		})
		if remaining.IsZero() {
			break
		}
	}
	return out
}

// Quote is a schedule checked against the borrower's payment capacity.
type Quote struct {
	Schedule                    Schedule
	MonthlyIncome               decimal.Decimal
	MaxEffortRate               decimal.Decimal
	MonthlyPayment              decimal.Decimal
	UnconstrainedMonthlyPayment decimal.Decimal
	MaxMonthlyPayment           decimal.Decimal
	EffortRatePercentage        decimal.Decimal
	IsEffortRateViolated        bool
}

// QuoteWithEffortCap caps the schedule payment at monthlyIncome *
// maxEffortRatePct / 100. A non-positive income applies no cap. Both the
// simulator and account opening go through here.
func QuoteWithEffortCap(principal decimal.Decimal, termMonths int, annualRate, monthlyIncome, maxEffortRatePct decimal.Decimal) (Quote, error) {
	s, err := Amortize(principal, termMonths, annualRate)
	if err != nil {
		return Quote{}, err
	}
	if !maxEffortRatePct.IsPositive() {
		maxEffortRatePct = DefaultMaxEffortRate
	}
	q := Quote{
		Schedule:                    s,
		MonthlyIncome:               monthlyIncome,
		MaxEffortRate:               maxEffortRatePct,
		MonthlyPayment:              s.MonthlyPayment,
		UnconstrainedMonthlyPayment: s.MonthlyPayment,
	}
	if !monthlyIncome.IsPositive() {
		return q, nil
	}
	q.MaxMonthlyPayment = monthlyIncome.Mul(maxEffortRatePct).Div(hundred)
	q.EffortRatePercentage = s.MonthlyPayment.Div(monthlyIncome).Mul(hundred).Round(2)
	if s.MonthlyPayment.GreaterThan(q.MaxMonthlyPayment) {
		q.IsEffortRateViolated = true
		// truncate so the capped payment never exceeds the ceiling
		q.MonthlyPayment = q.MaxMonthlyPayment.Truncate(2)
	}
	return q, nil
}
