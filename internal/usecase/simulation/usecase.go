package simulation

import (
	"context"
	"time"

	"agricredit-backend/internal/domain/program"
	"agricredit-backend/internal/finance"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	programs      program.Repository
	defaultEffort decimal.Decimal
	now           func() time.Time
}

func NewUsecase(programs program.Repository, defaultEffort decimal.Decimal) *Usecase {
	return &Usecase{programs: programs, defaultEffort: defaultEffort, now: time.Now}
}

// Simulate quotes a credit with the same pricing that opens accounts on
// approval, so both numbers agree.
func (u *Usecase) Simulate(ctx context.Context, in Input) (*Result, error) {
	terms := finance.Terms{
		ProjectType: in.ProjectType,
		Profile: finance.Profile{
			MonthlyIncome:   in.MonthlyIncome,
			MonthlyExpenses: in.MonthlyExpenses,
			OtherDebts:      in.OtherDebts,
			ExperienceYears: in.ExperienceYears,
		},
		InterestRate:  in.InterestRate,
		DefaultEffort: u.defaultEffort,
	}

	var within *bool
	if in.CreditProgramID != nil {
		prog, err := u.programs.GetByID(ctx, *in.CreditProgramID)
		if err != nil {
			return nil, err
		}
		if !prog.IsActive {
			return nil, program.ErrInactive
		}
		terms.InterestRate = prog.InterestRate
		terms.RateFixed = true
		terms.MaxEffortRate = prog.MaxEffortRate
		ok := prog.Accepts(in.Amount, in.TermMonths) == nil
		within = &ok
	}

	pr, err := finance.Price(in.Amount, in.TermMonths, terms)
	if err != nil {
		return nil, err
	}
	q := pr.Quote
	return &Result{
		MonthlyPayment:              q.MonthlyPayment,
		UnconstrainedMonthlyPayment: q.UnconstrainedMonthlyPayment,
		MaxMonthlyPayment:           q.MaxMonthlyPayment.Round(2),
		TotalAmount:                 q.Schedule.TotalAmount,
		TotalInterest:               q.Schedule.TotalInterest,
		InterestRate:                q.Schedule.AnnualRate,
		MaxEffortRate:               q.MaxEffortRate,
		EffortRatePercentage:        q.EffortRatePercentage,
		IsEffortRateViolated:        q.IsEffortRateViolated,
		RiskCategory:                pr.RiskCategory,
		DebtRatio:                   terms.Profile.DebtRatio().Round(4),
		CreditProgramID:             in.CreditProgramID,
		WithinProgramLimits:         within,
		Schedule:                    finance.Installments(q.Schedule, u.now().UTC()),
	}, nil
}
