package simulation

import (
	"agricredit-backend/internal/finance"

	"github.com/shopspring/decimal"
)

type Input struct {
	Amount          decimal.Decimal
	TermMonths      int
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	OtherDebts      decimal.Decimal
	ExperienceYears int
	ProjectType     string
	CreditProgramID *string
	// explicit rate, used only without a program
	InterestRate decimal.Decimal
}

type Result struct {
	MonthlyPayment              decimal.Decimal       `json:"monthlyPayment"`
	UnconstrainedMonthlyPayment decimal.Decimal       `json:"unconstrainedMonthlyPayment"`
	MaxMonthlyPayment           decimal.Decimal       `json:"maxMonthlyPayment"`
	TotalAmount                 decimal.Decimal       `json:"totalAmount"`
	TotalInterest               decimal.Decimal       `json:"totalInterest"`
	InterestRate                decimal.Decimal       `json:"interestRate"`
	MaxEffortRate               decimal.Decimal       `json:"maxEffortRate"`
	EffortRatePercentage        decimal.Decimal       `json:"effortRatePercentage"`
	IsEffortRateViolated        bool                  `json:"isEffortRateViolated"`
	RiskCategory                finance.RiskCategory  `json:"riskCategory"`
	DebtRatio                   decimal.Decimal       `json:"debtRatio"`
	CreditProgramID             *string               `json:"creditProgramId,omitempty"`
	WithinProgramLimits         *bool                 `json:"withinProgramLimits,omitempty"`
	Schedule                    []finance.Installment `json:"schedule"`
}
