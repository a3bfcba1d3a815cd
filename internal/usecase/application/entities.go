package application

import (
	"agricredit-backend/internal/domain/account"
	"agricredit-backend/internal/domain/application"

	"github.com/shopspring/decimal"
)

type SubmitInput struct {
	CreditProgramID       *string
	ProjectName           string
	ProjectType           application.ProjectType
	Description           string
	Amount                decimal.Decimal
	TermMonths            int
	MonthlyIncome         decimal.Decimal
	ExpectedProjectIncome decimal.Decimal
	MonthlyExpenses       decimal.Decimal
	OtherDebts            decimal.Decimal
	FamilySize            int
	ExperienceYears       int
}

type TransitionInput struct {
	Status          application.Status
	RejectionReason string
}

type TransitionResult struct {
	Application *application.Application `json:"application"`
	Account     *account.Account         `json:"account,omitempty"`
}

// ReconcileReport summarizes one repair sweep.
type ReconcileReport struct {
	Scanned  int
	Repaired int
	Failed   int
}
