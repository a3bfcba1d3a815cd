package program

import "github.com/shopspring/decimal"

type CreateInput struct {
	Name          string
	Description   string
	MinAmount     decimal.Decimal
	MaxAmount     decimal.Decimal
	MinTermMonths int
	MaxTermMonths int
	InterestRate  decimal.Decimal
	MaxEffortRate decimal.Decimal
	ProcessingFee decimal.Decimal
	// InstitutionID is honored only for unscoped callers.
	InstitutionID string
}

// UpdateInput applies only the non-nil fields.
type UpdateInput struct {
	Name          *string
	Description   *string
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	MinTermMonths *int
	MaxTermMonths *int
	InterestRate  *decimal.Decimal
	MaxEffortRate *decimal.Decimal
	ProcessingFee *decimal.Decimal
}
