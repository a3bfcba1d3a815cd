package program

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("credit program not found")
	ErrInactive     = errors.New("credit program is not active")
	ErrOutOfRange   = errors.New("requested amount or term outside program limits")
	ErrInvalidRange = errors.New("invalid program limits")
	ErrNotOwner     = errors.New("credit program belongs to another institution")
)

// Table: credit_programs
type Program struct {
	ID            string          `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	InstitutionID string          `gorm:"column:institution_id;type:char(36);not null;index" json:"institutionId"`
	Name          string          `gorm:"column:name;size:150;not null" json:"name"`
	Description   string          `gorm:"column:description;type:text" json:"description"`
	MinAmount     decimal.Decimal `gorm:"column:min_amount;type:decimal(18,2);not null" json:"minAmount"`
	MaxAmount     decimal.Decimal `gorm:"column:max_amount;type:decimal(18,2);not null" json:"maxAmount"`
	MinTermMonths int             `gorm:"column:min_term_months;not null" json:"minTermMonths"`
	MaxTermMonths int             `gorm:"column:max_term_months;not null" json:"maxTermMonths"`
	InterestRate  decimal.Decimal `gorm:"column:interest_rate;type:decimal(7,4);not null" json:"interestRate"`
	MaxEffortRate decimal.Decimal `gorm:"column:max_effort_rate;type:decimal(7,4);not null" json:"maxEffortRate"`
	ProcessingFee decimal.Decimal `gorm:"column:processing_fee;type:decimal(7,4);not null" json:"processingFee"`
	IsActive      bool            `gorm:"column:is_active;not null;index" json:"isActive"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Program) TableName() string { return "credit_programs" }

// CheckLimits validates the program's own ranges.
func (p *Program) CheckLimits() error {
	switch {
	case !p.MinAmount.IsPositive(), p.MaxAmount.LessThan(p.MinAmount):
		return fmt.Errorf("%w: amount range %s..%s", ErrInvalidRange, p.MinAmount, p.MaxAmount)
	case p.MinTermMonths <= 0, p.MaxTermMonths < p.MinTermMonths:
		return fmt.Errorf("%w: term range %d..%d", ErrInvalidRange, p.MinTermMonths, p.MaxTermMonths)
	case p.InterestRate.IsNegative():
		return fmt.Errorf("%w: negative interest rate", ErrInvalidRange)
	case !p.MaxEffortRate.IsPositive(), p.MaxEffortRate.GreaterThan(decimal.NewFromInt(100)):
		return fmt.Errorf("%w: effort rate must be in (0, 100]", ErrInvalidRange)
	case p.ProcessingFee.IsNegative():
		return fmt.Errorf("%w: negative processing fee", ErrInvalidRange)
	}
	return nil
}

// Accepts reports whether an application for amount over term months fits
// this program.
func (p *Program) Accepts(amount decimal.Decimal, termMonths int) error {
	if !p.IsActive {
		return ErrInactive
	}
	if amount.LessThan(p.MinAmount) || amount.GreaterThan(p.MaxAmount) {
		return fmt.Errorf("%w: amount must be between %s and %s", ErrOutOfRange, p.MinAmount.StringFixed(2), p.MaxAmount.StringFixed(2))
	}
	if termMonths < p.MinTermMonths || termMonths > p.MaxTermMonths {
		return fmt.Errorf("%w: term must be between %d and %d months", ErrOutOfRange, p.MinTermMonths, p.MaxTermMonths)
	}
	return nil
}
