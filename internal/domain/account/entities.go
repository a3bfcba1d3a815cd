package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrAlreadyExists = errors.New("account already exists for application")
	ErrForbidden     = errors.New("account belongs to another user")
	ErrPaidOff       = errors.New("account is already paid off")
	ErrInactive      = errors.New("account is inactive")
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")
)

type Status string

const (
	StatusActive  Status = "active"
	StatusPaidOff Status = "paid_off"
)

// Table: accounts
type Account struct {
	ID                 string          `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	ApplicationID      string          `gorm:"column:application_id;type:char(36);not null;uniqueIndex:ux_accounts_application_id" json:"applicationId"`
	UserID             string          `gorm:"column:user_id;type:char(36);not null;index" json:"userId"`
	InstitutionID      string          `gorm:"column:institution_id;type:char(36);not null;index" json:"institutionId"`
	Principal          decimal.Decimal `gorm:"column:principal;type:decimal(18,2);not null" json:"principal"`
	InterestRate       decimal.Decimal `gorm:"column:interest_rate;type:decimal(7,4);not null" json:"interestRate"`
	TermMonths         int             `gorm:"column:term_months;not null" json:"termMonths"`
	TotalAmount        decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"totalAmount"`
	OutstandingBalance decimal.Decimal `gorm:"column:outstanding_balance;type:decimal(18,2);not null" json:"outstandingBalance"`
	MonthlyPayment     decimal.Decimal `gorm:"column:monthly_payment;type:decimal(18,2);not null" json:"monthlyPayment"`
	NextPaymentDate    time.Time       `gorm:"column:next_payment_date;not null" json:"nextPaymentDate"`
	Status             Status          `gorm:"column:status;size:20;not null" json:"status"`
	IsActive           bool            `gorm:"column:is_active;not null" json:"isActive"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Account) TableName() string { return "accounts" }

// Table: payments (append-only)
type Payment struct {
	ID           string          `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	AccountID    string          `gorm:"column:account_id;type:char(36);not null;index" json:"accountId"`
	UserID       string          `gorm:"column:user_id;type:char(36);not null;index" json:"userId"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:decimal(18,2);not null" json:"balanceAfter"`
	PaymentDate  time.Time       `gorm:"column:payment_date;not null" json:"paymentDate"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Payment) TableName() string { return "payments" }

// ApplyPayment decrements the balance (never below zero) and moves the next
// due date one calendar month past the payment moment. It returns the ledger
// row to append; ID is left for the caller.
func (a *Account) ApplyPayment(payerID string, amount decimal.Decimal, at time.Time) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if a.UserID != payerID {
		return nil, ErrForbidden
	}
	if a.Status == StatusPaidOff {
		return nil, ErrPaidOff
	}
	if !a.IsActive {
		return nil, ErrInactive
	}

	at = at.UTC()
	balance := a.OutstandingBalance.Sub(amount)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	a.OutstandingBalance = balance
	a.NextPaymentDate = at.AddDate(0, 1, 0)
	if balance.IsZero() {
		a.Status = StatusPaidOff
	}

	return &Payment{
		AccountID:    a.ID,
		UserID:       payerID,
		Amount:       amount,
		BalanceAfter: balance,
		PaymentDate:  at,
	}, nil
}
