package account

import (
	domain "agricredit-backend/internal/domain/account"

	"github.com/shopspring/decimal"
)

type PayInput struct {
	Amount decimal.Decimal
}

type PayResult struct {
	Account *domain.Account `json:"account"`
	Payment *domain.Payment `json:"payment"`
}
