package account

import (
	"context"
	"fmt"
	"time"

	"agricredit-backend/internal/access"
	domain "agricredit-backend/internal/domain/account"
	"agricredit-backend/internal/domain/notification"
	"agricredit-backend/internal/domain/uow"
	notifUC "agricredit-backend/internal/usecase/notification"
	"agricredit-backend/pkg/id"

	"github.com/rs/zerolog"
)

type Usecase struct {
	accounts domain.Repository
	uow      uow.UnitOfWork
	pub      notification.Publisher
	log      zerolog.Logger
	now      func() time.Time
}

func NewUsecase(accounts domain.Repository, tx uow.UnitOfWork, pub notification.Publisher, log zerolog.Logger) *Usecase {
	return &Usecase{accounts: accounts, uow: tx, pub: pub, log: log, now: time.Now}
}

// Pay records a payment by the account owner. The account row is locked for
// the whole ledger update.
func (u *Usecase) Pay(ctx context.Context, p *access.Principal, accountID string, in PayInput) (*PayResult, error) {
	if err := p.Require(access.AccountsPay); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	amount := in.Amount.Round(2)

	var (
		res PayResult
		n   *notification.Notification
	)
	err := u.uow.WithinAccountTx(ctx, accountID, func(r uow.Repos, a *domain.Account) error {
		now := u.now().UTC()
		pay, err := a.ApplyPayment(p.UserID, amount, now)
		if err != nil {
			return err
		}
		pay.ID = id.New()
		if err := r.Accounts.CreatePayment(ctx, pay); err != nil {
			return err
		}
		if err := r.Accounts.Save(ctx, a); err != nil {
			return err
		}

		msg := fmt.Sprintf("Payment of %s received. Outstanding balance: %s.", pay.Amount.StringFixed(2), a.OutstandingBalance.StringFixed(2))
		if a.Status == domain.StatusPaidOff {
			msg = fmt.Sprintf("Payment of %s received. Your credit is fully paid off.", pay.Amount.StringFixed(2))
		}
		n = notification.New(id.New(), a.UserID, notification.TypePaymentConfirmed, "Payment confirmed", msg, a.ID, now)
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		res = PayResult{Account: a, Payment: pay}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().
		Str("account_id", accountID).
		Str("amount", amount.String()).
		Str("balance", res.Account.OutstandingBalance.String()).
		Str("status", string(res.Account.Status)).
		Msg("payment recorded")
	notifUC.Dispatch(ctx, u.pub, u.log, n)
	return &res, nil
}

func (u *Usecase) ListMine(ctx context.Context, p *access.Principal) ([]domain.Account, error) {
	if !p.Permissions.HasAny(access.AccountsReadOwn, access.AccountsRead) {
		return nil, access.ErrForbidden
	}
	return u.accounts.ListByUser(ctx, p.UserID)
}

func (u *Usecase) ListForInstitution(ctx context.Context, p *access.Principal) ([]domain.Account, error) {
	if err := p.Require(access.AccountsRead); err != nil {
		return nil, err
	}
	scope := p.InstitutionID
	if p.Unscoped() {
		scope = ""
	} else if scope == "" {
		return nil, access.ErrForbidden
	}
	return u.accounts.ListByInstitution(ctx, scope)
}

// Get returns the account to its owner or to institution readers in scope.
func (u *Usecase) Get(ctx context.Context, p *access.Principal, accountID string) (*domain.Account, error) {
	a, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a.UserID == p.UserID {
		return a, nil
	}
	if p.Can(access.AccountsRead) && p.InScope(a.InstitutionID) {
		return a, nil
	}
	return nil, domain.ErrForbidden
}

func (u *Usecase) ListPayments(ctx context.Context, p *access.Principal, accountID string) ([]domain.Payment, error) {
	if _, err := u.Get(ctx, p, accountID); err != nil {
		return nil, err
	}
	out, err := u.accounts.ListPayments(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Payment{}
	}
	return out, nil
}
