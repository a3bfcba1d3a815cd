package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agricredit-backend/internal/access"
	"agricredit-backend/internal/domain/account"
	"agricredit-backend/internal/domain/application"
	"agricredit-backend/internal/domain/notification"
	"agricredit-backend/internal/domain/program"
	"agricredit-backend/internal/domain/uow"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/finance"
	notifUC "agricredit-backend/internal/usecase/notification"
	"agricredit-backend/pkg/id"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// permission required to move an application into each status
var transitionPermission = map[application.Status]string{
	application.StatusUnderReview: access.ApplicationsReview,
	application.StatusApproved:    access.ApplicationsApprove,
	application.StatusRejected:    access.ApplicationsReject,
}

type Usecase struct {
	apps          application.Repository
	programs      program.Repository
	uow           uow.UnitOfWork
	pub           notification.Publisher
	log           zerolog.Logger
	defaultEffort decimal.Decimal
	now           func() time.Time
}

func NewUsecase(apps application.Repository, programs program.Repository, tx uow.UnitOfWork, pub notification.Publisher, defaultEffort decimal.Decimal, log zerolog.Logger) *Usecase {
	return &Usecase{
		apps:          apps,
		programs:      programs,
		uow:           tx,
		pub:           pub,
		log:           log,
		defaultEffort: defaultEffort,
		now:           time.Now,
	}
}

func (u *Usecase) Submit(ctx context.Context, p *access.Principal, in SubmitInput) (*application.Application, error) {
	if err := p.Require(access.ApplicationsCreate); err != nil {
		return nil, err
	}
	if !p.UserType.IsApplicant() {
		return nil, application.ErrNotApplicant
	}
	if !in.ProjectType.Valid() {
		return nil, fmt.Errorf("%w: %q", application.ErrInvalidProjectType, in.ProjectType)
	}

	if in.CreditProgramID != nil {
		prog, err := u.programs.GetByID(ctx, *in.CreditProgramID)
		if errors.Is(err, program.ErrNotFound) {
			return nil, application.ErrProgramUnavailable
		}
		if err != nil {
			return nil, err
		}
		if err := prog.Accepts(in.Amount, in.TermMonths); err != nil {
			if errors.Is(err, program.ErrInactive) {
				return nil, application.ErrProgramUnavailable
			}
			return nil, err
		}
	}

	now := u.now().UTC()
	a := &application.Application{
		ID:                    id.New(),
		UserID:                p.UserID,
		CreditProgramID:       in.CreditProgramID,
		ProjectName:           strings.TrimSpace(in.ProjectName),
		ProjectType:           in.ProjectType,
		Description:           in.Description,
		Amount:                in.Amount,
		TermMonths:            in.TermMonths,
		MonthlyIncome:         in.MonthlyIncome,
		ExpectedProjectIncome: in.ExpectedProjectIncome,
		MonthlyExpenses:       in.MonthlyExpenses,
		OtherDebts:            in.OtherDebts,
		FamilySize:            in.FamilySize,
		ExperienceYears:       in.ExperienceYears,
		Status:                application.StatusPending,
		StatusChangedAt:       now,
	}
	n := notification.New(id.New(), a.UserID, notification.TypeApplicationSubmitted,
		"Application submitted",
		fmt.Sprintf("Your application for %q (%s) was received and is pending review.", a.ProjectName, a.Amount.StringFixed(2)),
		a.ID, now)

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		return r.Notifications.Create(ctx, n)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("application_id", a.ID).Str("user_id", a.UserID).Str("amount", a.Amount.String()).Msg("application submitted")
	notifUC.Dispatch(ctx, u.pub, u.log, n)
	return a, nil
}

// ListMine returns the caller's own applications.
func (u *Usecase) ListMine(ctx context.Context, p *access.Principal) ([]application.Application, error) {
	if !p.Permissions.HasAny(access.ApplicationsReadOwn, access.ApplicationsRead) {
		return nil, access.ErrForbidden
	}
	return u.apps.ListByUser(ctx, p.UserID)
}

// ListForInstitution returns applications in the caller's institution scope:
// unassigned ones plus those on programs the institution owns.
func (u *Usecase) ListForInstitution(ctx context.Context, p *access.Principal) ([]application.Application, error) {
	if err := p.Require(access.ApplicationsRead); err != nil {
		return nil, err
	}
	scope := p.InstitutionID
	if p.Unscoped() {
		scope = ""
	} else if scope == "" {
		return nil, access.ErrForbidden
	}
	return u.apps.ListForInstitution(ctx, scope)
}

// Get returns one application when the caller owns it or it is in scope.
// Out-of-scope applications read as not found.
func (u *Usecase) Get(ctx context.Context, p *access.Principal, applicationID string) (*application.Application, error) {
	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.UserID == p.UserID {
		return a, nil
	}
	if !p.Can(access.ApplicationsRead) {
		return nil, application.ErrNotFound
	}
	ok, err := inScope(ctx, u.programs, p, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, application.ErrNotFound
	}
	return a, nil
}

func inScope(ctx context.Context, programs program.Repository, p *access.Principal, a *application.Application) (bool, error) {
	if p.Unscoped() {
		return true, nil
	}
	if p.InstitutionID == "" {
		return false, nil
	}
	if a.CreditProgramID == nil {
		return true, nil
	}
	prog, err := programs.GetByID(ctx, *a.CreditProgramID)
	if errors.Is(err, program.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.InScope(prog.InstitutionID), nil
}

// Transition moves an application through the review workflow. Approval opens
// the repayment account inside the same transaction; a failure there leaves
// the status untouched.
func (u *Usecase) Transition(ctx context.Context, p *access.Principal, applicationID string, in TransitionInput) (*TransitionResult, error) {
	perm, ok := transitionPermission[in.Status]
	if !ok {
		return nil, fmt.Errorf("%w: %q", application.ErrInvalidStatus, in.Status)
	}
	if err := p.Require(perm); err != nil {
		return nil, err
	}

	var (
		res     TransitionResult
		pending []*notification.Notification
	)
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *application.Application) error {
		visible, err := inScope(ctx, r.Programs, p, a)
		if err != nil {
			return err
		}
		if !visible {
			return application.ErrNotFound
		}

		now := u.now().UTC()
		from := a.Status
		if err := a.Transition(in.Status, p.ActorID(), in.RejectionReason, now); err != nil {
			return err
		}
		if err := r.Applications.UpdateStatus(ctx, a, from); err != nil {
			return err
		}
		n := statusNotification(a, now)
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		pending = append(pending, n)

		if a.Status == application.StatusApproved {
			acc, an, err := u.openAccount(ctx, r, a, now)
			if err != nil {
				return fmt.Errorf("open account: %w", err)
			}
			res.Account = acc
			pending = append(pending, an)
		}
		res.Application = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := u.log.Info().Str("application_id", applicationID).Str("status", string(in.Status)).Str("actor", p.ActorID())
	if res.Account != nil {
		ev = ev.Str("account_id", res.Account.ID)
	}
	ev.Msg("application status changed")
	notifUC.Dispatch(ctx, u.pub, u.log, pending...)
	return &res, nil
}

// openAccount prices the approved application and inserts its account plus
// the account_created notification. Must run inside the approval tx.
func (u *Usecase) openAccount(ctx context.Context, r uow.Repos, a *application.Application, now time.Time) (*account.Account, *notification.Notification, error) {
	terms := finance.Terms{
		ProjectType: string(a.ProjectType),
		Profile: finance.Profile{
			MonthlyIncome:   a.MonthlyIncome,
			MonthlyExpenses: a.MonthlyExpenses,
			OtherDebts:      a.OtherDebts,
			ExperienceYears: a.ExperienceYears,
		},
		DefaultEffort: u.defaultEffort,
	}
	var institutionID string
	if a.CreditProgramID != nil {
		prog, err := r.Programs.GetByID(ctx, *a.CreditProgramID)
		if err != nil {
			return nil, nil, err
		}
		terms.InterestRate = prog.InterestRate
		terms.RateFixed = true
		terms.MaxEffortRate = prog.MaxEffortRate
		institutionID = prog.InstitutionID
	} else {
		var err error
		if institutionID, err = deciderInstitution(ctx, r.Users, a); err != nil {
			return nil, nil, err
		}
	}

	pricing, err := finance.Price(a.Amount, a.TermMonths, terms)
	if err != nil {
		return nil, nil, err
	}
	q := pricing.Quote
	acc := &account.Account{
		ID:                 id.New(),
		ApplicationID:      a.ID,
		UserID:             a.UserID,
		InstitutionID:      institutionID,
		Principal:          a.Amount,
		InterestRate:       q.Schedule.AnnualRate,
		TermMonths:         a.TermMonths,
		TotalAmount:        q.Schedule.TotalAmount,
		OutstandingBalance: q.Schedule.TotalAmount,
		MonthlyPayment:     q.MonthlyPayment,
		NextPaymentDate:    now.AddDate(0, 1, 0),
		Status:             account.StatusActive,
		IsActive:           true,
	}
	if err := r.Accounts.Create(ctx, acc); err != nil {
		return nil, nil, err
	}
	n := notification.New(id.New(), a.UserID, notification.TypeAccountCreated,
		"Credit account opened",
		fmt.Sprintf("Your credit account was opened: %s over %d months, monthly payment %s, first payment due %s.",
			acc.TotalAmount.StringFixed(2), acc.TermMonths, acc.MonthlyPayment.StringFixed(2), acc.NextPaymentDate.Format("2006-01-02")),
		acc.ID, now)
	if err := r.Notifications.Create(ctx, n); err != nil {
		return nil, nil, err
	}
	return acc, n, nil
}

func statusNotification(a *application.Application, now time.Time) *notification.Notification {
	var (
		t          notification.Type
		title, msg string
	)
	switch a.Status {
	case application.StatusUnderReview:
		t, title = notification.TypeApplicationUnderReview, "Application under review"
		msg = fmt.Sprintf("Your application for %q is now under review.", a.ProjectName)
	case application.StatusApproved:
		t, title = notification.TypeApplicationApproved, "Application approved"
		msg = fmt.Sprintf("Your application for %q was approved.", a.ProjectName)
	default:
		t, title = notification.TypeApplicationRejected, "Application rejected"
		msg = fmt.Sprintf("Your application for %q was rejected: %s", a.ProjectName, *a.RejectionReason)
	}
	return notification.New(id.New(), a.UserID, t, title, msg, a.ID, now)
}

// deciderInstitution names the institution that approved or reviewed a
// program-less application. Administrators act for no institution, so an
// application they alone handled yields "" and its account is visible only
// to unscoped callers.
func deciderInstitution(ctx context.Context, users user.Repository, a *application.Application) (string, error) {
	for _, actor := range []*string{a.ApprovedBy, a.ReviewedBy} {
		if actor == nil || *actor == "" {
			continue
		}
		u, err := users.GetByID(ctx, *actor)
		if errors.Is(err, user.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		if u.UserType == user.TypeFinancialInstitution {
			return u.ID, nil
		}
	}
	return "", nil
}

// Reconcile opens accounts for approved applications that lack one, e.g.
// rows approved outside the API. It walks every orphan in pages of limit so a
// row that keeps failing never hides the ones after it. Each application is
// repaired in its own tx.
func (u *Usecase) Reconcile(ctx context.Context, limit int) (ReconcileReport, error) {
	var rep ReconcileReport
	if limit <= 0 {
		limit = 100
	}
	cursor := ""
	for {
		orphans, err := u.apps.ListApprovedWithoutAccount(ctx, cursor, limit)
		if err != nil {
			return rep, err
		}
		rep.Scanned += len(orphans)
		for _, o := range orphans {
			if ctx.Err() != nil {
				return rep, ctx.Err()
			}
			u.reconcileOne(ctx, o.ID, &rep)
		}
		if len(orphans) < limit {
			return rep, nil
		}
		cursor = orphans[len(orphans)-1].ID
	}
}

func (u *Usecase) reconcileOne(ctx context.Context, id string, rep *ReconcileReport) {
	var n *notification.Notification
	err := u.uow.WithinApplicationTx(ctx, id, func(r uow.Repos, a *application.Application) error {
		if a.Status != application.StatusApproved {
			return nil
		}
		_, err := r.Accounts.GetByApplicationID(ctx, a.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, account.ErrNotFound) {
			return err
		}
		_, n, err = u.openAccount(ctx, r, a, u.now().UTC())
		return err
	})
	switch {
	case errors.Is(err, account.ErrAlreadyExists):
		// opened concurrently by the approval itself
	case err != nil:
		rep.Failed++
		u.log.Error().Err(err).Str("application_id", id).Msg("reconcile account")
	case n != nil:
		rep.Repaired++
		notifUC.Dispatch(ctx, u.pub, u.log, n)
	}
}
