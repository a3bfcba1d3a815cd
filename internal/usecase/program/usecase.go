package program

import (
	"context"
	"strings"

	"agricredit-backend/internal/access"
	domain "agricredit-backend/internal/domain/program"
	"agricredit-backend/pkg/id"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Usecase struct {
	repo          domain.Repository
	defaultEffort decimal.Decimal
	log           zerolog.Logger
}

func NewUsecase(repo domain.Repository, defaultEffort decimal.Decimal, log zerolog.Logger) *Usecase {
	return &Usecase{repo: repo, defaultEffort: defaultEffort, log: log}
}

func (u *Usecase) Create(ctx context.Context, p *access.Principal, in CreateInput) (*domain.Program, error) {
	if err := p.Require(access.ProgramsCreate); err != nil {
		return nil, err
	}
	owner := p.InstitutionID
	if p.Unscoped() && in.InstitutionID != "" {
		owner = in.InstitutionID
	}
	if owner == "" {
		return nil, domain.ErrNotOwner
	}

	prog := &domain.Program{
		ID:            id.New(),
		InstitutionID: owner,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		MinAmount:     in.MinAmount,
		MaxAmount:     in.MaxAmount,
		MinTermMonths: in.MinTermMonths,
		MaxTermMonths: in.MaxTermMonths,
		InterestRate:  in.InterestRate,
		MaxEffortRate: in.MaxEffortRate,
		ProcessingFee: in.ProcessingFee,
		IsActive:      true,
	}
	if !prog.MaxEffortRate.IsPositive() {
		prog.MaxEffortRate = u.defaultEffort
	}
	if err := prog.CheckLimits(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, prog); err != nil {
		return nil, err
	}
	u.log.Info().Str("program_id", prog.ID).Str("institution_id", owner).Msg("credit program created")
	return prog, nil
}

// owned loads a program the caller may edit. Programs of other institutions
// are reported as ErrNotOwner.
func (u *Usecase) owned(ctx context.Context, p *access.Principal, programID string) (*domain.Program, error) {
	if err := p.Require(access.ProgramsUpdate); err != nil {
		return nil, err
	}
	prog, err := u.repo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !p.InScope(prog.InstitutionID) {
		return nil, domain.ErrNotOwner
	}
	return prog, nil
}

func (u *Usecase) Update(ctx context.Context, p *access.Principal, programID string, in UpdateInput) (*domain.Program, error) {
	prog, err := u.owned(ctx, p, programID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		prog.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		prog.Description = *in.Description
	}
	if in.MinAmount != nil {
		prog.MinAmount = *in.MinAmount
	}
	if in.MaxAmount != nil {
		prog.MaxAmount = *in.MaxAmount
	}
	if in.MinTermMonths != nil {
		prog.MinTermMonths = *in.MinTermMonths
	}
	if in.MaxTermMonths != nil {
		prog.MaxTermMonths = *in.MaxTermMonths
	}
	if in.InterestRate != nil {
		prog.InterestRate = *in.InterestRate
	}
	if in.MaxEffortRate != nil {
		prog.MaxEffortRate = *in.MaxEffortRate
	}
	if in.ProcessingFee != nil {
		prog.ProcessingFee = *in.ProcessingFee
	}
	if err := prog.CheckLimits(); err != nil {
		return nil, err
	}
	if err := u.repo.Save(ctx, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// Toggle flips IsActive. Existing applications are unaffected.
func (u *Usecase) Toggle(ctx context.Context, p *access.Principal, programID string) (*domain.Program, error) {
	prog, err := u.owned(ctx, p, programID)
	if err != nil {
		return nil, err
	}
	prog.IsActive = !prog.IsActive
	if err := u.repo.Save(ctx, prog); err != nil {
		return nil, err
	}
	u.log.Info().Str("program_id", prog.ID).Bool("active", prog.IsActive).Msg("credit program toggled")
	return prog, nil
}

// ListActive is the public catalog.
func (u *Usecase) ListActive(ctx context.Context) ([]domain.Program, error) {
	return u.repo.ListActive(ctx)
}

func (u *Usecase) ListMine(ctx context.Context, p *access.Principal) ([]domain.Program, error) {
	if err := p.Require(access.ProgramsRead); err != nil {
		return nil, err
	}
	if p.InstitutionID == "" {
		return nil, domain.ErrNotOwner
	}
	return u.repo.ListByInstitution(ctx, p.InstitutionID)
}

// Get hides inactive programs from everybody but their owner.
func (u *Usecase) Get(ctx context.Context, p *access.Principal, programID string) (*domain.Program, error) {
	prog, err := u.repo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !prog.IsActive && (p == nil || !p.InScope(prog.InstitutionID)) {
		return nil, domain.ErrNotFound
	}
	return prog, nil
}
