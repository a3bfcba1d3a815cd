package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agricredit-backend/internal/access"
	domain "agricredit-backend/internal/domain/profile"
	"agricredit-backend/pkg/id"

	"github.com/rs/zerolog"
)

type Usecase struct {
	repo domain.Repository
	log  zerolog.Logger
}

func NewUsecase(repo domain.Repository, log zerolog.Logger) *Usecase {
	return &Usecase{repo: repo, log: log}
}

// Seed makes sure every catalog permission and every system profile exists
// with its default grants. Safe to run on every start.
func (u *Usecase) Seed(ctx context.Context) error {
	for _, d := range access.Catalog {
		perm := &domain.Permission{ID: id.New(), Module: d.Module, Action: d.Action, Name: d.Name(), Description: d.Description}
		if err := u.repo.EnsurePermission(ctx, perm); err != nil {
			return fmt.Errorf("seed permission %s: %w", d.Name(), err)
		}
	}
	for name, grants := range access.DefaultProfiles {
		perms, err := u.repo.GetPermissionsByNames(ctx, grants)
		if err != nil {
			return err
		}
		p, err := u.repo.GetSystemByName(ctx, name)
		switch {
		case err == nil:
			if err := u.repo.ReplacePermissions(ctx, p, perms); err != nil {
				return fmt.Errorf("seed profile %s: %w", name, err)
			}
		case errors.Is(err, domain.ErrNotFound):
			p = &domain.Profile{ID: id.New(), Name: name, Description: "System profile", IsSystem: true, IsActive: true, Permissions: perms}
			if err := u.repo.Create(ctx, p); err != nil {
				return fmt.Errorf("seed profile %s: %w", name, err)
			}
			u.log.Info().Str("profile", name).Int("permissions", len(perms)).Msg("system profile created")
		default:
			return err
		}
	}
	return nil
}

func (u *Usecase) ListPermissions(ctx context.Context, p *access.Principal) ([]domain.Permission, error) {
	if err := p.Require(access.ProfilesRead); err != nil {
		return nil, err
	}
	return u.repo.ListPermissions(ctx)
}

// List shows system profiles plus the caller's institution profiles;
// unscoped callers see all of them.
func (u *Usecase) List(ctx context.Context, p *access.Principal) ([]domain.Profile, error) {
	if err := p.Require(access.ProfilesRead); err != nil {
		return nil, err
	}
	if p.Unscoped() {
		return u.repo.List(ctx, nil)
	}
	inst := p.InstitutionID
	return u.repo.List(ctx, &inst)
}

// grantable resolves names to permissions the caller itself holds.
func (u *Usecase) grantable(ctx context.Context, p *access.Principal, names []string) ([]domain.Permission, error) {
	clean := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		if !p.Can(n) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPermissionNotOwned, n)
		}
		seen[n] = true
		clean = append(clean, n)
	}
	perms, err := u.repo.GetPermissionsByNames(ctx, clean)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(clean) {
		known := map[string]bool{}
		for _, perm := range perms {
			known[perm.Name] = true
		}
		for _, n := range clean {
			if !known[n] {
				return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPermission, n)
			}
		}
	}
	return perms, nil
}

func (u *Usecase) Create(ctx context.Context, p *access.Principal, in CreateInput) (*domain.Profile, error) {
	if err := p.Require(access.ProfilesCreate); err != nil {
		return nil, err
	}
	perms, err := u.grantable(ctx, p, in.Permissions)
	if err != nil {
		return nil, err
	}
	prof := &domain.Profile{
		ID:          id.New(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    true,
		Permissions: perms,
	}
	if p.InstitutionID != "" {
		inst := p.InstitutionID
		prof.InstitutionID = &inst
	}
	if err := u.repo.Create(ctx, prof); err != nil {
		return nil, err
	}
	u.log.Info().Str("profile_id", prof.ID).Str("institution_id", p.InstitutionID).Msg("profile created")
	return prof, nil
}

// editable loads a custom profile within the caller's scope.
func (u *Usecase) editable(ctx context.Context, p *access.Principal, profileID string) (*domain.Profile, error) {
	prof, err := u.repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if prof.IsSystem {
		return nil, domain.ErrSystemProfile
	}
	if p.Unscoped() {
		return prof, nil
	}
	if prof.InstitutionID == nil || !p.InScope(*prof.InstitutionID) {
		return nil, domain.ErrNotFound
	}
	return prof, nil
}

func (u *Usecase) Update(ctx context.Context, p *access.Principal, profileID string, in UpdateInput) (*domain.Profile, error) {
	if err := p.Require(access.ProfilesUpdate); err != nil {
		return nil, err
	}
	prof, err := u.editable(ctx, p, profileID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		prof.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		prof.Description = *in.Description
	}
	if in.IsActive != nil {
		prof.IsActive = *in.IsActive
	}
	if in.Permissions != nil {
		perms, err := u.grantable(ctx, p, *in.Permissions)
		if err != nil {
			return nil, err
		}
		if err := u.repo.ReplacePermissions(ctx, prof, perms); err != nil {
			return nil, err
		}
		prof.Permissions = perms
	}
	if err := u.repo.Save(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// Delete deactivates a custom profile; users holding it lose its grants.
func (u *Usecase) Delete(ctx context.Context, p *access.Principal, profileID string) error {
	if err := p.Require(access.ProfilesDelete); err != nil {
		return err
	}
	prof, err := u.editable(ctx, p, profileID)
	if err != nil {
		return err
	}
	prof.IsActive = false
	return u.repo.Save(ctx, prof)
}

// Resolve returns the effective permission set of a profile. A nil or
// inactive profile grants nothing.
func (u *Usecase) Resolve(ctx context.Context, profileID *string) (access.Set, error) {
	if profileID == nil || *profileID == "" {
		return access.NewSet(), nil
	}
	names, err := u.repo.PermissionNames(ctx, *profileID)
	if err != nil {
		return nil, err
	}
	return access.NewSet(names...), nil
}

// Assignable returns profileID when the caller may hand it to a user: it is
// active, it is a system profile or belongs to the caller's institution, and
// it grants nothing the caller lacks.
func (u *Usecase) Assignable(ctx context.Context, p *access.Principal, profileID string) (*domain.Profile, error) {
	prof, err := u.repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !prof.IsActive {
		return nil, domain.ErrNotFound
	}
	if p.Unscoped() {
		return prof, nil
	}
	if !prof.IsSystem && (prof.InstitutionID == nil || !p.InScope(*prof.InstitutionID)) {
		return nil, domain.ErrNotFound
	}
	for _, n := range prof.PermissionNames() {
		if !p.Can(n) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPermissionNotOwned, n)
		}
	}
	return prof, nil
}
