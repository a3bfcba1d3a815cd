package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agricredit-backend/internal/access"
	"agricredit-backend/internal/domain/profile"
	domain "agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/security"
	"agricredit-backend/pkg/id"

	"github.com/rs/zerolog"
)

// ProfileGranter decides which profiles a caller may hand out.
type ProfileGranter interface {
	Assignable(ctx context.Context, p *access.Principal, profileID string) (*profile.Profile, error)
}

type Usecase struct {
	users    domain.Repository
	profiles profile.Repository
	granter  ProfileGranter
	log      zerolog.Logger
}

func NewUsecase(users domain.Repository, profiles profile.Repository, granter ProfileGranter, log zerolog.Logger) *Usecase {
	return &Usecase{users: users, profiles: profiles, granter: granter, log: log}
}

// Create adds a user on behalf of an administrator or, for institutions,
// a staff member attached to the caller's institution.
func (u *Usecase) Create(ctx context.Context, p *access.Principal, in CreateInput) (*domain.User, error) {
	if err := p.Require(access.UsersCreate); err != nil {
		return nil, err
	}
	usr := &domain.User{
		ID:         id.New(),
		Name:       strings.TrimSpace(in.Name),
		NationalID: strings.TrimSpace(in.NationalID),
		Phone:      strings.TrimSpace(in.Phone),
		Email:      normalizeEmail(in.Email),
		UserType:   in.UserType,
		IsActive:   true,
	}
	if p.Unscoped() {
		if !usr.UserType.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrType, in.UserType)
		}
	} else {
		if p.InstitutionID == "" {
			return nil, access.ErrForbidden
		}
		inst := p.InstitutionID
		usr.UserType = domain.TypeFinancialInstitution
		usr.ParentInstitutionID = &inst
	}

	if in.ProfileID != nil && *in.ProfileID != "" {
		prof, err := u.granter.Assignable(ctx, p, *in.ProfileID)
		if err != nil {
			return nil, err
		}
		usr.ProfileID = &prof.ID
	} else {
		prof, err := u.profiles.GetSystemByName(ctx, access.DefaultProfileFor(usr.UserType))
		if err != nil {
			return nil, fmt.Errorf("default profile: %w", err)
		}
		if _, err := u.granter.Assignable(ctx, p, prof.ID); err != nil {
			return nil, err
		}
		usr.ProfileID = &prof.ID
	}

	exists, err := u.users.ExistsByIdentity(ctx, usr.NationalID, usr.Phone, usr.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	if usr.PasswordHash, err = security.HashPassword(in.Password); err != nil {
		return nil, err
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", usr.ID).Str("created_by", p.UserID).Str("user_type", string(usr.UserType)).Msg("user created")
	return usr, nil
}

func (u *Usecase) List(ctx context.Context, p *access.Principal) ([]domain.User, error) {
	if err := p.Require(access.UsersRead); err != nil {
		return nil, err
	}
	if p.Unscoped() {
		return u.users.List(ctx)
	}
	if p.InstitutionID == "" {
		return nil, access.ErrForbidden
	}
	return u.users.ListByInstitution(ctx, p.InstitutionID)
}

// managed loads a user the caller administers. Users outside the caller's
// institution read as not found.
func (u *Usecase) managed(ctx context.Context, p *access.Principal, userID string) (*domain.User, error) {
	if err := p.Require(access.UsersUpdate); err != nil {
		return nil, err
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !p.Unscoped() && (usr.InstitutionID() == "" || !p.InScope(usr.InstitutionID())) {
		return nil, domain.ErrNotFound
	}
	return usr, nil
}

func (u *Usecase) AssignProfile(ctx context.Context, p *access.Principal, userID, profileID string) (*domain.User, error) {
	usr, err := u.managed(ctx, p, userID)
	if err != nil {
		return nil, err
	}
	prof, err := u.granter.Assignable(ctx, p, profileID)
	if err != nil {
		return nil, err
	}
	if err := u.users.UpdateProfile(ctx, usr.ID, prof.ID); err != nil {
		return nil, err
	}
	usr.ProfileID = &prof.ID
	u.log.Info().Str("user_id", usr.ID).Str("profile_id", prof.ID).Str("by", p.UserID).Msg("profile assigned")
	return usr, nil
}

// Deactivate is a soft delete; the user can no longer sign in.
func (u *Usecase) Deactivate(ctx context.Context, p *access.Principal, userID string) (*domain.User, error) {
	if userID == p.UserID {
		return nil, domain.ErrSelf
	}
	usr, err := u.managed(ctx, p, userID)
	if err != nil {
		return nil, err
	}
	if err := u.users.SetActive(ctx, usr.ID, false); err != nil {
		return nil, err
	}
	usr.IsActive = false
	u.log.Info().Str("user_id", usr.ID).Str("by", p.UserID).Msg("user deactivated")
	return usr, nil
}

// SeedAdmin creates the bootstrap administrator unless a user with the same
// phone already exists. Requires seeded system profiles.
func (u *Usecase) SeedAdmin(ctx context.Context, in AdminSeed) error {
	if in.Phone == "" || in.Password == "" {
		return nil
	}
	_, err := u.users.GetByLogin(ctx, in.Phone)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	prof, err := u.profiles.GetSystemByName(ctx, profile.Administrator)
	if err != nil {
		return fmt.Errorf("administrator profile: %w", err)
	}
	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return err
	}
	nationalID := in.NationalID
	if nationalID == "" {
		nationalID = "ADMIN-" + in.Phone
	}
	usr := &domain.User{
		ID:           id.New(),
		Name:         in.Name,
		NationalID:   nationalID,
		Phone:        in.Phone,
		Email:        normalizeEmail(&in.Email),
		PasswordHash: hash,
		UserType:     domain.TypeAdmin,
		ProfileID:    &prof.ID,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return err
	}
	u.log.Info().Str("user_id", usr.ID).Msg("administrator seeded")
	return nil
}

func normalizeEmail(e *string) *string {
	if e == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*e))
	if v == "" {
		return nil
	}
	return &v
}
