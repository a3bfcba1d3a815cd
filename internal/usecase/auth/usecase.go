package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agricredit-backend/internal/access"
	"agricredit-backend/internal/domain/profile"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/security"
	"agricredit-backend/pkg/id"

	"github.com/rs/zerolog"
)

type Usecase struct {
	users    user.Repository
	profiles profile.Repository
	tokens   *security.TokenManager
	log      zerolog.Logger
}

func NewUsecase(users user.Repository, profiles profile.Repository, tokens *security.TokenManager, log zerolog.Logger) *Usecase {
	return &Usecase{users: users, profiles: profiles, tokens: tokens, log: log}
}

// Register self-registers an applicant or a financial institution and
// returns a signed-in session.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	if !in.UserType.IsApplicant() && in.UserType != user.TypeFinancialInstitution {
		return nil, fmt.Errorf("%w: %q", user.ErrType, in.UserType)
	}
	email := normalizeEmail(in.Email)
	exists, err := u.users.ExistsByIdentity(ctx, in.NationalID, in.Phone, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrDuplicate
	}

	prof, err := u.profiles.GetSystemByName(ctx, access.DefaultProfileFor(in.UserType))
	if err != nil {
		return nil, fmt.Errorf("default profile: %w", err)
	}
	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	usr := &user.User{
		ID:           id.New(),
		Name:         strings.TrimSpace(in.Name),
		NationalID:   strings.TrimSpace(in.NationalID),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        email,
		PasswordHash: hash,
		UserType:     in.UserType,
		ProfileID:    &prof.ID,
		IsActive:     true,
	}
	// the unique indexes catch a concurrent registration
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", usr.ID).Str("user_type", string(usr.UserType)).Msg("user registered")
	return u.session(usr)
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*Result, error) {
	login := strings.TrimSpace(in.Login)
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}
	usr, err := u.users.GetByLogin(ctx, login)
	if errors.Is(err, user.ErrNotFound) {
		return nil, security.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := security.CheckPassword(usr.PasswordHash, in.Password); err != nil {
		u.log.Warn().Str("user_id", usr.ID).Msg("login failed")
		return nil, err
	}
	if !usr.IsActive {
		return nil, user.ErrInactive
	}
	return u.session(usr)
}

func (u *Usecase) session(usr *user.User) (*Result, error) {
	tok, exp, err := u.tokens.Generate(usr.ID, string(usr.UserType))
	if err != nil {
		return nil, err
	}
	return &Result{User: usr, Token: tok, ExpiresAt: exp}, nil
}

// Authenticate turns a bearer token into the request principal. Permissions
// are loaded fresh so profile changes apply to live sessions.
func (u *Usecase) Authenticate(ctx context.Context, token string) (*access.Principal, error) {
	claims, err := u.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	usr, err := u.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, security.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !usr.IsActive {
		return nil, user.ErrInactive
	}
	var names []string
	if usr.ProfileID != nil {
		if names, err = u.profiles.PermissionNames(ctx, *usr.ProfileID); err != nil {
			return nil, err
		}
	}
	return &access.Principal{
		UserID:        usr.ID,
		UserType:      usr.UserType,
		InstitutionID: usr.InstitutionID(),
		Permissions:   access.NewSet(names...),
	}, nil
}

func (u *Usecase) Me(ctx context.Context, p *access.Principal) (*Me, error) {
	usr, err := u.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &Me{User: usr, Permissions: p.Permissions.Names()}, nil
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
