package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/you/excursion-booking/internal/domain"
	"github.com/you/excursion-booking/internal/repository"
	"github.com/you/excursion-booking/pkg/auth"
)

const minPasswordLen = 4

// IdentitySvc issues and validates session tokens and owns the user store.
// A user has at most one valid token at a time: logging in stores the fresh
// token and every previously issued one stops validating, even while its
// signature and expiry are still good.
type IdentitySvc struct {
	users   *repository.UserRepo
	signer  *auth.Signer
	timeout time.Duration
}

func NewIdentitySvc(users *repository.UserRepo, signer *auth.Signer, timeout time.Duration) *IdentitySvc {
	return &IdentitySvc{users: users, signer: signer, timeout: timeout}
}

// Login verifies credentials and rotates the user's session token.
func (s *IdentitySvc) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()

	u, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, "", mapTimeout(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrUnauthenticated
	}

	token, err := s.signer.Issue(u.ID, time.Now())
	if err != nil {
		return nil, "", err
	}
	if err := s.users.SaveToken(ctx, u.ID, token); err != nil {
		return nil, "", mapTimeout(err)
	}
	u.CurrentToken = token
	return u, token, nil
}

// Authenticate resolves a bearer token to its user. Beyond signature and
// expiry, the token must exactly match the stored current token; a superseded
// token fails here even though it would still parse.
func (s *IdentitySvc) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	sub, err := s.signer.Parse(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	u, err := s.users.ByID(ctx, sub)
	if err != nil {
		return nil, mapTimeout(err)
	}
	if u.CurrentToken != token {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}

// Authorize checks tenant scope for a write or scoped read. Fails closed.
func (s *IdentitySvc) Authorize(u *domain.User, supplierID int64) error {
	if u.CanAccess(supplierID) {
		return nil
	}
	return domain.ErrForbidden
}

// ChangePassword sets a new password for the session's user. Knowledge of the
// old password is not required.
func (s *IdentitySvc) ChangePassword(ctx context.Context, u *domain.User, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return mapTimeout(s.users.SavePasswordHash(ctx, u.ID, string(hash)))
}

// CreateUser registers a user (superuser surface). A nil supplier id makes a
// platform-level account.
func (s *IdentitySvc) CreateUser(ctx context.Context, email, password string, supplierID *int64, superuser bool) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Email: email, PasswordHash: string(hash), SupplierID: supplierID, IsSuperuser: superuser}
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	if err := s.users.Create(ctx, u); err != nil {
		return nil, mapTimeout(err)
	}
	return u, nil
}

// UpdateUser adjusts a user's tenant scope or superuser flag (superuser
// surface). Email and password travel through their own operations.
func (s *IdentitySvc) UpdateUser(ctx context.Context, id int64, supplierID *int64, superuser *bool) error {
	fields := map[string]any{}
	if supplierID != nil {
		fields["supplier_id"] = *supplierID
	}
	if superuser != nil {
		fields["is_superuser"] = *superuser
	}
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return mapTimeout(s.users.UpdateFields(ctx, id, fields))
}

func (s *IdentitySvc) Users(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	out, err := s.users.List(ctx)
	return out, mapTimeout(err)
}

func (s *IdentitySvc) DeleteUser(ctx context.Context, id int64) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return mapTimeout(s.users.Delete(ctx, id))
}
