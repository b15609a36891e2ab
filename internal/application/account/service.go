package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/go-signup-verify/internal/domain"
	"github.com/go-signup-verify/internal/pkg/id"
	"github.com/go-signup-verify/internal/pkg/validate"
)

// SignupInput carries the signup form plus the email proven by a verification
// receipt, if the caller presented one.
type SignupInput struct {
	domain.SignupRequest
	VerifiedEmail string
}

type Service interface {
	Signup(ctx context.Context, in SignupInput) (*domain.Account, error)
}

type accountStore interface {
	Create(ctx context.Context, a *domain.Account) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type codeVerifier interface {
	Verify(identity, submitted string) error
}

type service struct {
	repo  accountStore
	codes codeVerifier
	now   func() time.Time
	log   *zap.Logger
}

type ServiceDeps struct {
	AccountRepo accountStore
	Codes       codeVerifier
	Now         func() time.Time
	Logger      *zap.Logger
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		repo:  deps.AccountRepo,
		codes: deps.Codes,
		now:   now,
		log:   log.With(zap.String("module", "account")),
	}
}

// Signup creates an account once the email is proven, either by a receipt
// whose email matches or by consuming a verification code. Checks that can
// fail without side effects run before the code is consumed.
func (s *service) Signup(ctx context.Context, in SignupInput) (*domain.Account, error) {
	if err := validate.Struct(in.SignupRequest); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	if check := validate.Password(in.Password); !check.Valid {
		return nil, fmt.Errorf("%s: %w", strings.Join(check.Errors, "; "), domain.ErrBadRequest)
	}
	email := domain.NormalizeIdentity(in.Email)

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	if err := s.proveEmail(email, in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &domain.Account{
		ID:            id.New(),
		Email:         email,
		Name:          strings.TrimSpace(in.Name),
		PasswordHash:  string(hash),
		EmailVerified: true,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("account created", zap.String("account_id", a.ID), zap.String("email", email))
	return a, nil
}

func (s *service) proveEmail(email string, in SignupInput) error {
	if in.VerifiedEmail != "" {
		if domain.NormalizeIdentity(in.VerifiedEmail) != email {
			return fmt.Errorf("verification receipt is for a different email: %w", domain.ErrUnauthorized)
		}
		return nil
	}
	if in.VerificationCode == "" {
		return fmt.Errorf("please verify your email first: %w", domain.ErrUnauthorized)
	}
	return s.codes.Verify(email, in.VerificationCode)
}
