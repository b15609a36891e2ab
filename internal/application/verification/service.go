package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/go-signup-verify/internal/domain"
	"github.com/go-signup-verify/internal/pkg/validate"
)

type RequestCodeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name" validate:"max=100"`
}

// RequestCodeResult describes the code that was stored. It is returned even
// when delivery fails, since the stored code stays redeemable.
type RequestCodeResult struct {
	Email     string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyCodeResult struct {
	Email string
	// Receipt is a signed token proving Email was verified. Empty when no
	// signer is configured.
	Receipt string
}

type Service interface {
	RequestCode(ctx context.Context, req RequestCodeRequest) (*RequestCodeResult, error)
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (*VerifyCodeResult, error)
	CodeExpiration(ctx context.Context, email string) (time.Duration, error)
}

type codeStore interface {
	Put(identity, code string) domain.VerificationEntry
	Verify(identity, submitted string) error
	TimeRemaining(identity string) (time.Duration, bool)
}

type codeGenerator interface {
	Generate() string
}

type dispatcher interface {
	SendVerificationCode(ctx context.Context, to, code, displayName string) error
}

type receiptSigner interface {
	Sign(email string) (string, error)
}

type service struct {
	store     codeStore
	generator codeGenerator
	mailer    dispatcher
	signer    receiptSigner
	log       *zap.Logger
}

type ServiceDeps struct {
	Store      codeStore
	Generator  codeGenerator
	Dispatcher dispatcher
	// Signer is optional.
	Signer receiptSigner
	Logger *zap.Logger
}

func NewService(deps ServiceDeps) Service {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		store:     deps.Store,
		generator: deps.Generator,
		mailer:    deps.Dispatcher,
		signer:    deps.Signer,
		log:       log.With(zap.String("module", "verification")),
	}
}

func (s *service) RequestCode(ctx context.Context, req RequestCodeRequest) (*RequestCodeResult, error) {
	if err := validate.Email(req.Email); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	email := domain.NormalizeIdentity(req.Email)
	entry := s.store.Put(email, s.generator.Generate())
	res := &RequestCodeResult{
		Email:     email,
		ExpiresAt: entry.ExpiresAt,
		ExpiresIn: entry.ExpiresAt.Sub(entry.IssuedAt),
	}

	if err := s.mailer.SendVerificationCode(ctx, email, entry.Code, strings.TrimSpace(req.Name)); err != nil {
		s.log.Error("verification email not delivered", zap.String("email", email), zap.Error(err))
		return res, fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}
	s.log.Info("verification code sent", zap.String("email", email), zap.Time("expires_at", entry.ExpiresAt))
	return res, nil
}

func (s *service) VerifyCode(ctx context.Context, req VerifyCodeRequest) (*VerifyCodeResult, error) {
	if err := validate.Email(req.Email); err != nil {
		return nil, err
	}
	submitted := strings.TrimSpace(req.Code)
	if submitted == "" {
		return nil, fmt.Errorf("verification code is required: %w", domain.ErrBadRequest)
	}
	email := domain.NormalizeIdentity(req.Email)

	if err := s.store.Verify(email, submitted); err != nil {
		if errors.Is(err, domain.ErrCodeMismatch) {
			s.log.Debug("verification code mismatch", zap.String("email", email))
		}
		return nil, err
	}
	s.log.Info("email verified", zap.String("email", email))

	res := &VerifyCodeResult{Email: email}
	if s.signer == nil {
		return res, nil
	}
	// The code is already consumed; a signing failure still reports success.
	receipt, err := s.signer.Sign(email)
	if err != nil {
		s.log.Error("failed to sign verification receipt", zap.String("email", email), zap.Error(err))
		return res, nil
	}
	res.Receipt = receipt
	return res, nil
}

func (s *service) CodeExpiration(_ context.Context, email string) (time.Duration, error) {
	if err := validate.Email(email); err != nil {
		return 0, err
	}
	d, ok := s.store.TimeRemaining(email)
	if !ok {
		return 0, domain.ErrCodeNotFound
	}
	return d, nil
}
