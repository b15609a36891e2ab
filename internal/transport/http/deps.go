package http

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/go-signup-verify/internal/domain"
	jwtinfra "github.com/go-signup-verify/internal/infrastructure/jwt"
	"github.com/go-signup-verify/internal/infrastructure/smtp"
)

// CodeStore is the minimal interface the router requires from a verification code store.
type CodeStore interface {
	Put(identity, code string) domain.VerificationEntry
	Verify(identity, submitted string) error
	TimeRemaining(identity string) (time.Duration, bool)
	Len() int
}

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CodeGenerator produces fresh verification codes.
type CodeGenerator interface {
	Generate() string
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Codes      CodeStore
	Accounts   AccountRepository
	Generator  CodeGenerator
	Dispatcher smtp.Dispatcher
	// JWTProvider is optional. Without it verification succeeds without a
	// receipt and signup requires the code itself.
	JWTProvider *jwtinfra.Provider
	Logger      *zap.Logger
}
