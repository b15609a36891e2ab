package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/go-signup-verify/internal/application/account"
	"github.com/go-signup-verify/internal/application/verification"
	"github.com/go-signup-verify/internal/config"
	"github.com/go-signup-verify/internal/transport/http/handler"
	appmiddleware "github.com/go-signup-verify/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router. ctx bounds background
// work started for the router, such as rate-limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	receiptMw := func(next http.Handler) http.Handler { return next }
	if deps.JWTProvider != nil {
		receiptMw = appmiddleware.Receipt(deps.JWTProvider)
	}

	// Off unless RATE_LIMIT_RPS is set; applied to endpoints that send mail or
	// consume codes.
	sensitiveRL := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimitRPS > 0 {
		sensitiveRL = appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst).Limit
	}

	vdeps := verification.ServiceDeps{
		Store:      deps.Codes,
		Generator:  deps.Generator,
		Dispatcher: deps.Dispatcher,
		Logger:     log,
	}
	if deps.JWTProvider != nil {
		vdeps.Signer = deps.JWTProvider
	}
	verificationSvc := verification.NewService(vdeps)
	accountSvc := account.NewService(account.ServiceDeps{
		AccountRepo: deps.Accounts,
		Codes:       deps.Codes,
		Logger:      log,
	})

	healthH := handler.NewHealthHandler(deps.Codes.Len)
	verificationH := handler.NewVerificationHandler(verificationSvc)
	passwordH := handler.NewPasswordHandler()
	signupH := handler.NewSignupHandler(accountSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL).Post("/verification/send", verificationH.Send)
		r.With(sensitiveRL).Post("/verification/verify", verificationH.Verify)
		r.Get("/verification/expiration", verificationH.Expiration)

		r.Get("/password-requirements", passwordH.Requirements)
		r.Post("/password/check", passwordH.Check)

		r.With(sensitiveRL, receiptMw).Post("/signup", signupH.Signup)
	})

	return r
}
