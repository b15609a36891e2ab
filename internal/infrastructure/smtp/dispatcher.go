package smtp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/go-signup-verify/internal/config"
	"github.com/go-signup-verify/internal/pkg/clock"
	"github.com/go-signup-verify/internal/pkg/id"
)

// Dispatcher delivers verification codes. It never touches stored codes;
// callers decide what a failed delivery means.
type Dispatcher interface {
	SendVerificationCode(ctx context.Context, to, code, displayName string) error
}

// sender is the part of *gomail.Dialer the dispatcher uses.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailDispatcher struct {
	sender  sender
	from    string
	appName string
	ttl     time.Duration
	clock   clock.Clock
	log     *zap.Logger
}

// NewDispatcher returns an SMTP dispatcher when SMTP_HOST is set, and a
// dispatcher that only logs the code otherwise.
func NewDispatcher(cfg *config.Config, log *zap.Logger) Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("module", "smtp"))
	if cfg.SMTPHost == "" {
		log.Warn("no SMTP configuration found, verification codes will be logged instead of emailed",
			zap.String("hint", "set SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD"))
		return &logDispatcher{log: log}
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUsername
	}
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	d.SSL = cfg.SMTPSecure
	return newMailDispatcher(d, from, cfg.AppName, cfg.VerificationCodeTTL, clock.Real{}, log)
}

func newMailDispatcher(s sender, from, appName string, ttl time.Duration, clk clock.Clock, log *zap.Logger) *mailDispatcher {
	return &mailDispatcher{sender: s, from: from, appName: appName, ttl: ttl, clock: clk, log: log}
}

func (d *mailDispatcher) SendVerificationCode(ctx context.Context, to, code, displayName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := Render(d.appName, code, displayName, d.ttl, d.clock.Now())
	if err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID(d.from))
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	if err := d.sender.DialAndSend(m); err != nil {
		d.log.Error("failed to send verification email", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("send verification email: %w", err)
	}
	d.log.Info("verification email sent", zap.String("to", to))
	return nil
}

// messageID builds an RFC 5322 Message-ID on the sender's domain.
func messageID(from string) string {
	host := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		host = strings.TrimSuffix(from[at+1:], ">")
	}
	return "<" + id.New() + "@" + host + ">"
}

// logDispatcher stands in for SMTP in development.
type logDispatcher struct {
	log *zap.Logger
}

func (d *logDispatcher) SendVerificationCode(_ context.Context, to, code, _ string) error {
	d.log.Info("verification code (SMTP not configured)", zap.String("to", to), zap.String("code", code))
	return nil
}
