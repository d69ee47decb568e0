package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/config"
)

var (
	// ErrNotConfigured is returned when no SMTP host or sender is set.
	ErrNotConfigured = errors.New("mail transport not configured")
	// ErrNoRecipient is returned for an empty reporter address.
	ErrNoRecipient = errors.New("notice recipient is empty")
)

// Transport delivers one composed message.
type Transport interface {
	Name() string
	Send(ctx context.Context, msg *mail.Msg) error
}

// Mailer sends clarification notices, trying each transport in order.
type Mailer struct {
	mail       config.MailConfig
	notice     config.NoticeConfig
	transports []Transport
	logger     *zap.Logger
}

// New builds a mailer with an implicit-TLS transport and a STARTTLS fallback.
func New(mailCfg config.MailConfig, noticeCfg config.NoticeConfig, logger *zap.Logger) *Mailer {
	var transports []Transport
	if mailCfg.Enabled() {
		transports = []Transport{
			newSMTPTransport("ssl", mailCfg, mailCfg.SSLPort, mail.WithSSL()),
			newSMTPTransport("starttls", mailCfg, mailCfg.StartTLSPort, mail.WithTLSPolicy(mail.TLSMandatory)),
		}
	}
	return NewWithTransports(mailCfg, noticeCfg, logger, transports...)
}

// NewWithTransports builds a mailer over explicit transports.
func NewWithTransports(mailCfg config.MailConfig, noticeCfg config.NoticeConfig, logger *zap.Logger, transports ...Transport) *Mailer {
	return &Mailer{mail: mailCfg, notice: noticeCfg, transports: transports, logger: logger}
}

// Enabled reports whether notices can be sent at all.
func (m *Mailer) Enabled() bool {
	return m != nil && len(m.transports) > 0 && m.mail.From != ""
}

// SendClarification asks the reporter at address to resubmit with more detail.
func (m *Mailer) SendClarification(ctx context.Context, address string) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrNoRecipient
	}

	msg, err := m.compose(address)
	if err != nil {
		return err
	}

	var errs []error
	for _, t := range m.transports {
		attemptCtx, cancel := m.attemptContext(ctx)
		err := t.Send(attemptCtx, msg)
		cancel()
		if err == nil {
			m.logger.Info("clarification notice sent", zap.String("to", address), zap.String("transport", t.Name()))
			return nil
		}
		m.logger.Warn("notice transport failed", zap.String("transport", t.Name()), zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
	}
	return errors.Join(errs...)
}

func (m *Mailer) compose(address string) (*mail.Msg, error) {
	text, html, err := render(noticeData{
		Name:       DisplayName(address),
		FormLink:   m.notice.FormLink,
		SenderName: m.notice.SenderName,
	})
	if err != nil {
		return nil, fmt.Errorf("render notice: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.notice.SenderName, m.mail.From); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(address); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(m.notice.Subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)
	return msg, nil
}

func (m *Mailer) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if timeout := m.mail.Timeout(); timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

type smtpTransport struct {
	name string
	host string
	opts []mail.Option
}

func newSMTPTransport(name string, cfg config.MailConfig, port int, tlsOpt mail.Option) *smtpTransport {
	opts := []mail.Option{mail.WithPort(port), tlsOpt}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password))
	}
	if timeout := cfg.Timeout(); timeout > 0 {
		opts = append(opts, mail.WithTimeout(timeout))
	} else {
		opts = append(opts, mail.WithTimeout(20*time.Second))
	}
	return &smtpTransport{name: name, host: cfg.Host, opts: opts}
}

func (t *smtpTransport) Name() string {
	return t.name
}

func (t *smtpTransport) Send(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(t.host, t.opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
