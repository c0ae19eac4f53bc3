package mailer

import (
	"context"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/draftmerge/draftmerge/internal/config"
	"github.com/draftmerge/draftmerge/internal/logger"
)

// SMTPSender delivers a batch of personalized messages through the
// operator's relay account. One authenticated connection is opened per
// batch, reused for every message, and closed when the batch ends; a
// connection or send failure fails the whole batch.
type SMTPSender struct {
	log *logger.Logger

	host     string
	port     int
	user     string
	pass     string
	insecure bool

	timeout time.Duration
}

// NewSMTPSender creates the fixed-credential transport
func NewSMTPSender(cfg config.SMTPConfig, log *logger.Logger) *SMTPSender {
	return &SMTPSender{
		log:      log.WithComponent("smtp_sender"),
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.Username,
		pass:     cfg.Password,
		insecure: cfg.Insecure,
		timeout:  cfg.Timeout,
	}
}

// From returns the effective sender address (the operator account)
func (s *SMTPSender) From() string {
	return s.user
}

// SendBatch sends each message as a separate transmission over a single
// relay connection. It is all-or-nothing from the caller's perspective:
// one error is returned and no per-recipient accounting is kept.
func (s *SMTPSender) SendBatch(ctx context.Context, msgs []Message) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Build everything up front so address errors surface before dialing
	outgoing := make([]*mail.Msg, 0, len(msgs))
	for _, msg := range msgs {
		m := mail.NewMsg()
		if err := m.From(s.user); err != nil {
			return fmt.Errorf("smtp: invalid from address: %w", err)
		}
		if err := m.To(msg.To); err != nil {
			return fmt.Errorf("smtp: invalid recipient %q: %w", msg.To, err)
		}
		m.Subject(msg.Subject)
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
		outgoing = append(outgoing, m)
	}

	tlsPolicy := mail.TLSMandatory
	if s.insecure {
		tlsPolicy = mail.TLSOpportunistic
	}
	c, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithTLSPolicy(tlsPolicy),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.user),
		mail.WithPassword(s.pass),
	)
	if err != nil {
		return fmt.Errorf("smtp: client init failed: %w", err)
	}

	if err := c.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp: connect to %s:%d failed: %w", s.host, s.port, err)
	}
	defer c.Close()

	for _, m := range outgoing {
		if err := c.Send(m); err != nil {
			return fmt.Errorf("smtp: send failed: %w", err)
		}
	}

	s.log.Info().Int("count", len(outgoing)).Str("host", s.host).Msg("batch sent")
	return nil
}
