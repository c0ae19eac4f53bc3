package service

import (
	"context"
	"strings"

	"github.com/draftmerge/draftmerge/internal/logger"
	"github.com/draftmerge/draftmerge/internal/mailer"
	"github.com/draftmerge/draftmerge/internal/merge"
	"github.com/draftmerge/draftmerge/internal/model"
	"github.com/draftmerge/draftmerge/internal/session"
)

// BatchMailer delivers a prepared batch over one relay connection.
// *mailer.SMTPSender is the production implementation.
type BatchMailer interface {
	From() string
	SendBatch(ctx context.Context, msgs []mailer.Message) error
}

// RawSender submits one raw RFC-822 message through the user's own
// account. identity.Provider satisfies it.
type RawSender interface {
	SendMessage(ctx context.Context, creds *model.Credentials, raw []byte) error
}

// BulkRequest is the payload of both send endpoints
type BulkRequest struct {
	Recipients []model.Recipient `json:"recipients"`
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
}

// SendService orchestrates templated bulk sends: validate, merge the
// template per recipient, dispatch through the chosen transport. It
// keeps no per-recipient delivery accounting; callers get one overall
// result.
type SendService struct {
	smtp BatchMailer // nil when operator credentials are absent
	raw  RawSender
	log  *logger.Logger
}

// NewSendService creates the bulk send orchestrator
func NewSendService(smtp BatchMailer, raw RawSender, log *logger.Logger) *SendService {
	return &SendService{
		smtp: smtp,
		raw:  raw,
		log:  log.WithComponent("send_service"),
	}
}

// SendSMTP dispatches the batch through the operator's relay account
// and returns the effective sender address. Missing operator
// credentials fail fast before any validation or send attempt.
func (s *SendService) SendSMTP(ctx context.Context, req BulkRequest) (string, error) {
	if s.smtp == nil {
		return "", ErrSMTPNotConfigured
	}
	if err := validate(req); err != nil {
		return "", err
	}

	from := s.smtp.From()
	msgs := personalize(from, "", req)
	if err := s.smtp.SendBatch(ctx, msgs); err != nil {
		return "", err
	}

	s.log.Info().Int("recipients", len(msgs)).Str("sender", from).Msg("smtp bulk send complete")
	return from, nil
}

// SendGmail dispatches each message independently through the user's
// own account, From set to the authenticated address. The first
// provider error aborts the loop; remaining recipients are not
// attempted.
func (s *SendService) SendGmail(ctx context.Context, sess *session.Data, req BulkRequest) (string, error) {
	if !sess.LoggedIn() {
		return "", ErrNotAuthenticated
	}
	if err := validate(req); err != nil {
		return "", err
	}

	from := sess.User.Email
	msgs := personalize(from, sess.User.Name, req)
	for _, m := range msgs {
		if err := s.raw.SendMessage(ctx, sess.Credentials, m.Raw()); err != nil {
			return "", err
		}
	}

	s.log.Info().Int("recipients", len(msgs)).Str("sender", from).Msg("gmail bulk send complete")
	return from, nil
}

func validate(req BulkRequest) error {
	if len(req.Recipients) == 0 {
		return ErrNoRecipients
	}
	if req.Subject == "" {
		return ErrMissingSubject
	}
	if req.Body == "" {
		return ErrMissingBody
	}
	return nil
}

// personalize builds one message per usable recipient, preserving
// request order. Recipients without an email address are skipped
// silently.
func personalize(from, fromName string, req BulkRequest) []mailer.Message {
	msgs := make([]mailer.Message, 0, len(req.Recipients))
	for _, rcpt := range req.Recipients {
		email := strings.TrimSpace(rcpt.Email)
		if email == "" {
			continue
		}
		msgs = append(msgs, mailer.Message{
			From:     from,
			FromName: fromName,
			To:       email,
			Subject:  req.Subject,
			TextBody: merge.Personalize(req.Body, rcpt.Name),
		})
	}
	return msgs
}
