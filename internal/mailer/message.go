package mailer

import (
	"fmt"
	"strings"
)

// Message is one personalized outbound email. Bodies are plain text;
// personalization has already been applied by the time one of these is
// built.
type Message struct {
	From     string
	FromName string
	To       string
	Subject  string
	TextBody string
}

// Raw renders the message as an RFC-822 payload for raw-submission
// transports.
func (m Message) Raw() []byte {
	from := m.From
	if m.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.FromName, m.From)
	}

	content := strings.Join([]string{
		"From: " + from,
		"To: " + m.To,
		"Subject: " + m.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		m.TextBody,
	}, "\r\n")

	return []byte(content)
}
