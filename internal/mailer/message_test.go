package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageRaw(t *testing.T) {
	msg := Message{
		From:     "alice@example.com",
		To:       "bob@example.com",
		Subject:  "Hello",
		TextBody: "Hi Bob,\n\nSee you soon.",
	}

	raw := string(msg.Raw())
	lines := strings.Split(raw, "\r\n")

	assert.Equal(t, "From: alice@example.com", lines[0])
	assert.Equal(t, "To: bob@example.com", lines[1])
	assert.Equal(t, "Subject: Hello", lines[2])
	assert.Equal(t, "MIME-Version: 1.0", lines[3])
	assert.Equal(t, "Content-Type: text/plain; charset=UTF-8", lines[4])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "Hi Bob,\n\nSee you soon.", strings.Join(lines[6:], "\r\n"))
}

func TestMessageRawWithDisplayName(t *testing.T) {
	msg := Message{
		From:     "alice@example.com",
		FromName: "Alice Smith",
		To:       "bob@example.com",
		Subject:  "Hello",
		TextBody: "Hi",
	}

	assert.Contains(t, string(msg.Raw()), "From: Alice Smith <alice@example.com>")
}
