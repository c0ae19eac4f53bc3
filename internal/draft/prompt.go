package draft

import "fmt"

// Draft modes
const (
	ModeCompose = "compose"
	ModeReply   = "reply"
)

// Request carries the brief for one draft
type Request struct {
	Mode          string
	Tone          string
	Subject       string
	Context       string
	OriginalEmail string
	ReplyContext  string
}

// Defaults applied to blank fields before prompting
const (
	defaultTone          = "professional"
	defaultSubject       = "No Subject"
	defaultContext       = "Please write a default email."
	defaultOriginalEmail = "No original email provided."
	defaultReplyContext  = "Please write a default reply."
)

// BuildPrompt renders the instruction submitted to the text-generation
// backend. Compose drafts are addressed to the literal merge token so
// the body can be personalized per recipient at send time; reply drafts
// embed the original message and the user's key points.
func BuildPrompt(req Request) string {
	tone := req.Tone
	if tone == "" {
		tone = defaultTone
	}

	if req.Mode == ModeReply {
		original := req.OriginalEmail
		if original == "" {
			original = defaultOriginalEmail
		}
		replyContext := req.ReplyContext
		if replyContext == "" {
			replyContext = defaultReplyContext
		}
		return fmt.Sprintf(`You are an email assistant. A user has received the following email:
--- ORIGINAL EMAIL ---
%s
--- END ORIGINAL EMAIL ---

The user wants to reply with the following key points, in a %s tone:
--- USER'S REPLY CONTEXT ---
%s
--- END USER'S REPLY CONTEXT ---

Please generate a %s reply email.
Generate only the body of the reply.
Do not include the "Subject:" line.
Start directly with a salutation.`, original, tone, replyContext, tone)
	}

	subject := req.Subject
	if subject == "" {
		subject = defaultSubject
	}
	context := req.Context
	if context == "" {
		context = defaultContext
	}
	return fmt.Sprintf(`Write a %s email to [Name].
The subject of the email is: "%s".
The core message or context is: "%s".
Please generate only the body of the email.
Start directly with the salutation.`, tone, subject, context)
}
