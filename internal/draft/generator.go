package draft

import (
	"context"
	"errors"
	"strings"

	"github.com/draftmerge/draftmerge/internal/logger"
)

// TextModel generates text from a prompt. The production implementation
// binds the Gemini API; tests and degraded mode substitute fakes.
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FallbackBody is returned whenever the backend fails, so the caller
// always receives a usable draft.
const FallbackBody = "Dear Recipient,\n\n" +
	"This is a sample email generated because the AI service failed.\n\n" +
	"Best regards,\n[Your Name]"

var (
	errEmptyResponse = errors.New("received empty response from model (possibly due to safety filters)")
	errNoModel       = errors.New("text model is not configured")
)

// Result distinguishes a generated draft from the canned fallback.
// Warning carries the failure reason when Fallback is set.
type Result struct {
	Body     string
	Fallback bool
	Warning  string
}

// Generator drafts email bodies from a brief. Any backend failure,
// including an empty response, degrades to FallbackBody rather than an
// error: the caller must always get a body it can show.
type Generator struct {
	model TextModel
	log   *logger.Logger
}

// NewGenerator creates a Generator. A nil model is allowed and yields
// fallback drafts for every request.
func NewGenerator(model TextModel, log *logger.Logger) *Generator {
	return &Generator{
		model: model,
		log:   log.WithComponent("draft_generator"),
	}
}

// Generate produces a draft body for the request
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	prompt := BuildPrompt(req)

	var (
		text string
		err  error
	)
	if g.model == nil {
		err = errNoModel
	} else {
		text, err = g.model.Generate(ctx, prompt)
	}
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = errEmptyResponse
		}
	}
	if err != nil {
		g.log.Warn().Err(err).Str("mode", req.Mode).Msg("draft generation failed, serving fallback")
		return Result{
			Body:     FallbackBody,
			Fallback: true,
			Warning:  "AI Error: " + err.Error(),
		}
	}

	return Result{Body: text}
}
