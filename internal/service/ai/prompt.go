package ai

import (
	"fmt"

	"github.com/ashstar-ai/mainframe/internal/model/persona"
)

// DefaultInstruction stands in for personas missing from the catalog.
const DefaultInstruction = "You are a helpful assistant."

// premiumClause is appended for premium-tier users. The trailing mood tag it
// requests is what the client's tag-stripping and sticker rendering key on.
const premiumClause = " [PREMIUM] Provide advanced insights with richer detail, and end your reply with exactly one mood tag: {{HAPPY}}, {{WARNING}} or {{SUCCESS}}."

// Builder composes the persona system instruction and the user message into
// a single prompt. Pure and deterministic.
type Builder struct {
	personas persona.Store
}

// NewBuilder returns a Builder reading instructions from the given catalog.
func NewBuilder(personas persona.Store) *Builder {
	return &Builder{personas: personas}
}

// Build assembles the prompt. The `<system>\n\nUser: <msg>\nAI:` shape is
// load-bearing: downstream tag handling expects replies anchored to it.
func (b *Builder) Build(personaID, userMessage string, premium bool) string {
	instruction := DefaultInstruction
	if p, ok := b.personas.FindByID(personaID); ok {
		instruction = p.SystemInstruction
	}

	if premium {
		instruction += premiumClause
	}

	return fmt.Sprintf("%s\n\nUser: %s\nAI:", instruction, userMessage)
}
