// Package interpreter turns free-text purchase messages into structured
// expense drafts by calling an OpenAI-compatible chat completion endpoint
// (Groq in production). Failures never escape: callers always receive a
// well-formed Interpretation, falling back to the unknown category.
package interpreter

import (
	"context"

	"github.com/felipe-tno/moneymate/internal/core"
)

// Interpreter is the port consumed by the conversation service.
type Interpreter interface {
	Interpret(ctx context.Context, texto string) core.Interpretation
}

// Fallback replies shown when the model call or its output is unusable.
const (
	fallbackParseReply = "Não consegui processar a mensagem."
	fallbackAPIReply   = "Erro ao processar gasto."
)

// fallback builds the degraded result: the original text as description, no
// amount, unknown category. The state machine will hold it for confirmation.
func fallback(texto, reply string) core.Interpretation {
	return core.Interpretation{
		Description: texto,
		Amount:      core.Money{},
		Category:    core.CategoryUnknown,
		Reply:       reply,
	}
}
