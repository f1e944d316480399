package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/felipe-tno/moneymate/internal/core"
	"github.com/felipe-tno/moneymate/internal/log"
)

const promptTemplate = `Você é um assistente financeiro inteligente que interpreta mensagens de gasto em português
e transforma em dados estruturados. Seu papel é identificar a descrição, o valor e a
categoria mais apropriada, mas **só confirmar o gasto se tiver certeza**.

Formato de resposta JSON (apenas JSON):
{
    "descricao": "<descrição do gasto>",
    "valor": <valor numérico>,
    "categoria": "<categoria: transporte, alimentacao, saude, entretenimento, lazer, moradia ou outros>",
    "resposta_usuario": "<mensagem para o usuário>"
}

Regras importantes:
1. Se a categoria estiver clara, responda com "Gasto computado ✅" e a categoria correta.
2. Se houver dúvida entre duas categorias (ex: "jantar com amigos" → alimentacao ou lazer),
   pergunte ao usuário qual ele prefere: "Esse gasto se encaixa melhor em alimentação ou lazer?"
3. Se o gasto for muito genérico ("gastei 50", "comprei algo"), defina categoria como "desconhecido"
   e responda: "Não consegui identificar a categoria, você poderia informar?"
4. **Nunca gere um valor ou categoria fictícia.** Se não tiver certeza, pergunte.

Mensagem do usuário: "%s"`

// completionClient is the slice of the OpenAI client the interpreter needs;
// *openai.Client satisfies it, tests substitute fakes.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Groq interprets messages through Groq's OpenAI-compatible API with
// deterministic decoding.
type Groq struct {
	client completionClient
	model  string
	logger *log.Logger
}

// Config carries the Groq connection settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewGroq(cfg Config, logger *log.Logger) *Groq {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Groq{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger.WithComponent(log.ComponentInterpreter),
	}
}

// modelResult mirrors the JSON contract requested in the prompt.
type modelResult struct {
	Descricao       string  `json:"descricao"`
	Valor           float64 `json:"valor"`
	Categoria       string  `json:"categoria"`
	RespostaUsuario string  `json:"resposta_usuario"`
}

// Interpret sends the message to the model and parses the structured reply.
// API failures and unparseable output degrade to the fallback result; the
// caller never sees an error.
func (g *Groq) Interpret(ctx context.Context, texto string) core.Interpretation {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, texto)},
		},
		// A literal 0 is dropped by the client's omitempty tag and the API
		// falls back to its default. The smallest positive float survives
		// marshalling and rounds to zero server side.
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		g.logger.Error("chat completion failed", log.FieldError, err, log.FieldOperation, log.OpInterpret)
		return fallback(texto, fallbackAPIReply)
	}
	if len(resp.Choices) == 0 {
		g.logger.Error("chat completion returned no choices", log.FieldOperation, log.OpInterpret)
		return fallback(texto, fallbackAPIReply)
	}

	result, err := parseModelOutput(resp.Choices[0].Message.Content)
	if err != nil {
		g.logger.Warn("unparseable model output", log.FieldError, err, log.FieldOperation, log.OpInterpret)
		return fallback(texto, fallbackParseReply)
	}

	category, ok := core.ParseCategory(result.Categoria)
	if !ok {
		// Anything outside the closed set, including the explicit
		// "desconhecido", stays unknown and goes through confirmation.
		category = core.CategoryUnknown
	}

	return core.Interpretation{
		Description: result.Descricao,
		Amount:      core.MoneyFromFloat(result.Valor),
		Category:    category,
		Reply:       result.RespostaUsuario,
	}
}

// parseModelOutput decodes the model's JSON answer, tolerating markdown code
// fences some models wrap around it.
func parseModelOutput(content string) (modelResult, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result modelResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return modelResult{}, fmt.Errorf("decode model output: %w", err)
	}
	return result, nil
}
