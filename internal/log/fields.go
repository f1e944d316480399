package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldSessionID   = "session_id"
	FieldUserID      = "user_id"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldLimitCents  = "limit_cents"
	FieldBackend     = "backend"
	FieldTable       = "table"
)

// Components defines standard component names.
const (
	ComponentApp          = "app"
	ComponentHTTP         = "http"
	ComponentConversation = "conversation"
	ComponentInterpreter  = "interpreter"
	ComponentBudget       = "budget"
	ComponentStore        = "store"
	ComponentAMQP         = "amqp"
	ComponentWorker       = "worker"
	ComponentSession      = "session"
)

// Operations defines standard operation names.
const (
	OpInterpret = "interpret"
	OpPersist   = "persist"
	OpList      = "list"
	OpUpsert    = "upsert"
	OpCheck     = "check"
	OpPublish   = "publish"
	OpConsume   = "consume"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
