package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldExpenseID   = "expense_id"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldCacheSlot   = "cache_slot"
	FieldExchange    = "exchange"
	FieldQueue       = "queue"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentAPI     = "api"
	ComponentCache   = "cache"
	ComponentSession = "session"
	ComponentDraft   = "draft"
	ComponentAMQP    = "amqp"
)

// Operations defines standard operation names.
const (
	OpList    = "list"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpSummary = "summary"
	OpUpload  = "upload"
	OpPublish = "publish"
)
