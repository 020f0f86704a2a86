package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldBackend   = "backend"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldTitle     = "title"
	FieldCategory  = "category"
	FieldAmount    = "amount_cents"
	FieldRowRef    = "row_ref"
)

// Standard component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentStore     = "store"
	ComponentAMQP      = "amqp"
	ComponentExport    = "export"
	ComponentRecurring = "recurring"
	ComponentCache     = "cache"
)
