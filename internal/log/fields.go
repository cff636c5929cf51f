package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldPurchaseID  = "purchase_id"
	FieldName        = "purchase_name"
	FieldAmountCents = "amount_cents"
	FieldMonth       = "month"
	FieldBackend     = "backend"
	FieldExportRef   = "export_ref"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentPurchase = "purchase"
	ComponentLedger   = "ledger"
	ComponentSchedule = "schedule"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentExport   = "export"
	ComponentBackend  = "backend"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpList      = "list"
	OpIncrement = "increment"
	OpReplace   = "replace"
	OpCompute   = "compute"
	OpSync      = "sync"
	OpExport    = "export"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
