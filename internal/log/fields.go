package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldDescription = "description"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldCard        = "card"
	FieldBackend     = "backend"
	FieldRecordCount = "record_count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentRecords = "records"
	ComponentSheets  = "sheets"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpAppend     = "append"
	OpList       = "list"
	OpValidate   = "validate"
	OpCoerce     = "coerce"
	OpSummarize  = "summarize"
	OpInitialize = "initialize"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)
