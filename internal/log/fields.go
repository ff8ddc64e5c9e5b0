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
	FieldError       = "error"
	FieldCustomerID  = "customer_id"
	FieldDebtCents   = "total_debt_centavos"
	FieldEventKind   = "event_kind"
	FieldSpreadsheet = "spreadsheet_id"
)

// Components name the processes; packages below the mains log through the
// default slog handler and tag records with the Field* constants instead.
const (
	ComponentApp    = "app"
	ComponentWorker = "worker"
	ComponentState  = "state"
)
