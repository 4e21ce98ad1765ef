package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldUser       = "user"
	FieldKind       = "kind"
	FieldLabel      = "label"
	FieldMonth      = "month"
	FieldAmount     = "amount_cents"
	FieldRowRef     = "row_ref"
	FieldRecordID   = "record_id"
	FieldBackend    = "backend"
	FieldQueue      = "queue"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentBot     = "bot"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentBackend = "backend"
)
