package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldUserAgent     = "user_agent"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldAmountCents   = "amount_cents"
	FieldLimitCents    = "limit_cents"
	FieldMonth         = "month"
	FieldDate          = "date"
	FieldDegraded      = "degraded"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentStore      = "store"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentClassifier = "classifier"
	ComponentCache      = "cache"
	ComponentConfig     = "config"
)
