package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldVehicleID   = "vehicle_id"
	FieldDriverID    = "driver_id"
	FieldExpenseID   = "expense_id"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldKmAtTime    = "km_at_time"
	FieldCurrentKm   = "current_km"
	FieldStatus      = "status"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentExpense = "expense"
	ComponentAdvisor = "advisor"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentArchive = "archive"
	ComponentExport  = "export"
)
