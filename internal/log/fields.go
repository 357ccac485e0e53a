package log

// Common field names for structured logging.
const (
	FieldComponent    = "component"
	FieldError        = "error"
	FieldID           = "id"
	FieldCount        = "count"
	FieldDays         = "days"
	FieldAmount       = "amount"
	FieldCategory     = "category"
	FieldCounterparty = "counterparty"
	FieldMessageID    = "message_id"
)

// Standard component names, one per package that logs.
const (
	ComponentIngest       = "ingest"
	ComponentTransactions = "transactions"
	ComponentAppletime    = "appletime"
	ComponentCategorize   = "categorize"
	ComponentMessageDB    = "messagedb"
	ComponentStorage      = "storage"
	ComponentAMQP         = "amqp"
	ComponentWorker       = "worker"
	ComponentSheets       = "sheets"
)
