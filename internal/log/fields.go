package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldSource    = "source"
	FieldStartRow  = "start_row"
	FieldRows      = "rows"
	FieldCommitted = "committed"
	FieldSkipped   = "skipped"
	FieldName      = "name"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldFile      = "file"
	FieldQueue     = "queue"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldSuccess   = "success"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentEngine    = "engine"
	ComponentRows      = "rows"
	ComponentAggregate = "aggregate"
	ComponentSummary   = "summary"
	ComponentReport    = "report"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentMerge     = "merge"
)

// Operations defines standard operation names
const (
	OpAnalyze  = "analyze"
	OpMerge    = "merge"
	OpClassify = "classify"
	OpUndo     = "undo"
	OpExport   = "export"
	OpSync     = "sync"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
