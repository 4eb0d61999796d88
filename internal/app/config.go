package app

// Constants
const (
	// Error messages
	ErrEditModeDisabled = "Edit mode disabled"
	ErrInvalidBody      = "Invalid request body"
	ErrInvalidIndex     = "Invalid index"
	ErrInvalidFormat    = "Invalid format"
	ErrInvalidReport    = "Invalid report"
	ErrInternalServer   = "Internal server error"
	ErrFailedToGenerate = "Failed to generate export"

	// Response statuses
	StatusOK      = "ok"
	StatusIgnored = "ignored"

	// Mode strings
	ModeServe = "serve"
	ModeEdit  = "edit"

	// Export file name prefix
	ExportPrefix = "controle-cafe"

	// Request body limit for JSON endpoints
	MaxBodyBytes = 1 << 20
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// Report names accepted by the download endpoint
const (
	ReportWeek  = "week"
	ReportDaily = "daily"
)
