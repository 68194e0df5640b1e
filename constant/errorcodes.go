package constant

// Domain service error codes
const (
	// Label service - Validation errors (1xx)
	ErrCodeInvalidResourceURL = "SVC101"
	ErrCodeInvalidVariant     = "SVC102"

	// Label service - Upstream fetch errors (2xx)
	ErrCodeFetchFailure = "SVC201"

	// Label service - Rendering errors (3xx)
	ErrCodeSymbologyFailure = "SVC301"
	ErrCodeComposeFailure   = "SVC302"
	ErrCodePreviewFailure   = "SVC303"

	// Label service - Journal errors (4xx)
	ErrCodeJournalFailure = "SVC401"
)

// Upstream client error codes
const (
	// Request errors (0xx)
	ErrCodeMXRequest = "MX001"

	// Response errors (1xx)
	ErrCodeMXStatus = "MX101"
	ErrCodeMXDecode = "MX102"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Record operation errors (1xx)
	ErrCodeDBInsert = "DB101"

	// Recent operation errors (2xx)
	ErrCodeDBSelect     = "DB201"
	ErrCodeDBScanRows   = "DB202"
	ErrCodeDBRowIterate = "DB203"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeUpstream   = "upstream"
	ErrTypeSymbology  = "symbology"
	ErrTypeRender     = "render"
	ErrTypePreview    = "preview"
	ErrTypeJournal    = "journal"

	// Infrastructure error types
	ErrTypeDB = "db"
)
