package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain        = "domain"
	CtxGenerateLabel = "GenerateLabel"
	CtxLabelHistory  = "History"

	// Infrastructure context names
	CtxDB          = "db"
	CtxFetchRecord = "FetchRecord"
	CtxRecordEvent = "Record"
	CtxRecent      = "Recent"
	CtxClose       = "Close"
	CtxAPI         = "api"

	// General context names
	CtxRouter        = "Router"
	CtxMain          = "Main"
	CtxCreateLabel   = "CreateLabel"
	CtxDownloadLabel = "DownloadDocument"
	CtxPreviewLabel  = "PreviewImage"
	CtxGetHistory    = "GetHistory"
)

// Data field keys
const (
	// Service data fields
	DataService    = "service"
	DataURL        = "url"
	DataKind       = "kind"
	DataResourceID = "resource_id"
	DataVariant    = "variant"
	DataName       = "name"
	DataFontSize   = "font_size"
	DataFits       = "fits"
	DataFilename   = "filename"
	DataLimit      = "limit"

	// Upstream data fields
	DataEndpoint   = "endpoint"
	DataStatusCode = "status_code"
	DataBaseURL    = "base_url"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
)

// Error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
	ErrCodeAppConfig         = "APP004"
)

// Error types
const (
	ErrTypeDomain = "domain"
	ErrTypeAPI    = "api"
	ErrTypeApp    = "application"
)

// API routes
const (
	RouteCreateLabel   = "/api/labels"
	RouteLabelDocument = "/api/labels/document"
	RouteLabelPreview  = "/api/labels/preview"
	RouteLabelHistory  = "/api/labels/history"
	RouteHealthcheck   = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Message constants for application
const (
	MsgApplicationStarting   = "Application starting"
	MsgInvalidConfiguration  = "Invalid configuration"
	MsgFailedToInitDB        = "Failed to initialize journal database"
	MsgServerStarting        = "Server starting"
	MsgServerFailedToStart   = "Server failed to start"
	MsgServerShuttingDown    = "Server shutting down"
	MsgServerShutdownError   = "Error during server shutdown"
	MsgServerStopped         = "Server stopped"
	MsgRequestReceived       = "Request received"
	MsgHandlingCreateLabel   = "Handling label generation request"
	MsgHandlingDownload      = "Handling label download request"
	MsgHandlingPreview       = "Handling label preview request"
	MsgHandlingHistory       = "Handling label history request"
	MsgSettingUpRoutes       = "Setting up API routes"
	MsgHealthcheckRequest    = "Handling healthcheck request"
	MsgHealthy               = "Healthy"
	MsgRequestCompleted      = "Request completed"
)
