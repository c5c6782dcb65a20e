package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "service_unavailable"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig  ErrorCode = "invalid_configuration"
	ErrMissingConfig  ErrorCode = "missing_configuration"
	ErrBindFlags      ErrorCode = "bind_flags_failed"
	ErrReadConfig     ErrorCode = "read_config_failed"
	ErrInvalidTimeout ErrorCode = "invalid_timeout"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Application errors
	ErrInitApp      ErrorCode = "init_app_failed"
	ErrConsoleLoop  ErrorCode = "console_loop_failed"
	ErrPowerControl ErrorCode = "power_control_failed"
	ErrFanControl   ErrorCode = "fan_control_failed"

	// Operation errors
	ErrOperationFailed ErrorCode = "operation_failed"
	ErrTimeout         ErrorCode = "operation_timeout"

	// Journal errors
	ErrInitJournal   ErrorCode = "init_journal_failed"
	ErrRecordJournal ErrorCode = "record_journal_failed"
	ErrCloseJournal  ErrorCode = "close_journal_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrUnavailable:     "Service unavailable",
	ErrAlreadyRunning:  "Another instance is already running",
	ErrInvalidConfig:   "Invalid configuration",
	ErrMissingConfig:   "Missing configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read configuration",
	ErrInvalidTimeout:  "Invalid timeout value",
	ErrInvalidLogLevel: "Invalid log level",
	ErrInitFailed:      "Initialization failed",
	ErrShutdownFailed:  "Shutdown failed",
	ErrInitApp:         "Failed to initialize application",
	ErrConsoleLoop:     "Error in console loop",
	ErrPowerControl:    "Power control command failed",
	ErrFanControl:      "Fan control command failed",
	ErrOperationFailed: "Operation failed",
	ErrTimeout:         "Operation timed out",
	ErrInitJournal:     "Failed to initialize journal",
	ErrRecordJournal:   "Failed to record journal entry",
	ErrCloseJournal:    "Failed to close journal",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
