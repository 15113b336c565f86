package logging

// Logger provides logging functionality with structured fields
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
	WithComponent(component string) Logger
	WithContext(ctx map[string]interface{}) Logger
}

// LoggerFactory creates different types of loggers
type LoggerFactory interface {
	CreateLogger(component string) Logger
	CreateSessionLogger(sessionID string) Logger
	CreateRequestLogger(method, path string) Logger
}

// LogRepository persists diagnostic entries
type LogRepository interface {
	SaveLog(entry LogEntry) error
}

// LogEntry represents a log entry for persistence
type LogEntry struct {
	Component string                 `json:"component"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error,omitempty"`
	Fields    map[string]interface{} `json:"fields"`
	SessionID string                 `json:"session_id,omitempty"`
}

// Options selects the zap encoder and minimum level
type Options struct {
	Level  string
	Format string
}

// DefaultOptions is JSON output at info level
func DefaultOptions() Options {
	return Options{Level: "info", Format: "json"}
}
