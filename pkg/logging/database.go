package logging

// DatabaseLogger wraps a base logger and persists warnings and errors, the
// developer-facing diagnostic channel.
type DatabaseLogger struct {
	base       Logger
	component  string
	context    map[string]interface{}
	repository LogRepository
}

// NewDatabaseLogger creates a new database-backed logger
func NewDatabaseLogger(base Logger, component string, repository LogRepository) Logger {
	return &DatabaseLogger{
		base:       base,
		component:  component,
		context:    make(map[string]interface{}),
		repository: repository,
	}
}

// Info logs informational messages
func (d *DatabaseLogger) Info(msg string, fields map[string]interface{}) {
	d.base.Info(msg, fields)
}

// Error logs error messages and persists them
func (d *DatabaseLogger) Error(msg string, err error, fields map[string]interface{}) {
	d.base.Error(msg, err, fields)
	d.persistLog("ERROR", msg, err, fields)
}

// Warn logs warning messages and persists them
func (d *DatabaseLogger) Warn(msg string, fields map[string]interface{}) {
	d.base.Warn(msg, fields)
	d.persistLog("WARN", msg, nil, fields)
}

// Debug logs debug messages
func (d *DatabaseLogger) Debug(msg string, fields map[string]interface{}) {
	d.base.Debug(msg, fields)
}

// WithComponent creates a new logger for another component
func (d *DatabaseLogger) WithComponent(component string) Logger {
	return &DatabaseLogger{
		base:       d.base.WithComponent(component),
		component:  component,
		context:    copyFields(d.context),
		repository: d.repository,
	}
}

// WithContext creates a new logger with additional context fields
func (d *DatabaseLogger) WithContext(ctx map[string]interface{}) Logger {
	newContext := copyFields(d.context)
	for k, v := range ctx {
		newContext[k] = v
	}

	return &DatabaseLogger{
		base:       d.base.WithContext(ctx),
		component:  d.component,
		context:    newContext,
		repository: d.repository,
	}
}

// persistLog saves the log entry to the database
func (d *DatabaseLogger) persistLog(level, message string, err error, fields map[string]interface{}) {
	if d.repository == nil {
		return
	}

	merged := copyFields(d.context)
	for k, v := range fields {
		merged[k] = v
	}

	entry := LogEntry{
		Component: d.component,
		Level:     level,
		Message:   message,
		Fields:    merged,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if component, ok := merged["component"].(string); ok && component != "" {
		entry.Component = component
	}
	if sessionID, ok := merged["session_id"].(string); ok {
		entry.SessionID = sessionID
	}

	// Non-blocking so a slow database never stalls the caller
	go func() {
		if saveErr := d.repository.SaveLog(entry); saveErr != nil {
			// Base logger only, persisting this would recurse
			d.base.Error("Failed to persist log to database", saveErr, map[string]interface{}{
				"original_message": message,
				"original_level":   level,
			})
		}
	}()
}
