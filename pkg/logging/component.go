package logging

import (
	"fmt"
)

// ComponentLogger wraps a base logger with component-specific context
type ComponentLogger struct {
	base      Logger
	component string
	context   map[string]interface{}
}

// NewComponentLogger creates a new component-specific logger
func NewComponentLogger(base Logger, component string) *ComponentLogger {
	return &ComponentLogger{
		base:      base,
		component: component,
		context:   make(map[string]interface{}),
	}
}

// Info logs informational messages with component context
func (c *ComponentLogger) Info(msg string, fields map[string]interface{}) {
	c.base.Info(c.format(msg), c.enrichFields(fields))
}

// Error logs error messages with component context
func (c *ComponentLogger) Error(msg string, err error, fields map[string]interface{}) {
	c.base.Error(c.format(msg), err, c.enrichFields(fields))
}

// Warn logs warning messages with component context
func (c *ComponentLogger) Warn(msg string, fields map[string]interface{}) {
	c.base.Warn(c.format(msg), c.enrichFields(fields))
}

// Debug logs debug messages with component context
func (c *ComponentLogger) Debug(msg string, fields map[string]interface{}) {
	c.base.Debug(c.format(msg), c.enrichFields(fields))
}

// WithComponent creates a new logger with updated component context
func (c *ComponentLogger) WithComponent(component string) Logger {
	return &ComponentLogger{
		base:      c.base,
		component: component,
		context:   copyFields(c.context),
	}
}

// WithContext creates a new logger with additional context fields
func (c *ComponentLogger) WithContext(ctx map[string]interface{}) Logger {
	newContext := copyFields(c.context)
	for k, v := range ctx {
		newContext[k] = v
	}

	return &ComponentLogger{
		base:      c.base,
		component: c.component,
		context:   newContext,
	}
}

func (c *ComponentLogger) format(msg string) string {
	return fmt.Sprintf("[%s] %s", c.component, msg)
}

// enrichFields combines component context with provided fields
func (c *ComponentLogger) enrichFields(fields map[string]interface{}) map[string]interface{} {
	enriched := copyFields(c.context)

	// Provided fields can override context
	for k, v := range fields {
		enriched[k] = v
	}

	enriched["component"] = c.component

	return enriched
}

// NewSessionLogger creates a logger for one editor session
func NewSessionLogger(base Logger, sessionID string) Logger {
	return NewComponentLogger(base, "editor").WithContext(map[string]interface{}{
		"session_id": sessionID,
	})
}

// NewRequestLogger creates a logger for one HTTP route
func NewRequestLogger(base Logger, method, path string) Logger {
	return NewComponentLogger(base, "api").WithContext(map[string]interface{}{
		"method": method,
		"path":   path,
	})
}
