package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements Logger interface using zap
type ZapLogger struct {
	logger    *zap.Logger
	component string
	context   map[string]interface{}
}

// NewZapLogger creates a new ZapLogger for a component
func NewZapLogger(component string, opts Options) *ZapLogger {
	config := zap.NewProductionConfig()
	if opts.Format == "text" {
		config = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(opts.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	config.Level = level

	logger, err := config.Build()
	if err != nil {
		// Fallback to a no-op logger if configuration fails
		logger = zap.NewNop()
	}

	return NewZapLoggerFrom(component, logger)
}

// NewZapLoggerFrom wraps an existing zap logger
func NewZapLoggerFrom(component string, logger *zap.Logger) *ZapLogger {
	return &ZapLogger{
		logger:    logger,
		component: component,
		context:   make(map[string]interface{}),
	}
}

// Info logs an info message
func (z *ZapLogger) Info(msg string, fields map[string]interface{}) {
	z.logger.Info(z.format(msg), z.buildZapFields(fields)...)
}

// Error logs an error message
func (z *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	zapFields := z.buildZapFields(fields)
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	z.logger.Error(z.format(msg), zapFields...)
}

// Warn logs a warning message
func (z *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	z.logger.Warn(z.format(msg), z.buildZapFields(fields)...)
}

// Debug logs a debug message
func (z *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	z.logger.Debug(z.format(msg), z.buildZapFields(fields)...)
}

// WithComponent returns a logger sharing the same core under another component name
func (z *ZapLogger) WithComponent(component string) Logger {
	return &ZapLogger{
		logger:    z.logger,
		component: component,
		context:   copyFields(z.context),
	}
}

// WithContext creates a new logger with additional context
func (z *ZapLogger) WithContext(ctx map[string]interface{}) Logger {
	newContext := copyFields(z.context)
	for k, v := range ctx {
		newContext[k] = v
	}

	return &ZapLogger{
		logger:    z.logger,
		component: z.component,
		context:   newContext,
	}
}

// Sync flushes buffered entries
func (z *ZapLogger) Sync() error {
	return z.logger.Sync()
}

func (z *ZapLogger) format(msg string) string {
	if z.component == "" {
		return msg
	}
	return fmt.Sprintf("[%s] %s", z.component, msg)
}

// buildZapFields converts map fields to zap fields
func (z *ZapLogger) buildZapFields(fields map[string]interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(z.context)+len(fields))

	// Context first so call-site fields show up last
	for k, v := range z.context {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}

func copyFields(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
