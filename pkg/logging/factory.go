package logging

import (
	"sync"
)

// DefaultLoggerFactory implements LoggerFactory using zap loggers
type DefaultLoggerFactory struct {
	loggers map[string]Logger
	opts    Options
	mu      sync.Mutex
}

// NewLoggerFactory creates a new logger factory
func NewLoggerFactory(opts Options) LoggerFactory {
	return newDefaultLoggerFactory(opts)
}

func newDefaultLoggerFactory(opts Options) *DefaultLoggerFactory {
	return &DefaultLoggerFactory{
		loggers: make(map[string]Logger),
		opts:    opts,
	}
}

// CreateLogger creates a basic logger for the specified component
func (f *DefaultLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := NewZapLogger(component, f.opts)
	f.loggers[component] = logger
	return logger
}

// CreateSessionLogger creates a logger scoped to one editor session
func (f *DefaultLoggerFactory) CreateSessionLogger(sessionID string) Logger {
	return NewSessionLogger(f.CreateLogger(""), sessionID)
}

// CreateRequestLogger creates a logger for HTTP request handling
func (f *DefaultLoggerFactory) CreateRequestLogger(method, path string) Logger {
	return NewRequestLogger(f.CreateLogger(""), method, path)
}

// DatabaseLoggerFactory extends the default factory with database persistence
type DatabaseLoggerFactory struct {
	*DefaultLoggerFactory
	repository LogRepository
}

// NewDatabaseLoggerFactory creates a logger factory with database persistence
func NewDatabaseLoggerFactory(repository LogRepository, opts Options) LoggerFactory {
	return &DatabaseLoggerFactory{
		DefaultLoggerFactory: newDefaultLoggerFactory(opts),
		repository:           repository,
	}
}

// CreateLogger creates a database-backed logger for the specified component
func (f *DatabaseLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	dbLogger := NewDatabaseLogger(NewZapLogger(component, f.opts), component, f.repository)
	f.loggers[component] = dbLogger
	return dbLogger
}

// CreateSessionLogger creates a database-backed session logger
func (f *DatabaseLoggerFactory) CreateSessionLogger(sessionID string) Logger {
	return NewSessionLogger(f.CreateLogger(""), sessionID)
}

// CreateRequestLogger creates a database-backed request logger
func (f *DatabaseLoggerFactory) CreateRequestLogger(method, path string) Logger {
	return NewRequestLogger(f.CreateLogger(""), method, path)
}

// GlobalLoggerFactory provides a singleton logger factory instance
var (
	globalFactory LoggerFactory
	globalMu      sync.RWMutex
)

// GetGlobalLoggerFactory returns the global logger factory instance
func GetGlobalLoggerFactory() LoggerFactory {
	globalMu.RLock()
	factory := globalFactory
	globalMu.RUnlock()
	if factory != nil {
		return factory
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalFactory == nil {
		globalFactory = NewLoggerFactory(DefaultOptions())
	}
	return globalFactory
}

// SetGlobalLoggerFactory sets the global logger factory (useful for dependency injection)
func SetGlobalLoggerFactory(factory LoggerFactory) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalFactory = factory
}
