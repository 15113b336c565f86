package logging_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/latoulicious/dexbox/pkg/logging"
)

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	mu         sync.Mutex
	InfoCalls  []LogCall
	ErrorCalls []ErrorCall
	WarnCalls  []LogCall
	DebugCalls []LogCall
}

type LogCall struct {
	Message string
	Fields  map[string]interface{}
}

type ErrorCall struct {
	Message string
	Error   error
	Fields  map[string]interface{}
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InfoCalls = append(m.InfoCalls, LogCall{Message: msg, Fields: fields})
}

func (m *MockLogger) Error(msg string, err error, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorCalls = append(m.ErrorCalls, ErrorCall{Message: msg, Error: err, Fields: fields})
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WarnCalls = append(m.WarnCalls, LogCall{Message: msg, Fields: fields})
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DebugCalls = append(m.DebugCalls, LogCall{Message: msg, Fields: fields})
}

// For testing, derived loggers share the same call history
func (m *MockLogger) WithComponent(component string) logging.Logger {
	return m
}

func (m *MockLogger) WithContext(ctx map[string]interface{}) logging.Logger {
	return m
}

func (m *MockLogger) errorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ErrorCalls)
}

type mockRepository struct {
	entries chan logging.LogEntry
	err     error
}

func newMockRepository(err error) *mockRepository {
	return &mockRepository{entries: make(chan logging.LogEntry, 8), err: err}
}

func (r *mockRepository) SaveLog(entry logging.LogEntry) error {
	r.entries <- entry
	return r.err
}

func (r *mockRepository) next(t *testing.T) logging.LogEntry {
	t.Helper()
	select {
	case entry := <-r.entries:
		return entry
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for persisted log entry")
		return logging.LogEntry{}
	}
}

func TestComponentLogger_PrefixesAndEnriches(t *testing.T) {
	base := NewMockLogger()
	logger := logging.NewComponentLogger(base, "catalog")

	logger.Info("Loaded dataset", map[string]interface{}{"entries": 151})

	require.Len(t, base.InfoCalls, 1)
	call := base.InfoCalls[0]
	assert.Equal(t, "[catalog] Loaded dataset", call.Message)
	assert.Equal(t, "catalog", call.Fields["component"])
	assert.Equal(t, 151, call.Fields["entries"])
}

func TestComponentLogger_ErrorKeepsError(t *testing.T) {
	base := NewMockLogger()
	logger := logging.NewComponentLogger(base, "catalog")
	loadErr := errors.New("connection refused")

	logger.Error("Failed to load list", loadErr, map[string]interface{}{"list": "nature"})

	require.Len(t, base.ErrorCalls, 1)
	assert.Equal(t, loadErr, base.ErrorCalls[0].Error)
	assert.Equal(t, "nature", base.ErrorCalls[0].Fields["list"])
}

func TestComponentLogger_ContextIsolation(t *testing.T) {
	base := NewMockLogger()
	parent := logging.NewComponentLogger(base, "editor")
	child := parent.WithContext(map[string]interface{}{"field": "ev_hp"})

	parent.Warn("parent", nil)
	child.Warn("child", nil)

	require.Len(t, base.WarnCalls, 2)
	assert.NotContains(t, base.WarnCalls[0].Fields, "field")
	assert.Equal(t, "ev_hp", base.WarnCalls[1].Fields["field"])
}

func TestComponentLogger_CallFieldsOverrideContext(t *testing.T) {
	base := NewMockLogger()
	logger := logging.NewComponentLogger(base, "box").WithContext(map[string]interface{}{"order": "asc"})

	logger.Debug("Sorting", map[string]interface{}{"order": "name"})

	require.Len(t, base.DebugCalls, 1)
	assert.Equal(t, "name", base.DebugCalls[0].Fields["order"])
}

func TestSessionAndRequestLoggers(t *testing.T) {
	base := NewMockLogger()

	logging.NewSessionLogger(base, "session-1").Info("Selected", nil)
	logging.NewRequestLogger(base, "POST", "/api/box").Info("Handled", nil)

	require.Len(t, base.InfoCalls, 2)
	assert.Equal(t, "[editor] Selected", base.InfoCalls[0].Message)
	assert.Equal(t, "session-1", base.InfoCalls[0].Fields["session_id"])
	assert.Equal(t, "[api] Handled", base.InfoCalls[1].Message)
	assert.Equal(t, "POST", base.InfoCalls[1].Fields["method"])
	assert.Equal(t, "/api/box", base.InfoCalls[1].Fields["path"])
}

func TestZapLogger_WritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLoggerFrom("sprite", zap.New(core)).
		WithContext(map[string]interface{}{"generation": uint64(3)})

	logger.Error("Probe failed", errors.New("boom"), map[string]interface{}{"candidate": "picture/7.png"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "[sprite] Probe failed", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, uint64(3), fields["generation"])
	assert.Equal(t, "picture/7.png", fields["candidate"])
	assert.Equal(t, "boom", fields["error"])
}

func TestZapLogger_WithComponentSharesCore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := logging.NewZapLoggerFrom("", zap.New(core))

	logger.Info("plain", nil)
	logger.WithComponent("api").Info("scoped", nil)
	logger.Debug("filtered", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "plain", entries[0].Message)
	assert.Equal(t, "[api] scoped", entries[1].Message)
}

func TestLoggerFactory_CachesPerComponent(t *testing.T) {
	factory := logging.NewLoggerFactory(logging.Options{Level: "error", Format: "json"})

	first := factory.CreateLogger("catalog")
	second := factory.CreateLogger("catalog")
	other := factory.CreateLogger("box")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.NotNil(t, factory.CreateSessionLogger("s"))
	assert.NotNil(t, factory.CreateRequestLogger("GET", "/health"))
}

func TestGlobalLoggerFactory(t *testing.T) {
	original := logging.GetGlobalLoggerFactory()
	require.NotNil(t, original)
	defer logging.SetGlobalLoggerFactory(original)

	custom := logging.NewLoggerFactory(logging.DefaultOptions())
	logging.SetGlobalLoggerFactory(custom)

	assert.Same(t, custom, logging.GetGlobalLoggerFactory())
}

func TestDatabaseLogger_PersistsWarningsAndErrors(t *testing.T) {
	base := NewMockLogger()
	repo := newMockRepository(nil)
	logger := logging.NewDatabaseLogger(base, "catalog", repo).
		WithContext(map[string]interface{}{"session_id": "abc"})

	logger.Info("not persisted", nil)
	logger.Debug("not persisted", nil)
	logger.Warn("slow source", map[string]interface{}{"source": "http"})
	warn := repo.next(t)

	logger.Error("load failed", errors.New("timeout"), nil)
	failure := repo.next(t)

	assert.Equal(t, "WARN", warn.Level)
	assert.Equal(t, "catalog", warn.Component)
	assert.Equal(t, "abc", warn.SessionID)
	assert.Equal(t, "http", warn.Fields["source"])

	assert.Equal(t, "ERROR", failure.Level)
	assert.Equal(t, "timeout", failure.Error)

	select {
	case extra := <-repo.entries:
		t.Fatalf("unexpected persisted entry: %+v", extra)
	default:
	}
}

func TestDatabaseLogger_SaveFailureLogsToBase(t *testing.T) {
	base := NewMockLogger()
	repo := newMockRepository(errors.New("db down"))
	logger := logging.NewDatabaseLogger(base, "catalog", repo)

	logger.Warn("something odd", nil)
	repo.next(t)

	assert.Eventually(t, func() bool { return base.errorCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestDatabaseLogger_NilRepository(t *testing.T) {
	base := NewMockLogger()
	logger := logging.NewDatabaseLogger(base, "catalog", nil)

	assert.NotPanics(t, func() {
		logger.Error("no repository", errors.New("x"), nil)
	})
	assert.Equal(t, 1, base.errorCount())
}
