package logging

import "sync"

// Entry records one message logged through the MockLogger.
type Entry struct {
	Level   string
	Message string
	Fields  []Field
}

type mockSink struct {
	mu      sync.Mutex
	entries []Entry
}

// MockLogger captures log entries for assertions in tests. Derived loggers
// from WithField/WithError share the parent's entry sink.
type MockLogger struct {
	sink   *mockSink
	fields []Field
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{sink: &mockSink{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := append(append([]Field{}, m.fields...), fields...)
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	m.sink.entries = append(m.sink.entries, Entry{Level: level, Message: msg, Fields: all})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return m.WithField("error", err)
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return &MockLogger{
		sink:   m.sink,
		fields: append(append([]Field{}, m.fields...), Field{Key: key, Value: value}),
	}
}

// Entries returns a copy of everything logged so far.
func (m *MockLogger) Entries() []Entry {
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	return append([]Entry{}, m.sink.entries...)
}

// HasMessage reports whether any entry's message equals msg.
func (m *MockLogger) HasMessage(msg string) bool {
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	for _, e := range m.sink.entries {
		if e.Message == msg {
			return true
		}
	}
	return false
}
