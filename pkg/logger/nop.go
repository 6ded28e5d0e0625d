package logger

// NopLogger discards everything. Handy in tests.
type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) SetLogLevel(levelStr string)              {}
func (NopLogger) GetLogLevel() string                      { return "info" }
func (NopLogger) Trace(msg string, args ...any)            {}
func (NopLogger) Debug(msg string, args ...any)            {}
func (NopLogger) Info(msg string, args ...any)             {}
func (NopLogger) Warn(msg string, args ...any)             {}
func (NopLogger) Error(msg string, err error, args ...any) {}
func (NopLogger) Fatal(msg string, err error, args ...any) {}
