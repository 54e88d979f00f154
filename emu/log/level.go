package log

// Level mirrors logrus.Level ordering so Module.Enabled can compare against
// it without importing logrus here.
type Level int

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)
