package util

import (
	"fmt"
	"time"

	"k8s.io/klog/v2"
)

// Logger is satisfied by *testing.T
type Logger interface {
	Logf(format string, args ...any)
}

// KlogLogger writes the messages through klog at the given verbosity
type KlogLogger struct {
	Verbosity klog.Level
}

func (l KlogLogger) Logf(format string, args ...any) {
	klog.V(l.Verbosity).InfoDepth(1, fmt.Sprintf(format, args...))
}

// DefaultLogger is used when no logger is given
var DefaultLogger Logger = KlogLogger{Verbosity: 2}

// OrDefault returns the given logger, or DefaultLogger if it is nil
func OrDefault(l Logger) Logger {
	if l == nil {
		return DefaultLogger
	}
	return l
}

func LogWithTimestamp(l Logger, message string) {
	time := time.Now().Format("2006-01-02 15:04:05")
	l.Logf("[%s] %s", time, message)
}
