package logger

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	mu           sync.RWMutex
)

// GetLogger returns the process logger, building a console logger on first use.
// LOG_LEVEL selects the level; DEBUG=true forces debug.
func GetLogger() *Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		level := "info"
		if os.Getenv("DEBUG") == "true" {
			level = "debug"
		} else if env := os.Getenv("LOG_LEVEL"); env != "" {
			level = env
		}
		globalLogger = New(Config{
			Level:  level,
			Format: "console",
			Output: "stderr",
		})
	}
	return globalLogger
}

// SetLogger replaces the process logger. Loggers already derived with
// WithField keep writing to the old one.
func SetLogger(logger *Logger) {
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
	SetGlobalLogger(logger)
}

// WithField adds a field to the process logger
func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

// WithError adds an error to the process logger
func WithError(err error) *Logger {
	return GetLogger().WithError(err)
}
