// Package logging provides the process-global logger for gemchat.
// Library packages log through the category helpers so callers never
// pass a logger around; the default is a no-op logger until Init runs.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// Init builds the global logger. Verbose enables debug-level output.
// All log output goes to stderr so it never interleaves with the
// transcript on stdout.
func Init(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	mu.Lock()
	logger = l.Sugar()
	mu.Unlock()
	return nil
}

// SetLogger replaces the global logger. Tests use this to capture output.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	logger = l.Sugar()
	mu.Unlock()
}

// Sync flushes buffered log entries. Called once at process exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Sync()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// API logs chat endpoint activity.
func API(format string, args ...interface{}) { get().Infof(format, args...) }

// APIDebug logs verbose chat endpoint detail.
func APIDebug(format string, args ...interface{}) { get().Debugf(format, args...) }

// APIError logs chat endpoint failures.
func APIError(format string, args ...interface{}) { get().Errorf(format, args...) }

// Files logs upload/poll/delete activity against the Files API.
func Files(format string, args ...interface{}) { get().Infof(format, args...) }

// FilesDebug logs verbose Files API detail.
func FilesDebug(format string, args ...interface{}) { get().Debugf(format, args...) }

// FilesWarn logs soft Files API failures (processing timeouts and the like).
func FilesWarn(format string, args ...interface{}) { get().Warnf(format, args...) }

// FilesError logs hard Files API failures.
func FilesError(format string, args ...interface{}) { get().Errorf(format, args...) }

// Session logs shell/session lifecycle events.
func Session(format string, args ...interface{}) { get().Infof(format, args...) }

// SessionDebug logs verbose shell/session detail.
func SessionDebug(format string, args ...interface{}) { get().Debugf(format, args...) }
