// Package debug provides optional file-based debug logging.
//
// When the FLOATUI_DEBUG environment variable is set to a file path, debug
// messages are appended to that file (rotated by size). Otherwise logging is a
// no-op. Call sites use Log for printf-style messages or Logger for structured
// zap fields.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvVar names the environment variable that enables debug logging.
const EnvVar = "FLOATUI_DEBUG"

var (
	mu       sync.Mutex
	logger   = zap.NewNop()
	sink     *lumberjack.Logger
	autoInit sync.Once
)

// Init initializes debug logging to the specified file path.
// If path is empty, uses "debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	if sink != nil {
		_ = logger.Sync()
		_ = sink.Close()
	}
	sink = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(sink),
		zap.DebugLevel,
	)
	logger = zap.New(core).Named("floatui")
	return nil
}

// InitFromEnv enables logging when FLOATUI_DEBUG is set. It runs at most once
// and is called lazily by Log and Logger.
func InitFromEnv() {
	autoInit.Do(func() {
		path := os.Getenv(EnvVar)
		if path == "" {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if err := initLocked(path); err != nil {
			fmt.Fprintf(os.Stderr, "floatui: debug log disabled: %v\n", err)
		}
	})
}

// SetLogger replaces the debug logger. Passing nil restores the no-op logger.
// Intended for hosts that already own a zap logger, and for tests.
func SetLogger(l *zap.Logger) {
	autoInit.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the current debug logger. It is never nil.
func Logger() *zap.Logger {
	InitFromEnv()
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Close flushes and closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	_ = logger.Sync()
	logger = zap.NewNop()
	if sink != nil {
		err := sink.Close()
		sink = nil
		return err
	}
	return nil
}

// Log writes a printf-style message to the debug log.
func Log(format string, args ...any) {
	l := Logger()
	if !l.Core().Enabled(zap.DebugLevel) {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}

// Logf is an alias for Log.
func Logf(format string, args ...any) {
	Log(format, args...)
}
