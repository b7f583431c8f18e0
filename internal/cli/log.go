package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is the process-wide sugared logger. It discards everything until
// initLogger runs.
var logger = zap.NewNop().Sugar()

// initLogger configures logging on stderr. Warnings and errors are always
// shown; --debug lowers the level to debug. JSON encoding follows --json
// so that machine consumers get structured lines throughout.
func initLogger(debug, jsonEncoding bool) error {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if !jsonEncoding {
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if stderrIsTerminal() {
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}
	config.DisableStacktrace = true

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built.Sugar()
	return nil
}

// stderrIsTerminal reports whether log lines go to an interactive terminal.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// syncLogger flushes buffered log entries. Errors from syncing stderr are
// ignored; some platforms report EINVAL for it.
func syncLogger() {
	_ = logger.Sync()
}

// VerboseLog writes a debug-level message. It is shown only with --debug.
func VerboseLog(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
