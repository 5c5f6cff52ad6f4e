package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootLogger *zap.SugaredLogger
var config zap.Config

func init() {
	config = zap.NewProductionConfig()
	if err := build(); err != nil {
		panic(err)
	}
}

func build() error {
	// Stack traces only from DPanic up, so Error lines stay one line.
	stacktraceOption := zap.AddStacktrace(zapcore.DPanicLevel)
	callerOption := zap.AddCallerSkip(1)
	logger, err := config.Build(stacktraceOption, callerOption)
	if err != nil {
		return err
	}
	rootLogger = logger.Sugar()
	return nil
}

// Configure replaces the root logger with one writing at level to outputs.
// An empty outputs list keeps the current destinations.
func Configure(level string, outputs []string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config.Level.SetLevel(lvl)
	if len(outputs) > 0 {
		config.OutputPaths = outputs
		config.ErrorOutputPaths = outputs
	}
	return build()
}

func OpenDebug() {
	config.Level.SetLevel(zap.DebugLevel)
}

func CloseDebug() {
	config.Level.SetLevel(zap.InfoLevel)
}

func Enabled(level zapcore.Level) bool {
	return config.Level.Enabled(level)
}

func Sync() error {
	return rootLogger.Sync()
}

func Errorw(msg string, keysAndValues ...any) {
	rootLogger.Errorw(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...any) {
	rootLogger.Warnw(msg, keysAndValues...)
}

func Infow(msg string, keysAndValues ...any) {
	rootLogger.Infow(msg, keysAndValues...)
}

func Debugw(msg string, keysAndValues ...any) {
	rootLogger.Debugw(msg, keysAndValues...)
}
