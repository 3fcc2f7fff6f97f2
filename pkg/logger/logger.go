package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

// Init sets up the global logger. Development gets colored console output,
// anything else gets JSON.
func Init(environment string) {
	var cfg zap.Config
	if environment == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		os.Exit(1)
	}
	sugar = l.Sugar()
}

func logger() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// normalize accepts the loose call styles used across the services:
// key/value pairs, a bare trailing error, or nothing at all.
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{"error", err}
		}
	}
	if len(args)%2 != 0 {
		args = append(args, "(missing)")
	}
	return args
}

func Debug(msg string, args ...any) {
	logger().Debugw(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	logger().Infow(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	logger().Warnw(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	logger().Errorw(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	logger().Fatalw(msg, normalize(args)...)
}
