// Package log wraps zap with the module's logging conventions: JSON output
// in production, colored console output in development, and optional
// rotated file output for enclave debug runs.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log struct holds the zap Logger instance.
type Log struct {
	*zap.Logger
	closeLog func() error
}

// LoggerConfig holds the knobs for building a Log.
type LoggerConfig struct {
	IsProd      bool
	ServiceName string
	// LogFile enables rotated file output when non-empty.
	LogFile    string
	ZapOptions []zap.Option
}

// NewLoggerConfig creates a LoggerConfig with the given mode and options.
func NewLoggerConfig(isProd bool, opts ...LoggerOption) *LoggerConfig {
	cfg := &LoggerConfig{
		IsProd:      isProd,
		ServiceName: "tee-pre-compute",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoggerOption defines a functional option for configuring the logger.
type LoggerOption func(*LoggerConfig)

// WithServiceName sets the service field attached to every entry.
func WithServiceName(name string) LoggerOption {
	return func(cfg *LoggerConfig) {
		cfg.ServiceName = name
	}
}

// WithLogFile enables rotated file output at the given path.
func WithLogFile(path string) LoggerOption {
	return func(cfg *LoggerConfig) {
		cfg.LogFile = path
	}
}

// WithZapOptions appends extra zap options.
func WithZapOptions(opts ...zap.Option) LoggerOption {
	return func(cfg *LoggerConfig) {
		cfg.ZapOptions = append(cfg.ZapOptions, opts...)
	}
}

// NewBasicLogger creates a logger with default configuration for the given mode.
func NewBasicLogger(isProd bool) *Log {
	logger, _ := NewLogger(NewLoggerConfig(isProd))
	return logger
}

// NewLogger creates a new Log instance from the provided configuration.
func NewLogger(cfg *LoggerConfig) (*Log, error) {
	atomicLevel := zap.NewAtomicLevel()
	if cfg.IsProd {
		atomicLevel.SetLevel(zapcore.InfoLevel)
	} else {
		atomicLevel.SetLevel(zapcore.DebugLevel)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "time",
		LevelKey:      "level",
		NameKey:       "log",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		EncodeLevel: func() zapcore.LevelEncoder {
			if cfg.IsProd {
				return zapcore.CapitalLevelEncoder
			}
			return zapcore.CapitalColorLevelEncoder
		}(),
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.IsProd {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), atomicLevel),
	}
	if cfg.LogFile != "" {
		fileSink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileSink, atomicLevel))
	}

	defaultOptions := []zap.Option{
		zap.Fields(zap.String("service", cfg.ServiceName)),
		zap.AddCaller(),
	}
	options := append(defaultOptions, cfg.ZapOptions...)

	logger := zap.New(zapcore.NewTee(cores...), options...)

	return &Log{
		Logger:   logger,
		closeLog: logger.Sync,
	}, nil
}

// Close flushes any buffered log entries.
func (l *Log) Close() error {
	if l.closeLog == nil {
		return nil
	}
	return l.closeLog()
}
