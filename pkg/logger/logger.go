package logger

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel string

const (
	DEBUG LogLevel = "debug"
	INFO  LogLevel = "info"
	WARN  LogLevel = "warn"
	ERROR LogLevel = "error"
)

// Logger is a key/value structured logger backed by zap.
//
//	log.Info("fetch_completed", "category", "rating", "points", 5)
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

var (
	global   *Logger
	globalMu sync.RWMutex
)

// New builds a logger writing to w. A nil writer discards all output.
func New(level LogLevel, jsonFormat bool, w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.TimeKey = "time"
	encoderConfig.MessageKey = "event"

	var encoder zapcore.Encoder
	if jsonFormat {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), toZapLevel(level))
	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{base: base, sugar: base.Sugar()}
}

// Init replaces the process-wide logger returned by GetLogger.
func Init(level LogLevel, jsonFormat bool, w io.Writer) {
	l := New(level, jsonFormat, w)
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}

// GetLogger returns the process-wide logger, creating an info-level stdout
// logger when Init was never called.
func GetLogger() *Logger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = New(INFO, false, os.Stdout)
	}
	return global
}

// ParseLevel maps strings such as "WARN" or "warning" onto a LogLevel.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

func toZapLevel(level LogLevel) zapcore.Level {
	switch ParseLevel(string(level)) {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithContext returns a child logger that always carries key=value.
func (l *Logger) WithContext(key string, value interface{}) *Logger {
	base := l.base.With(zap.Any(key, value))
	return &Logger{base: base, sugar: base.Sugar()}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// StdLogger adapts l for APIs that take a *log.Logger, such as
// http.Server.ErrorLog. Lines are written at error level.
func (l *Logger) StdLogger() *stdlog.Logger {
	std, err := zap.NewStdLogAt(l.base, zapcore.ErrorLevel)
	if err != nil {
		return zap.NewStdLog(l.base)
	}
	return std
}

func (l *Logger) Sync() error {
	return l.base.Sync()
}

func Debug(msg string, keysAndValues ...interface{}) {
	GetLogger().sugar.WithOptions(zap.AddCallerSkip(1)).Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	GetLogger().sugar.WithOptions(zap.AddCallerSkip(1)).Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	GetLogger().sugar.WithOptions(zap.AddCallerSkip(1)).Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	GetLogger().sugar.WithOptions(zap.AddCallerSkip(1)).Errorw(msg, keysAndValues...)
}
