package logger

import (
	"context"
	"os"
	"strings"
	"time"
)

// LogLevel log level
type LogLevel int

const (
	// Silent silent log level
	Silent LogLevel = iota + 1
	// Error print errors
	Error
	// Warn print warn messages, slow statements and errors
	Warn
	// Info print every statement, warn messages and errors
	Info
)

// Backend names accepted by New
const (
	BackendZap     = "zap"
	BackendZerolog = "zerolog"
	BackendLogrus  = "logrus"
)

// Config logger config
type Config struct {
	SlowThreshold time.Duration
	LogLevel      LogLevel
	// ParameterizedQueries logs statements with placeholders instead of rendered vars
	ParameterizedQueries bool
}

// Interface logger interface
type Interface interface {
	LogMode(LogLevel) Interface
	Info(context.Context, string, ...interface{})
	Warn(context.Context, string, ...interface{})
	Error(context.Context, string, ...interface{})
	Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error)
}

// ParamsFilter filter params before rendering them into a logged statement
type ParamsFilter interface {
	ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{})
}

var (
	// Default default logger, zap production logger at Warn level
	Default = NewZapLoggerWithConfig(Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      Warn,
	})
	// Discard logger that drops every message
	Discard = NewZerologLogger(nopZerolog, Config{LogLevel: Silent})
)

// New creates a logger for the named backend, falling back to zap
func New(backend string, config Config) Interface {
	switch strings.ToLower(backend) {
	case BackendZerolog:
		return NewZerologLoggerWithConfig(config)
	case BackendLogrus:
		return NewLogrusLoggerWithConfig(config, os.Stdout)
	default:
		return NewZapLoggerWithConfig(config)
	}
}

// ParseLevel parse a level name, unknown names map to Warn
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return Silent
	case "error":
		return Error
	case "info":
		return Info
	default:
		return Warn
	}
}

type traceDecision int

const (
	traceSkip traceDecision = iota
	traceError
	traceSlow
	traceInfo
)

// decide picks how a traced statement is reported for the given level
func decide(level LogLevel, slowThreshold, elapsed time.Duration, err error) traceDecision {
	switch {
	case level <= Silent:
		return traceSkip
	case err != nil && level >= Error:
		return traceError
	case slowThreshold != 0 && elapsed > slowThreshold && level >= Warn:
		return traceSlow
	case level >= Info:
		return traceInfo
	}
	return traceSkip
}

func duration(elapsed time.Duration) float64 {
	return float64(elapsed.Nanoseconds()) / 1e6
}
