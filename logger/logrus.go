package logger

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jay-hwang/active-record/utils"
	"github.com/sirupsen/logrus"
)

// LogrusLogger implements Interface using logrus
type LogrusLogger struct {
	Logger        *logrus.Logger
	LogLevel      LogLevel
	SlowThreshold time.Duration
	Parameterized bool
}

// NewLogrusLogger creates a new logger using logrus
func NewLogrusLogger(logger *logrus.Logger, config Config) Interface {
	return &LogrusLogger{
		Logger:        logger,
		LogLevel:      config.LogLevel,
		SlowThreshold: config.SlowThreshold,
		Parameterized: config.ParameterizedQueries,
	}
}

// NewLogrusLoggerWithConfig creates a text formatted logrus logger writing to out
func NewLogrusLoggerWithConfig(config Config, out io.Writer) Interface {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(LogrusLevel(config.LogLevel))
	return NewLogrusLogger(logger, config)
}

// LogMode sets the log level
func (l *LogrusLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info logs info messages
func (l *LogrusLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.entry(ctx, logrus.Fields{"data": data}).Info(msg)
	}
}

// Warn logs warning messages
func (l *LogrusLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.entry(ctx, logrus.Fields{"data": data}).Warn(msg)
	}
}

// Error logs error messages
func (l *LogrusLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.entry(ctx, logrus.Fields{"data": data}).Error(msg)
	}
}

// Trace logs statement execution details
func (l *LogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	decision := decide(l.LogLevel, l.SlowThreshold, elapsed, err)
	if decision == traceSkip {
		return
	}

	sql, rows := fc()
	fields := logrus.Fields{
		"duration": fmt.Sprintf("%.3fms", duration(elapsed)),
		"sql":      sql,
	}

	if rows != -1 {
		fields["rows"] = rows
	}

	switch decision {
	case traceError:
		fields["error"] = err.Error()
		l.entry(ctx, fields).Error("statement failed")
	case traceSlow:
		fields["slow_threshold"] = l.SlowThreshold.String()
		l.entry(ctx, fields).Warn("slow statement")
	case traceInfo:
		l.entry(ctx, fields).Info("statement executed")
	}
}

func (l *LogrusLogger) entry(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	fields["file"] = utils.FileWithLineNum()
	entry := l.Logger.WithFields(fields)
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	return entry
}

// ParamsFilter filters statement parameters
func (l *LogrusLogger) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if l.Parameterized {
		return sql, nil
	}
	return sql, params
}

// LogrusLevel converts LogLevel to logrus.Level
func LogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case Silent:
		return logrus.PanicLevel
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
