package common

import (
	"fmt"

	"ecom-admin/pkg/log"
)

// Logger is the loosely typed logging surface handed to packages that
// must not depend on pkg/log directly.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Printf(format string, args ...interface{})
	Println(args ...interface{})
}

type loggerAdapter struct {
	logger log.Logger
}

// NewLoggerAdapter wraps a structured logger behind the Logger
// interface, translating key/value pairs into typed fields.
func NewLoggerAdapter(logger log.Logger) Logger {
	return &loggerAdapter{logger: logger}
}

// pairsToFields interprets variadic arguments as alternating keys and
// values. A trailing key with no value is dropped.
func pairsToFields(pairs []interface{}) []log.Field {
	fields := make([]log.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key := fmt.Sprintf("%v", pairs[i])
		fields = append(fields, log.Any(key, pairs[i+1]))
	}
	return fields
}

func (a *loggerAdapter) Debug(msg string, fields ...interface{}) {
	a.logger.Debug(msg, pairsToFields(fields)...)
}

func (a *loggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, pairsToFields(fields)...)
}

func (a *loggerAdapter) Warn(msg string, fields ...interface{}) {
	a.logger.Warn(msg, pairsToFields(fields)...)
}

func (a *loggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, pairsToFields(fields)...)
}

func (a *loggerAdapter) Debugf(format string, args ...interface{}) {
	a.logger.Debugf(format, args...)
}

func (a *loggerAdapter) Infof(format string, args ...interface{}) {
	a.logger.Infof(format, args...)
}

func (a *loggerAdapter) Warnf(format string, args ...interface{}) {
	a.logger.Warnf(format, args...)
}

func (a *loggerAdapter) Errorf(format string, args ...interface{}) {
	a.logger.Errorf(format, args...)
}

func (a *loggerAdapter) Printf(format string, args ...interface{}) {
	a.logger.Printf(format, args...)
}

func (a *loggerAdapter) Println(args ...interface{}) {
	a.logger.Println(args...)
}
