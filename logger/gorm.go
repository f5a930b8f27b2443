package logger

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

type gormWriter struct {
	sugar *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.sugar.Warnf(format, args...)
}

// NewGormLogger routes gorm's slow query and error reports into z.
// With slowQueryLog disabled only errors are reported.
func NewGormLogger(z *zap.Logger, slowQueryLog bool, slowThreshold time.Duration) gormlogger.Interface {
	level := gormlogger.Error
	if slowQueryLog {
		level = gormlogger.Warn
	}
	return gormlogger.New(gormWriter{sugar: z.Named("gorm").Sugar()}, gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
