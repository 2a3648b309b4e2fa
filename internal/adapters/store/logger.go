package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger forwards gorm's query log to zerolog.
type gormLogger struct {
	logger        zerolog.Logger
	slowThreshold time.Duration
}

func newGormLogger(slowThreshold time.Duration) *gormLogger {
	return &gormLogger{
		logger:        log.With().Str("logger", "gorm").Logger(),
		slowThreshold: slowThreshold,
	}
}

func (g *gormLogger) LogMode(_ logger.LogLevel) logger.Interface {
	return g
}

func (g *gormLogger) Info(_ context.Context, s string, args ...any) {
	g.logger.Info().Msg(fmt.Sprintf(s, args...))
}

func (g *gormLogger) Warn(_ context.Context, s string, args ...any) {
	g.logger.Warn().Msg(fmt.Sprintf(s, args...))
}

func (g *gormLogger) Error(_ context.Context, s string, args ...any) {
	g.logger.Error().Msg(fmt.Sprintf(s, args...))
}

func (g *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	var event *zerolog.Event
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		event = g.logger.Error().Err(err)
	case g.slowThreshold != 0 && elapsed > g.slowThreshold:
		event = g.logger.Warn().Dur("threshold", g.slowThreshold)
	default:
		event = g.logger.Debug()
	}

	event.Dur("elapsed", elapsed).
		Int64("rows", rows).
		Str("sql", sql).
		Msg("sql completed")
}
