package postgres

import (
	"context"
	"fmt"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

const pingTimeout = 3 * time.Second

type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration

	// TraceSQL loguea cada query con pgx tracelog (ruidoso, sólo local).
	TraceSQL bool
}

// Open abre un pool database/sql sobre pgx y lo envuelve con bun.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*bun.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	if cfg.TraceSQL {
		connConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(log.With().Str("component", "pgx").Logger()),
			LogLevel: traceLevel(log.GetLevel()),
		}
	}

	sqldb := stdlib.OpenDB(*connConfig)
	sqldb.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 10))
	sqldb.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 5))
	sqldb.SetConnMaxIdleTime(orDefault(cfg.ConnMaxIdleTime, 5*time.Minute))
	sqldb.SetConnMaxLifetime(orDefault(cfg.ConnMaxLifetime, 30*time.Minute))

	db := bun.NewDB(sqldb, pgdialect.New())
	// la tabla intermedia tiene que estar registrada para la relación m2m
	db.RegisterModel((*achievementCatRow)(nil))

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Msg("connected to the database")
	return db, nil
}

func traceLevel(l zerolog.Level) tracelog.LogLevel {
	switch l {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
