package telemetry

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetrics records statement counts and latency plus connection pool state.
// Pool gauges are observed on collection, so no background goroutine runs.
type DBMetrics struct {
	queryTotal     *Counter
	queryDuration  *Histogram
	slowQueryTotal *Counter
	slowThresh     time.Duration
	registration   metric.Registration
}

// NewDBMetrics creates the statement instruments and the pool gauges over db's pool
func NewDBMetrics(meter metric.Meter, db *gorm.DB, slowThresh time.Duration) (*DBMetrics, error) {
	if slowThresh <= 0 {
		slowThresh = DefaultSlowQueryThreshold
	}

	queryTotal, err := NewCounter(meter, "db_query_total", "Database statements by operation", "{query}")
	if err != nil {
		return nil, err
	}
	queryDuration, err := NewHistogram(meter, "db_query_duration_seconds",
		"Database statement latency", "s", DBDurationBuckets)
	if err != nil {
		return nil, err
	}
	slowQueryTotal, err := NewCounter(meter, "db_slow_query_total", "Statements slower than the slow query threshold", "{query}")
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	conns, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"), metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	maxConns, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"), metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(maxConns, int64(stats.MaxOpenConnections))
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(KeyDBPoolState.String("idle")))
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(KeyDBPoolState.String("in_use")))
		o.ObserveInt64(conns, int64(stats.OpenConnections), metric.WithAttributes(KeyDBPoolState.String("open")))
		return nil
	}, conns, maxConns)
	if err != nil {
		return nil, err
	}

	return &DBMetrics{
		queryTotal:     queryTotal,
		queryDuration:  queryDuration,
		slowQueryTotal: slowQueryTotal,
		slowThresh:     slowThresh,
		registration:   reg,
	}, nil
}

// RecordQuery records one executed statement
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, d time.Duration) {
	op := KeyDBOperation.String(operation)
	m.queryTotal.Inc(ctx, op)
	m.queryDuration.RecordDuration(ctx, d, op)
	if d > m.slowThresh {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, KeyDBTable.String(table))
	}
}

// Close stops observing the pool
func (m *DBMetrics) Close() error {
	return m.registration.Unregister()
}

// Register hooks the recorder into every gorm processor
func (m *DBMetrics) Register(db *gorm.DB) error {
	return registerAround(db, "db_metrics", markQueryStart, func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		elapsed, _ := queryElapsed(tx)
		m.RecordQuery(ctx, operationOf(tx.Statement.SQL.String()), tx.Statement.Table, elapsed)
	})
}

func operationOf(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterDBMetrics wires statement and pool metrics into db when metrics are exported.
// It returns nil when the meter provider is disabled.
func RegisterDBMetrics(db *gorm.DB, mp *MeterProvider, slowThresh time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	if mp == nil || !mp.Enabled() {
		return nil, nil
	}
	m, err := NewDBMetrics(mp.Meter("db.client"), db, slowThresh)
	if err != nil {
		return nil, err
	}
	if err := m.Register(db); err != nil {
		_ = m.Close()
		return nil, err
	}
	logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", m.slowThresh))
	return m, nil
}
