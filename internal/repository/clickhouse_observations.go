package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"GeoPrice/internal/domain/models"
	pkgch "GeoPrice/pkg/clickhouse"
	applogger "GeoPrice/pkg/logger"
)

// CHObservationSource reads the base geospatial dataset from ClickHouse.
// Rows are ordered by coordinates so that a fixed table state plus a fixed
// synthesis seed yields a reproducible training set.
type CHObservationSource struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHObservationSource(ch *pkgch.Client, table string) *CHObservationSource {
	return &CHObservationSource{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHObservationSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHObservationSource) Observations(ctx context.Context) ([]models.Observation, error) {
	start := time.Now()
	const qtpl = `
        SELECT latitude, longitude, house_age, location_value
        FROM %s
        ORDER BY latitude, longitude
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse observations query error",
				applogger.String("table", s.table),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	out := make([]models.Observation, 0, 1024)
	for rows.Next() {
		var o models.Observation
		if err := rows.Scan(&o.Latitude, &o.Longitude, &o.HouseAge, &o.LocationValue); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse observations scan error",
					applogger.String("table", s.table),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if s.l != nil {
		s.l.Info("clickhouse observations ok",
			applogger.String("table", s.table),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}
