package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aquabot_telemetry/internal/models"

	"github.com/google/uuid"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

// Ensure implementation of ReadingRepo interface at compile time.
var _ ReadingRepo = (*ReadingSQLite)(nil)

const (
	insertReadingSQL = `
		INSERT INTO readings (id, ph, voltage, turbidity, cdom, algae, plastic,
			classification, confidence, temperature, distance, status, alert, ts_unix_nano)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRecentReadingsSQL = `
		SELECT id, ph, voltage, turbidity, cdom, algae, plastic,
			classification, confidence, temperature, distance, status, alert, ts_unix_nano
		FROM readings
		ORDER BY ts_unix_nano DESC, seq DESC
		LIMIT ?
	`
)

// Append stores a reading. ID is always generated; Timestamp is set to now (UTC) if absent.
// The single INSERT either commits the whole row or nothing. A timestamp outside
// models.MinTimestamp..MaxTimestamp is refused before touching the store.
func (r *ReadingSQLite) Append(ctx context.Context, in models.Reading) (models.StoredReading, error) {
	ts := time.Now().UTC()
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		ts = in.Timestamp.UTC()
	}
	if !models.TimestampInRange(ts) {
		return models.StoredReading{}, fmt.Errorf("append: %w", models.ErrTimestampOutOfRange)
	}

	out := models.StoredReading{
		ID:        uuid.NewString(),
		Reading:   in,
		Alert:     in.ResolveAlert(),
		Timestamp: ts,
	}
	out.Reading.Alert = ""
	out.Reading.Timestamp = nil

	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		out.ID,
		nullFloat(in.PH),
		nullFloat(in.Voltage),
		nullString(in.Turbidity),
		nullFloat(in.CDOM),
		nullFloat(in.Algae),
		nullFloat(in.Plastic),
		nullString(in.Classification),
		nullFloat(in.Confidence),
		nullFloat(in.Temperature),
		nullFloat(in.Distance),
		nullString(in.Status),
		string(out.Alert),
		ts.UnixNano(),
	)
	if err != nil {
		return models.StoredReading{}, persistenceErr("append", err)
	}
	return out, nil
}

// Recent returns up to limit readings, newest first. An empty store yields an empty slice.
func (r *ReadingSQLite) Recent(ctx context.Context, limit int) ([]models.StoredReading, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := r.db.QueryContext(ctx, selectRecentReadingsSQL, limit)
	if err != nil {
		return nil, persistenceErr("recent", err)
	}
	defer rows.Close()

	out := make([]models.StoredReading, 0, limit)
	for rows.Next() {
		sr, err := scanReading(rows)
		if err != nil {
			return nil, persistenceErr("recent", err)
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("recent", err)
	}
	return out, nil
}

// Ping checks that the store is reachable.
func (r *ReadingSQLite) Ping(ctx context.Context) error {
	return persistenceErr("ping", r.db.PingContext(ctx))
}

func scanReading(rows *sql.Rows) (models.StoredReading, error) {
	var sr models.StoredReading
	var ph, volt, cdom, algae, plastic sql.NullFloat64
	var confidence, temperature, distance sql.NullFloat64
	var turbidity, classification, status sql.NullString
	var alert string
	var tsNano int64
	if err := rows.Scan(
		&sr.ID,
		&ph, &volt, &turbidity,
		&cdom, &algae, &plastic,
		&classification, &confidence,
		&temperature, &distance, &status,
		&alert, &tsNano,
	); err != nil {
		return models.StoredReading{}, err
	}

	sr.PH = floatPtr(ph)
	sr.Voltage = floatPtr(volt)
	sr.Turbidity = stringPtr(turbidity)
	sr.CDOM = floatPtr(cdom)
	sr.Algae = floatPtr(algae)
	sr.Plastic = floatPtr(plastic)
	sr.Classification = stringPtr(classification)
	sr.Confidence = floatPtr(confidence)
	sr.Temperature = floatPtr(temperature)
	sr.Distance = floatPtr(distance)
	sr.Status = stringPtr(status)
	sr.Alert = models.Alert(alert)
	sr.Timestamp = time.Unix(0, tsNano).UTC()
	return sr, nil
}

// nullFloat/nullString turn absent optional fields into SQL NULL.
func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
