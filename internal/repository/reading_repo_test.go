package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"aquabot_telemetry/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

var readingColumns = []string{
	"id", "ph", "voltage", "turbidity", "cdom", "algae", "plastic",
	"classification", "confidence", "temperature", "distance", "status", "alert", "ts_unix_nano",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestAppend_Success_AssignsIDTimestampAndAlert(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertReadingSQL)).
		WithArgs(
			sqlmock.AnyArg(),
			7.2, nil, nil,
			nil, nil, nil,
			nil, nil,
			26.5, 45.0, "Obstacle Left",
			"turn_left",
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	before := time.Now().UTC()
	got, err := repo.Append(ctx(t), models.Reading{
		PH:          f64(7.2),
		Temperature: f64(26.5),
		Distance:    f64(45),
		Status:      str("Obstacle Left"),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got.Alert != models.AlertTurnLeft {
		t.Fatalf("alert: got %q", got.Alert)
	}
	if got.Timestamp.Before(before) || got.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp not assigned as UTC now: %v", got.Timestamp)
	}
	if *got.Distance != 45 || got.StatusText() != "Obstacle Left" {
		t.Fatalf("fields not carried: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_KeepsSuppliedTimestampInUTC(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	loc := time.FixedZone("UTC+5:30", 5*3600+1800)
	supplied := time.Date(2025, 3, 1, 10, 0, 0, 0, loc)

	mock.ExpectExec("INSERT INTO readings").
		WithArgs(
			sqlmock.AnyArg(),
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
			"forward",
			supplied.UnixNano(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := repo.Append(ctx(t), models.Reading{Timestamp: &supplied})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !got.Timestamp.Equal(supplied) || got.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp: got %v want %v in UTC", got.Timestamp, supplied)
	}
	if got.Reading.Timestamp != nil {
		t.Fatalf("embedded timestamp must be cleared on the stored form")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_DBError_IsPersistenceError(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	mock.ExpectExec("INSERT INTO readings").WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Append(ctx(t), models.Reading{})
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if pe.Op != "append" {
		t.Fatalf("op: got %q", pe.Op)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_OutOfRangeTimestampNeverReachesDB(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	far := time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.Append(ctx(t), models.Reading{Timestamp: &far})
	if !errors.Is(err, models.ErrTimestampOutOfRange) {
		t.Fatalf("expected ErrTimestampOutOfRange, got %v", err)
	}
	if IsPersistence(err) {
		t.Fatalf("range error reported as a store failure: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestRecent_ScansNullsAndOrder(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	newer := time.Date(2025, 1, 1, 10, 0, 1, 0, time.UTC)
	older := newer.Add(-time.Second)

	rows := sqlmock.NewRows(readingColumns).
		AddRow("b", 7.0, 1.2, "CLEAN", 20.0, 30.0, 40.0, "Clean Water", 88.5, 25.0, 100.0, "Patrolling (Outbound)", "forward", newer.UnixNano()).
		AddRow("a", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "forward", older.UnixNano())

	mock.ExpectQuery(regexp.QuoteMeta(selectRecentReadingsSQL)).
		WithArgs(10).
		WillReturnRows(rows)

	got, err := repo.Recent(ctx(t), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if got[0].PH == nil || *got[0].PH != 7.0 || got[0].ClassificationText() != "Clean Water" {
		t.Fatalf("values not scanned: %+v", got[0])
	}
	if !got[0].Timestamp.Equal(newer) {
		t.Fatalf("timestamp: got %v", got[0].Timestamp)
	}
	if got[1].PH != nil || got[1].Status != nil || got[1].Distance != nil {
		t.Fatalf("NULL columns must stay nil: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestRecent_EmptyStoreReturnsEmptySlice(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	mock.ExpectQuery("SELECT id").WillReturnRows(sqlmock.NewRows(readingColumns))

	got, err := repo.Recent(ctx(t), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestRecent_InvalidLimit(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	repo := NewReadingSQLite(db)

	for _, limit := range []int{0, -1} {
		if _, err := repo.Recent(ctx(t), limit); !errors.Is(err, ErrInvalidLimit) {
			t.Fatalf("limit %d: expected ErrInvalidLimit, got %v", limit, err)
		}
	}
	// no query must have been issued
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestRecent_QueryAndScanErrors(t *testing.T) {
	t.Parallel()

	t.Run("query error", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewReadingSQLite(db)
		mock.ExpectQuery("SELECT id").WillReturnError(errors.New("connection refused"))

		_, err := repo.Recent(ctx(t), 10)
		if !IsPersistence(err) {
			t.Fatalf("expected PersistenceError, got %v", err)
		}
	})

	t.Run("scan error", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewReadingSQLite(db)
		rows := sqlmock.NewRows(readingColumns).
			// ts_unix_nano is not an integer
			AddRow("x", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "forward", "yesterday")
		mock.ExpectQuery("SELECT id").WillReturnRows(rows)

		_, err := repo.Recent(ctx(t), 10)
		if !IsPersistence(err) {
			t.Fatalf("expected PersistenceError, got %v", err)
		}
	})
}

func TestPing(t *testing.T) {
	t.Parallel()
	db, _ := newMock(t)
	repo := NewReadingSQLite(db)

	if err := repo.Ping(ctx(t)); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
