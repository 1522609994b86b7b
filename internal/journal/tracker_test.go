package journal

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/bibkit/internal/model"
)

func setupTracker(t *testing.T) *Tracker {
	t.Helper()

	db, err := Open("", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tracker := NewTracker(db)
	if err := tracker.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize: %v", err)
	}
	return tracker
}

func changes(t *testing.T) []model.FieldChange {
	t.Helper()
	e := model.NewEntry("article")
	keyChange, ok := e.SetKey("Knuth1984")
	require.True(t, ok)
	titleChange, ok := e.SetField("title", "Literate Programming")
	require.True(t, ok)
	return []model.FieldChange{keyChange, titleChange}
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, "pgx", DriverFor("postgres://user@localhost/bib"))
	assert.Equal(t, "pgx", DriverFor("postgresql://localhost/bib"))
	assert.Equal(t, "sqlite3", DriverFor("journal.db"))
	assert.Equal(t, "sqlite3", DriverFor(":memory:"))
}

func TestTracker_RecordAndList(t *testing.T) {
	tracker := setupTracker(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return base }

	id, err := tracker.Record(ctx, changes(t))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	tracker.now = func() time.Time { return base.Add(time.Hour) }
	second, err := tracker.Record(ctx, changes(t)[:1])
	require.NoError(t, err)

	records, err := tracker.List(ctx, id)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{
		SaveID: id, Seq: 1, Key: "Knuth1984", Field: model.FieldCitationKey,
		OldValue: "", NewValue: "Knuth1984", RecordedAt: base,
	}, withUTC(records[0]))
	assert.Equal(t, "title", records[1].Field)

	all, err := tracker.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, second, all[2].SaveID)

	saves, err := tracker.Saves(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, id, saves[0].ID)
	assert.Equal(t, 2, saves[0].Changes)
	assert.Equal(t, 1, saves[1].Changes)
	assert.True(t, saves[0].RecordedAt.Equal(base))
}

func withUTC(r Record) Record {
	r.RecordedAt = r.RecordedAt.UTC()
	return r
}

func TestTracker_RecordNothing(t *testing.T) {
	tracker := setupTracker(t)
	id, err := tracker.Record(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, id)

	records, err := tracker.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTracker_RollbackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	insertErr := errors.New("constraint violated")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO field_changes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO field_changes").WillReturnError(insertErr)
	mock.ExpectRollback()

	_, err = NewTracker(db).Record(context.Background(), changes(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, insertErr))
	assert.Contains(t, err.Error(), "change 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTracker_BeginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	_, err = NewTracker(db).Record(context.Background(), changes(t))
	assert.True(t, errors.Is(err, sql.ErrConnDone))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTracker_InitializeFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS field_changes").WillReturnError(errors.New("read-only"))

	err = NewTracker(db).Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize journal table")
}

func TestTracker_ListQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT save_id").WithArgs("abc").WillReturnError(errors.New("gone"))

	_, err = NewTracker(db).List(context.Background(), "abc")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, asTime("2024-03-01 12:00:00+00:00").Equal(want))
	assert.True(t, asTime([]byte("2024-03-01T12:00:00Z")).Equal(want))
	assert.True(t, asTime(want).Equal(want))
	assert.True(t, asTime(42).IsZero())
}
