package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_LoadAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	records := sampleRecords()
	rows := sqlmock.NewRows([]string{"payload"})
	for _, r := range records {
		payload, err := json.Marshal(r)
		require.NoError(t, err)
		rows.AddRow(payload)
	}
	mock.ExpectQuery(`SELECT payload FROM applications ORDER BY position`).WillReturnRows(rows)

	store := NewPostgresStore(db, testLogger())
	got := store.LoadAll(context.Background())

	assert.Equal(t, records, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadAllQueryErrorTreatedAsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT payload FROM applications`).WillReturnError(errors.New("connection refused"))

	store := NewPostgresStore(db, testLogger())
	assert.Empty(t, store.LoadAll(context.Background()))
}

func TestPostgresStore_LoadAllSkipsMalformedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	good, err := json.Marshal(sampleRecords()[0])
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"payload"}).
		AddRow([]byte("{broken")).
		AddRow(good)
	mock.ExpectQuery(`SELECT payload FROM applications`).WillReturnRows(rows)

	store := NewPostgresStore(db, testLogger())
	got := store.LoadAll(context.Background())

	require.Len(t, got, 1)
	assert.Equal(t, "rec-1", got[0].ID)
}

func TestPostgresStore_SaveAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	records := sampleRecords()
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM applications`).WillReturnResult(sqlmock.NewResult(0, 0))
	for _, r := range records {
		mock.ExpectExec(`INSERT INTO applications`).
			WithArgs(r.ID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	store := NewPostgresStore(db, testLogger())
	require.NoError(t, store.SaveAll(context.Background(), records))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAllInsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM applications`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO applications`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	store := NewPostgresStore(db, testLogger())
	err = store.SaveAll(context.Background(), sampleRecords())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS applications`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
