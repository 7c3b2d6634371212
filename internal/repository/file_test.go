package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rkbisoi/demo-loan-app-api/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.FatalLevel)
	return log
}

func sampleRecords() []models.ApplicationRecord {
	code := "D_017"
	return []models.ApplicationRecord{
		{
			ApplicationInput: models.ApplicationInput{
				Name:             "Ana",
				DateOfBirth:      "1990-01-01",
				EmploymentStatus: "employed",
				Income:           50000,
				CarValue:         20000,
				DepositAmount:    5000,
				LoanAmount:       15000,
			},
			ID:        "rec-1",
			Status:    models.StatusApproved,
			CreatedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		},
		{
			ApplicationInput: models.ApplicationInput{
				Name:             "Bob",
				DateOfBirth:      "1985-06-15",
				EmploymentStatus: "unemployed",
				Income:           0,
				CarValue:         10000,
				DepositAmount:    2000,
				LoanAmount:       8000,
			},
			ID:           "rec-2",
			Status:       models.StatusRejected,
			DecisionCode: &code,
			CreatedAt:    time.Date(2026, 8, 25, 11, 0, 0, 0, time.UTC),
		},
	}
}

func TestFileStore_LoadAllMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "applications.json"), testLogger())

	records := store.LoadAll(context.Background())
	assert.Empty(t, records)
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "applications.json"), testLogger())
	want := sampleRecords()

	require.NoError(t, store.SaveAll(context.Background(), want))
	got := store.LoadAll(context.Background())

	assert.Equal(t, want, got)
}

func TestFileStore_PreservesInsertionOrder(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "applications.json"), testLogger())
	records := sampleRecords()

	require.NoError(t, store.SaveAll(context.Background(), records[:1]))
	loaded := store.LoadAll(context.Background())
	loaded = append(loaded, records[1])
	require.NoError(t, store.SaveAll(context.Background(), loaded))

	got := store.LoadAll(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "rec-1", got[0].ID)
	assert.Equal(t, "rec-2", got[1].ID)
}

func TestFileStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applications.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path, testLogger())
	assert.Empty(t, store.LoadAll(context.Background()))
}

func TestFileStore_SaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applications.json")
	store := NewFileStore(path, testLogger())

	require.NoError(t, store.SaveAll(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestFileStore_SaveUnwritableDirFails(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing", "applications.json"), testLogger())

	err := store.SaveAll(context.Background(), sampleRecords())
	assert.Error(t, err)
}
