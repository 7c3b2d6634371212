package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rkbisoi/demo-loan-app-api/internal/models"
	"github.com/rkbisoi/demo-loan-app-api/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.FatalLevel)
	return log
}

func TestSnapshot_WritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	store := repository.NewFileStore(filepath.Join(dir, "applications.json"), testLogger())

	records := []models.ApplicationRecord{{
		ApplicationInput: models.ApplicationInput{Name: "Ana", LoanAmount: 15000},
		ID:               "rec-1",
		Status:           models.StatusApproved,
		CreatedAt:        time.Now().UTC(),
	}}
	require.NoError(t, store.SaveAll(context.Background(), records))

	backupDir := filepath.Join(dir, "backups")
	s := NewScheduler(store, backupDir, testLogger())
	require.NoError(t, s.Snapshot(context.Background()))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^applications-\d{8}T\d{6}\.json$`, entries[0].Name())

	data, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)
	var got []models.ApplicationRecord
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "rec-1", got[0].ID)
}

func TestSnapshot_EmptyStoreWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	store := repository.NewFileStore(filepath.Join(dir, "applications.json"), testLogger())

	backupDir := filepath.Join(dir, "backups")
	s := NewScheduler(store, backupDir, testLogger())
	require.NoError(t, s.Snapshot(context.Background()))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestStart_InvalidScheduleFails(t *testing.T) {
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "applications.json"), testLogger())
	s := NewScheduler(store, t.TempDir(), testLogger())

	assert.Error(t, s.Start("not a cron expression"))
}
