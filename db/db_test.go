// ABOUTME: Tests for the SQLite store backend
// ABOUTME: Uses in-memory databases loaded from the seed dataset
package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

func setupSeededStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath, store.Seed(refTime))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	if count != 6 {
		t.Errorf("Expected 6 tables, got %d", count)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("Expected WAL mode, got %s", mode)
	}
}

func TestOpenDatabaseInvalidPath(t *testing.T) {
	_, err := OpenDatabase("/invalid/nonexistent/path/that/cannot/be/created/test.db")
	if err == nil {
		t.Errorf("Expected error for invalid path, but OpenDatabase succeeded")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	s := setupSeededStore(t)
	seed := store.Seed(refTime)

	got, err := store.Snapshot(s)
	require.NoError(t, err)

	require.Len(t, got.Clients, len(seed.Clients))
	require.Len(t, got.Policies, len(seed.Policies))
	require.Len(t, got.Tasks, len(seed.Tasks))
	require.Len(t, got.Communications, len(seed.Communications))

	// Insertion order survives the database.
	for i := range seed.Clients {
		assert.Equal(t, seed.Clients[i].ID, got.Clients[i].ID)
	}

	for i := range seed.Policies {
		assert.True(t, seed.Policies[i].EndDate.Equal(got.Policies[i].EndDate), "end date of %s", seed.Policies[i].ID)
	}

	ignoreTimes := cmpopts.IgnoreTypes(time.Time{}, (*time.Time)(nil))
	if diff := cmp.Diff(seed.Communications, got.Communications, ignoreTimes); diff != "" {
		t.Errorf("communications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(seed.Reports, got.Reports, ignoreTimes); diff != "" {
		t.Errorf("reports mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreLookups(t *testing.T) {
	s := setupSeededStore(t)

	t.Run("missing client", func(t *testing.T) {
		c, err := s.Client("CL-0000")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("nullable task client", func(t *testing.T) {
		task, err := s.Task("TK-4004")
		require.NoError(t, err)
		require.NotNil(t, task)
		assert.Nil(t, task.ClientID)

		task, err = s.Task("TK-4001")
		require.NoError(t, err)
		require.NotNil(t, task.ClientID)
		assert.Equal(t, "CL-1001", *task.ClientID)
	})

	t.Run("related policy", func(t *testing.T) {
		o, err := s.Opportunity("OP-3002")
		require.NoError(t, err)
		require.NotNil(t, o.RelatedPolicyID)
		assert.Equal(t, "PL-2004", *o.RelatedPolicyID)
	})

	t.Run("policies by client", func(t *testing.T) {
		policies, err := s.PoliciesByClient("CL-1004")
		require.NoError(t, err)
		require.Len(t, policies, 2)
		assert.Equal(t, models.PolicyTypeBusiness, policies[0].Type)
	})
}

func TestStoreWrites(t *testing.T) {
	s := setupSeededStore(t)

	t.Run("add client", func(t *testing.T) {
		c := &models.Client{FirstName: "Ana", LastName: "Ruiz", Status: models.ClientStatusPending}
		require.NoError(t, s.AddClient(c))
		got, err := s.Client(c.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Ana Ruiz", got.FullName())
	})

	t.Run("update missing client", func(t *testing.T) {
		err := s.UpdateClient(&models.Client{ID: "CL-0000", FirstName: "X", LastName: "Y", Status: models.ClientStatusActive})
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})

	t.Run("task status transition persists", func(t *testing.T) {
		task, err := s.UpdateTaskStatus("TK-4002", models.TaskStatusCompleted)
		require.NoError(t, err)
		assert.NotNil(t, task.CompletedAt)

		reloaded, err := s.Task("TK-4002")
		require.NoError(t, err)
		assert.Equal(t, models.TaskStatusCompleted, reloaded.Status)
		assert.NotNil(t, reloaded.CompletedAt)
	})

	t.Run("task status invalid", func(t *testing.T) {
		_, err := s.UpdateTaskStatus("TK-4002", "done")
		assert.Error(t, err)
	})

	t.Run("opportunity status", func(t *testing.T) {
		o, err := s.UpdateOpportunityStatus("OP-3001", models.OpportunityStatusRecommended)
		require.NoError(t, err)
		assert.Equal(t, models.OpportunityStatusRecommended, o.Status)

		_, err = s.UpdateOpportunityStatus("OP-0000", models.OpportunityStatusRecommended)
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})

	t.Run("add communication with attachments", func(t *testing.T) {
		c := &models.Communication{ClientID: "CL-1003", Type: models.CommunicationEmail, Status: models.CommunicationStatusSent, Attachments: []string{"a.pdf", "b.pdf"}}
		require.NoError(t, s.AddCommunication(c))
		got, err := s.Communication(c.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.pdf", "b.pdf"}, got.Attachments)
	})
}

func TestSeedIfEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "crm.db"), nil)
	require.NoError(t, err)
	defer s.Close()

	seeded, err := s.SeedIfEmpty(store.Seed(refTime))
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = s.SeedIfEmpty(store.Seed(refTime))
	require.NoError(t, err)
	assert.False(t, seeded, "second run must keep existing rows")

	clients, err := s.Clients()
	require.NoError(t, err)
	assert.Len(t, clients, 11)
}
