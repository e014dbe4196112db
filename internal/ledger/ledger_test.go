package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/fsys"
	"github.com/shivamgupta1319/EasyShare/internal/handlecache"
	"github.com/shivamgupta1319/EasyShare/internal/liveness"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "ledger.db"))
}

func TestRegisterAndLookup(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Register("folder_1", "photos", "user-1"))
	assert.True(t, l.Has("folder_1"))
	assert.False(t, l.Has("folder_2"))

	ref, err := l.Get("folder_1")
	require.NoError(t, err)
	assert.Equal(t, "photos", ref.FolderName)
	assert.Equal(t, "user-1", ref.OwnerID)
	assert.False(t, ref.Timestamp.IsZero())

	_, err = l.Get("folder_2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRegisterRefreshesTimestamp(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Register("folder_1", "photos", "user-1"))
	first, err := l.Get("folder_1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, l.Register("folder_1", "photos-renamed", "user-1"))

	second, err := l.Get("folder_1")
	require.NoError(t, err)
	assert.Equal(t, "photos-renamed", second.FolderName)
	assert.True(t, second.Timestamp.After(first.Timestamp))
}

func TestRegisterRejectsEmptyID(t *testing.T) {
	l := newTestLedger(t)
	assert.ErrorIs(t, l.Register("", "photos", "user-1"), common.ErrInvalidRequest)
}

func TestUnavailableStoreDegrades(t *testing.T) {
	// A directory path can't be opened as a sqlite file.
	l := New(t.TempDir())

	err := l.Register("folder_1", "photos", "user-1")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.False(t, l.Has("folder_1"))

	_, err = l.Get("folder_1")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestUnavailableStoreDoesNotBreakLiveness(t *testing.T) {
	// Folder memory is an optional convenience: with the ledger down, an
	// owner holding a live capability must still read as connected.
	l := New(t.TempDir())
	require.Error(t, l.Register("folder_1", "photos", "user-1"))

	rec := &models.FileRecord{
		ID:      "folder_1",
		OwnerID: "user-1",
		Name:    "photos",
		Folder: &models.FolderMeta{
			Structure: &models.TreeNode{Name: "photos", Kind: models.KindDirectory},
		},
	}
	handles := handlecache.New()
	handles.Put(rec.ID, fsys.NewMemDir("photos", fsys.NewMemFile("a.jpg", nil)))

	checker := liveness.NewChecker(handles)
	assert.Equal(t, liveness.StatusConnected, checker.Check(context.Background(), rec, true))
}
