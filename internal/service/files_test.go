package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
	"github.com/shivamgupta1319/EasyShare/internal/recordstore"
)

func newTestService(t *testing.T, recs ...*models.FileRecord) (*Files, recordstore.Files) {
	t.Helper()
	store, err := recordstore.NewJSONStore(t.TempDir())
	require.NoError(t, err)
	files := store.Files()
	for _, r := range recs {
		require.NoError(t, files.Append(context.Background(), r))
	}
	return NewFiles(files), files
}

func fileRecord(id string) *models.FileRecord {
	return &models.FileRecord{
		ID:      id,
		OwnerID: "user-owner",
		Name:    "report.pdf",
		Type:    "application/pdf",
		Size:    1024,
	}
}

func folderRecord(id string) *models.FileRecord {
	return &models.FileRecord{
		ID:      id,
		OwnerID: "user-owner",
		Name:    "docs",
		Folder: &models.FolderMeta{
			Structure: &models.TreeNode{Name: "docs", Kind: models.KindDirectory},
		},
	}
}

func TestShareAddsGranteeOnce(t *testing.T) {
	svc, files := newTestService(t, fileRecord("f1"))
	ctx := context.Background()

	rec, err := svc.Share(ctx, "f1", "friend@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.StringSet{"friend@example.com"}, rec.SharedWith)

	// Repeat grant: unchanged record, reported as already shared, and the
	// stored copy stays at one occurrence.
	rec, err = svc.Share(ctx, "f1", "friend@example.com")
	assert.ErrorIs(t, err, common.ErrAlreadyShared)
	require.NotNil(t, rec)
	assert.Equal(t, models.StringSet{"friend@example.com"}, rec.SharedWith)

	stored, err := files.ByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, models.StringSet{"friend@example.com"}, stored.SharedWith)
}

func TestShareValidation(t *testing.T) {
	svc, _ := newTestService(t, fileRecord("f1"))
	ctx := context.Background()

	_, err := svc.Share(ctx, "", "friend@example.com")
	assert.ErrorIs(t, err, common.ErrInvalidRequest)

	_, err = svc.Share(ctx, "f1", "")
	assert.ErrorIs(t, err, common.ErrInvalidRequest)

	_, err = svc.Share(ctx, "missing", "friend@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestToggleDownloadRoundTrip(t *testing.T) {
	svc, files := newTestService(t, fileRecord("f1"))
	ctx := context.Background()

	rec, err := svc.ToggleDownload(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, rec.AllowDownload)

	rec, err = svc.ToggleDownload(ctx, "f1")
	require.NoError(t, err)
	assert.False(t, rec.AllowDownload)

	stored, err := files.ByID(ctx, "f1")
	require.NoError(t, err)
	assert.False(t, stored.AllowDownload)
}

func TestToggleDownloadRejectsFolders(t *testing.T) {
	svc, _ := newTestService(t, folderRecord("folder_1"))

	_, err := svc.ToggleDownload(context.Background(), "folder_1")
	assert.ErrorIs(t, err, common.ErrInvalidTarget)
}

func TestAssertConnectedStampsAndRefreshes(t *testing.T) {
	svc, files := newTestService(t, folderRecord("folder_1"))
	ctx := context.Background()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return t0 })

	rec, err := svc.AssertConnected(ctx, "folder_1", "user-owner")
	require.NoError(t, err)
	assert.True(t, rec.Folder.IsConnected)
	assert.Equal(t, "user-owner", rec.Folder.ConnectedBy)
	assert.Equal(t, t0, rec.Folder.LastConnected)

	// The heartbeat: a later assertion only moves the timestamp forward.
	svc.WithClock(func() time.Time { return t0.Add(2 * time.Minute) })
	rec, err = svc.AssertConnected(ctx, "folder_1", "user-owner")
	require.NoError(t, err)
	assert.Equal(t, t0.Add(2*time.Minute), rec.Folder.LastConnected)

	stored, err := files.ByID(ctx, "folder_1")
	require.NoError(t, err)
	assert.True(t, stored.Folder.LastConnected.Equal(t0.Add(2*time.Minute)))
}

func TestAssertConnectedErrors(t *testing.T) {
	svc, _ := newTestService(t, fileRecord("f1"))
	ctx := context.Background()

	_, err := svc.AssertConnected(ctx, "", "user-owner")
	assert.ErrorIs(t, err, common.ErrInvalidRequest)

	_, err = svc.AssertConnected(ctx, "folder_missing", "user-owner")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.AssertConnected(ctx, "f1", "user-owner")
	assert.ErrorIs(t, err, common.ErrInvalidTarget)
}

func TestCanView(t *testing.T) {
	svc, _ := newTestService(t)

	rec := fileRecord("f1")
	rec.SharedWith = models.StringSet{"friend@example.com"}

	assert.True(t, svc.CanView(rec, "user-owner", "owner@example.com"))
	assert.True(t, svc.CanView(rec, "user-guest", "friend@example.com"))
	assert.False(t, svc.CanView(rec, "user-guest", "stranger@example.com"))
	assert.False(t, svc.CanView(nil, "user-owner", "owner@example.com"))
}
