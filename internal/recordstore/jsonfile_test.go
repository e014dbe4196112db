package recordstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestUsersAppendAndLookup(t *testing.T) {
	users := newTestStore(t).Users()
	ctx := context.Background()

	require.NoError(t, users.Append(ctx, &models.User{
		ID:    "user-1",
		Email: "a@example.com",
	}))

	byID, err := users.ByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)

	byEmail, err := users.ByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", byEmail.ID)

	_, err = users.ByID(ctx, "user-2")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = users.ByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFilesLifecycle(t *testing.T) {
	files := newTestStore(t).Files()
	ctx := context.Background()

	rec := &models.FileRecord{
		ID:      "f1",
		OwnerID: "user-1",
		Name:    "report.pdf",
		Size:    1024,
	}
	require.NoError(t, files.Append(ctx, rec))

	got, err := files.ByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.Name)

	got.Name = "renamed.pdf"
	got.SharedWith = models.StringSet{"friend@example.com"}
	require.NoError(t, files.Replace(ctx, "f1", got))

	reloaded, err := files.ByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "renamed.pdf", reloaded.Name)
	assert.True(t, reloaded.SharedWith.Contains("friend@example.com"))

	require.NoError(t, files.Delete(ctx, "f1"))
	_, err = files.ByID(ctx, "f1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Deleting what is already gone is not an error.
	require.NoError(t, files.Delete(ctx, "f1"))
}

func TestFilesReplaceMissing(t *testing.T) {
	files := newTestStore(t).Files()
	err := files.Replace(context.Background(), "nope", &models.FileRecord{ID: "nope"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFilesQueries(t *testing.T) {
	files := newTestStore(t).Files()
	ctx := context.Background()

	require.NoError(t, files.Append(ctx, &models.FileRecord{
		ID: "f1", OwnerID: "user-1", Name: "a.txt",
		SharedWith: models.StringSet{"guest@example.com"},
	}))
	require.NoError(t, files.Append(ctx, &models.FileRecord{
		ID: "f2", OwnerID: "user-1", Name: "b.txt",
	}))
	require.NoError(t, files.Append(ctx, &models.FileRecord{
		ID: "f3", OwnerID: "user-2", Name: "c.txt",
		SharedWith: models.StringSet{"guest@example.com", "other@example.com"},
	}))

	owned, err := files.ByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	shared, err := files.SharedWith(ctx, "guest@example.com")
	require.NoError(t, err)
	require.Len(t, shared, 2)

	none, err := files.SharedWith(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFolderMetaSurvivesRoundTrip(t *testing.T) {
	files := newTestStore(t).Files()
	ctx := context.Background()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, files.Append(ctx, &models.FileRecord{
		ID:      "folder_1",
		OwnerID: "user-1",
		Name:    "docs",
		Folder: &models.FolderMeta{
			Structure: &models.TreeNode{
				Name: "docs",
				Path: "/",
				Kind: models.KindDirectory,
				Children: []*models.TreeNode{
					{Name: "a.txt", Path: "/a.txt", Kind: models.KindFile},
				},
			},
			IsConnected:   true,
			ConnectedBy:   "user-1",
			LastConnected: t0,
		},
	}))

	got, err := files.ByID(ctx, "folder_1")
	require.NoError(t, err)
	require.True(t, got.IsFolder())
	assert.Equal(t, "user-1", got.Folder.ConnectedBy)
	assert.True(t, got.Folder.LastConnected.Equal(t0))
	require.NotNil(t, got.Folder.Structure)
	assert.NotNil(t, got.Folder.Structure.FindChild("a.txt"))
}
