package handlecache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamgupta1319/EasyShare/internal/fsys"
)

func TestPutGetDelete(t *testing.T) {
	c := New()
	assert.Zero(t, c.Len())

	dir := fsys.NewMemDir("docs")
	c.Put("folder_1", dir)

	got, ok := c.Get("folder_1")
	require.True(t, ok)
	assert.Equal(t, "docs", got.Name())
	assert.Equal(t, 1, c.Len())

	_, ok = c.Get("folder_2")
	assert.False(t, ok)

	c.Delete("folder_1")
	_, ok = c.Get("folder_1")
	assert.False(t, ok)
	assert.Zero(t, c.Len())

	// Deleting an absent id is a no-op.
	c.Delete("folder_1")
}

func TestPutReplacesPrevious(t *testing.T) {
	c := New()
	c.Put("folder_1", fsys.NewMemDir("old"))
	c.Put("folder_1", fsys.NewMemDir("new"))

	got, ok := c.Get("folder_1")
	require.True(t, ok)
	assert.Equal(t, "new", got.Name())
	assert.Equal(t, 1, c.Len())
}

func TestProbe(t *testing.T) {
	ctx := context.Background()
	c := New()

	assert.False(t, c.Probe(ctx, "missing"))

	c.Put("healthy", fsys.NewMemDir("docs", fsys.NewMemFile("a.txt", nil)))
	assert.True(t, c.Probe(ctx, "healthy"))

	// An empty directory still enumerates cleanly.
	c.Put("empty", fsys.NewMemDir("empty"))
	assert.True(t, c.Probe(ctx, "empty"))

	revoked := fsys.NewMemDir("gone", fsys.NewMemFile("a.txt", nil))
	revoked.EnumerateErr = errors.New("grant revoked")
	revoked.FailAfter = 0
	c.Put("revoked", revoked)
	assert.False(t, c.Probe(ctx, "revoked"))

	// Probe reports health; eviction is the caller's decision.
	_, ok := c.Get("revoked")
	assert.True(t, ok)
}
