package scanner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamgupta1319/EasyShare/internal/fsys"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

func TestScanMixedTree(t *testing.T) {
	root := fsys.NewMemDir("photos",
		fsys.NewMemFile("a.jpg", nil),
		fsys.NewMemDir("2024",
			fsys.NewMemFile("b.jpg", nil),
		),
	)

	tree := Scan(context.Background(), root, Options{})
	require.NotNil(t, tree)
	assert.Equal(t, "photos", tree.Name)
	assert.Equal(t, "/", tree.Path)
	assert.Equal(t, models.KindDirectory, tree.Kind)
	require.Len(t, tree.Children, 2)

	file := tree.FindChild("a.jpg")
	require.NotNil(t, file)
	assert.Equal(t, models.KindFile, file.Kind)
	assert.Equal(t, "/a.jpg", file.Path)

	sub := tree.FindChild("2024")
	require.NotNil(t, sub)
	assert.Equal(t, models.KindDirectory, sub.Kind)
	assert.Equal(t, "/2024", sub.Path)
	require.Len(t, sub.Children, 1)
	assert.Equal(t, "b.jpg", sub.Children[0].Name)
}

func TestScanDepthLimitYieldsPlaceholder(t *testing.T) {
	// depth 0 = root, depth 1 = level1; with MaxDepth 2 the directory at
	// depth 2 must not be descended into.
	deep := fsys.NewMemDir("level2",
		fsys.NewMemFile("hidden.txt", nil),
	)
	root := fsys.NewMemDir("root",
		fsys.NewMemDir("level1", deep),
	)

	tree := Scan(context.Background(), root, Options{MaxDepth: 2})

	level1 := tree.FindChild("level1")
	require.NotNil(t, level1)
	level2 := level1.FindChild("level2")
	require.NotNil(t, level2)
	assert.Equal(t, models.KindDirectory, level2.Kind)

	require.Len(t, level2.Children, 1)
	assert.Equal(t, models.KindPlaceholder, level2.Children[0].Kind)
	assert.Nil(t, level2.FindChild("hidden.txt"))
}

func TestScanSiblingCapAppendsSingleLimitMarker(t *testing.T) {
	entries := make([]fsys.Entry, 75)
	for i := range entries {
		entries[i] = fsys.NewMemFile(fmt.Sprintf("file-%03d.txt", i), nil)
	}
	root := fsys.NewMemDir("big", entries...)

	tree := Scan(context.Background(), root, Options{})

	// 50 real entries plus one marker, never 49+1.
	require.Len(t, tree.Children, DefaultMaxSiblings+1)
	assert.Equal(t, DefaultMaxSiblings, tree.CountKind(models.KindFile))
	assert.Equal(t, 1, tree.CountKind(models.KindLimit))
	assert.Equal(t, models.KindLimit, tree.Children[len(tree.Children)-1].Kind)
}

func TestScanUnderCapHasNoLimitMarker(t *testing.T) {
	entries := make([]fsys.Entry, DefaultMaxSiblings)
	for i := range entries {
		entries[i] = fsys.NewMemFile(fmt.Sprintf("file-%03d.txt", i), nil)
	}
	root := fsys.NewMemDir("exact", entries...)

	tree := Scan(context.Background(), root, Options{})

	assert.Len(t, tree.Children, DefaultMaxSiblings)
	assert.Zero(t, tree.CountKind(models.KindLimit))
}

func TestScanEnumerationErrorKeepsPartialChildren(t *testing.T) {
	root := fsys.NewMemDir("flaky",
		fsys.NewMemFile("one.txt", nil),
		fsys.NewMemFile("two.txt", nil),
		fsys.NewMemFile("three.txt", nil),
	)
	root.EnumerateErr = errors.New("grant revoked")
	root.FailAfter = 2

	tree := Scan(context.Background(), root, Options{})

	assert.Len(t, tree.Children, 2)
	assert.Contains(t, tree.Error, "grant revoked")
}

func TestScanErrorInSubdirDoesNotAbortSiblings(t *testing.T) {
	bad := fsys.NewMemDir("bad", fsys.NewMemFile("x", nil))
	bad.EnumerateErr = errors.New("permission withdrawn")
	bad.FailAfter = 0

	root := fsys.NewMemDir("root",
		bad,
		fsys.NewMemFile("ok.txt", nil),
	)

	tree := Scan(context.Background(), root, Options{})

	require.Len(t, tree.Children, 2)
	assert.Empty(t, tree.Error)

	badNode := tree.FindChild("bad")
	require.NotNil(t, badNode)
	assert.Contains(t, badNode.Error, "permission withdrawn")
	assert.Empty(t, badNode.Children)

	assert.NotNil(t, tree.FindChild("ok.txt"))
}

func TestScanEmptyDirectory(t *testing.T) {
	tree := Scan(context.Background(), fsys.NewMemDir("empty"), Options{})
	require.NotNil(t, tree)
	assert.Empty(t, tree.Children)
	assert.Empty(t, tree.Error)
}
