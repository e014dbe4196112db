// Package scanner produces bounded, structure-only snapshots of a
// directory capability. Snapshots carry names and kinds but never file
// contents; they are what guests see when the owner has no live session.
package scanner

import (
	"context"

	"github.com/shivamgupta1319/EasyShare/internal/fsys"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

const (
	DefaultMaxDepth    = 2
	DefaultMaxSiblings = 50
)

const (
	limitLabel       = "...(more items)"
	placeholderLabel = "...(click to explore)"
)

// Options bound a scan. Zero values take the defaults above.
type Options struct {
	// MaxDepth is how many directory levels to descend. Directories at
	// the limit are emitted with a single placeholder child instead of
	// their real contents.
	MaxDepth int
	// MaxSiblings caps entries listed per directory. A truncated listing
	// ends with exactly one limit marker, which does not count toward
	// the cap.
	MaxSiblings int
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxSiblings <= 0 {
		o.MaxSiblings = DefaultMaxSiblings
	}
	return o
}

// Scan walks cap to the configured bounds and returns a snapshot tree.
// Children appear in whatever order the capability yields them; the order
// is host-dependent and unspecified. Enumeration failures are captured on
// the affected node's Error field, keeping any children already collected;
// one bad subdirectory never aborts the whole scan.
func Scan(ctx context.Context, cap fsys.Capability, opts Options) *models.TreeNode {
	opts = opts.withDefaults()
	return scanDir(ctx, cap, "/", 0, opts)
}

func scanDir(ctx context.Context, cap fsys.Capability, path string, depth int, opts Options) *models.TreeNode {
	node := &models.TreeNode{
		Name: cap.Name(),
		Path: path,
		Kind: models.KindDirectory,
	}

	count := 0
	for entry, err := range cap.Enumerate(ctx) {
		if err != nil {
			node.Error = err.Error()
			break
		}
		if count >= opts.MaxSiblings {
			node.Children = append(node.Children, &models.TreeNode{
				Name: limitLabel,
				Kind: models.KindLimit,
			})
			break
		}
		count++

		childPath := joinPath(path, entry.Name())
		switch entry.Kind() {
		case fsys.KindFile:
			node.Children = append(node.Children, &models.TreeNode{
				Name: entry.Name(),
				Path: childPath,
				Kind: models.KindFile,
			})
		case fsys.KindDirectory:
			sub, ok := entry.(fsys.Capability)
			if !ok {
				// Directory entry without a usable capability: record it
				// as unexplored.
				node.Children = append(node.Children, placeholderDir(entry.Name(), childPath))
				continue
			}
			if depth+1 < opts.MaxDepth {
				node.Children = append(node.Children, scanDir(ctx, sub, childPath, depth+1, opts))
			} else {
				node.Children = append(node.Children, placeholderDir(entry.Name(), childPath))
			}
		}
	}
	return node
}

// placeholderDir represents a directory past the depth limit: one
// placeholder child instead of real contents.
func placeholderDir(name, path string) *models.TreeNode {
	return &models.TreeNode{
		Name: name,
		Path: path,
		Kind: models.KindDirectory,
		Children: []*models.TreeNode{{
			Name: placeholderLabel,
			Kind: models.KindPlaceholder,
		}},
	}
}

func joinPath(parent, name string) string {
	if parent == "" || parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}
