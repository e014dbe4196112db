package fsys

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/shivamgupta1319/EasyShare/internal/common"
)

// readDirBatch keeps enumeration lazy: large directories are read in
// chunks so a capped scan never lists the whole directory.
const readDirBatch = 64

// osDir is a capability over a host filesystem directory.
type osDir struct {
	name string
	path string
}

// OpenDir returns a capability for the directory at path.
func OpenDir(path string) (Capability, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, mapFSErr(err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", path)
	}
	return &osDir{name: filepath.Base(path), path: path}, nil
}

func (d *osDir) Name() string { return d.name }

func (d *osDir) Kind() Kind { return KindDirectory }

func (d *osDir) Enumerate(ctx context.Context) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		f, err := os.Open(d.path)
		if err != nil {
			yield(nil, mapFSErr(err))
			return
		}
		defer f.Close()

		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			batch, err := f.ReadDir(readDirBatch)
			for _, de := range batch {
				if !yield(d.wrap(de), nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, mapFSErr(err))
				return
			}
		}
	}
}

func (d *osDir) wrap(de fs.DirEntry) Entry {
	child := filepath.Join(d.path, de.Name())
	if de.IsDir() {
		return &osDir{name: de.Name(), path: child}
	}
	return &osFile{name: de.Name(), path: child}
}

type osFile struct {
	name string
	path string
}

func (f *osFile) Name() string { return f.name }

func (f *osFile) Kind() Kind { return KindFile }

func (f *osFile) ReadBytes(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, mapFSErr(err)
	}
	return data, nil
}

func mapFSErr(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", common.ErrPermissionDenied, err)
	}
	return err
}

// PathPicker grants access to preconfigured paths, keyed by folder id.
// It is the non-interactive stand-in for a directory picker: an id with no
// configured path behaves as a dismissed dialog.
type PathPicker struct {
	// Default is used when no per-id path matches. Empty means no grant.
	Default string
	Paths   map[string]string
}

func (p *PathPicker) RequestDirectoryAccess(ctx context.Context, id string) (Capability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := p.Default
	if p.Paths != nil {
		if v, ok := p.Paths[id]; ok {
			path = v
		}
	}
	if path == "" {
		return nil, common.ErrUserCancelled
	}
	return OpenDir(path)
}
