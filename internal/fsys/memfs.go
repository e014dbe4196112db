package fsys

import (
	"context"
	"iter"

	"github.com/shivamgupta1319/EasyShare/internal/common"
)

// MemDir is an in-memory directory capability. It backs tests and the
// agent's self-checks, and can simulate a grant being revoked mid-listing
// via EnumerateErr.
type MemDir struct {
	DirName string
	Entries []Entry

	// EnumerateErr, when non-nil, terminates enumeration after FailAfter
	// entries have been yielded, as if the grant had been withdrawn.
	EnumerateErr error
	FailAfter    int
}

// NewMemDir builds a directory with the given entries.
func NewMemDir(name string, entries ...Entry) *MemDir {
	return &MemDir{DirName: name, Entries: entries}
}

func (d *MemDir) Name() string { return d.DirName }

func (d *MemDir) Kind() Kind { return KindDirectory }

func (d *MemDir) Enumerate(ctx context.Context) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for i, e := range d.Entries {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if d.EnumerateErr != nil && i >= d.FailAfter {
				yield(nil, d.EnumerateErr)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if d.EnumerateErr != nil && d.FailAfter >= len(d.Entries) {
			yield(nil, d.EnumerateErr)
		}
	}
}

// MemFile is an in-memory file entry.
type MemFile struct {
	FileName string
	Data     []byte
}

// NewMemFile builds a file entry with the given contents.
func NewMemFile(name string, data []byte) *MemFile {
	return &MemFile{FileName: name, Data: data}
}

func (f *MemFile) Name() string { return f.FileName }

func (f *MemFile) Kind() Kind { return KindFile }

func (f *MemFile) ReadBytes(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]byte, len(f.Data))
	copy(out, f.Data)
	return out, nil
}

// MemPicker hands out fixed capabilities by id, or Err for every request.
type MemPicker struct {
	Grants map[string]Capability
	Err    error
}

func (p *MemPicker) RequestDirectoryAccess(ctx context.Context, id string) (Capability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	if cap, ok := p.Grants[id]; ok {
		return cap, nil
	}
	// No grant behaves like a dismissed picker.
	return nil, common.ErrUserCancelled
}
