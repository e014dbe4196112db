// Package fsys abstracts directory access behind an opaque capability,
// mirroring the browser File System Access model: a capability grants
// enumeration of one directory for the current session and is never
// serialized or persisted. Implementations exist for the host filesystem
// and in memory.
package fsys

import (
	"context"
	"iter"
)

// Kind discriminates directory entries.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Entry is a single name yielded by enumerating a directory. Directory
// entries are themselves capabilities (see Directory); file entries can
// read their bytes (see File).
type Entry interface {
	Name() string
	Kind() Kind
}

// File is a file entry. Reading bytes is opaque to the protocol core and
// only used when serving content through a live session.
type File interface {
	Entry
	ReadBytes(ctx context.Context) ([]byte, error)
}

// Directory is a directory entry, usable as a capability in its own right.
type Directory interface {
	Entry
	Capability
}

// Capability grants enumeration access to one directory. Enumerate yields
// entries lazily in host-dependent order; it stops early when the consumer
// does. A non-nil error terminates the sequence: the underlying grant can
// be revoked at any time, so consumers must treat enumeration failure as
// loss of liveness, not as fatal.
type Capability interface {
	Name() string
	Enumerate(ctx context.Context) iter.Seq2[Entry, error]
}

// Picker requests directory access interactively or from configuration.
// The id, when the host supports it, asks for the same directory that was
// granted under that id before. Errors are common.ErrUserCancelled when
// the grant was dismissed and common.ErrPermissionDenied when it was
// refused; cancellation must be treated by callers as a silent no-op.
type Picker interface {
	RequestDirectoryAccess(ctx context.Context, id string) (Capability, error)
}
