package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is where the server mounts the static handler for locally
// stored uploads.
const URLPrefix = "/uploads/"

// Local stores uploads on disk. Each object gets a unique filename prefix
// so colliding upload names never overwrite each other.
type Local struct {
	dir string
}

// NewLocal creates the uploads directory if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(ctx context.Context, name string, r io.Reader) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := uuid.NewString() + "-" + sanitizeName(name)
	path := filepath.Join(l.dir, stored)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload: %w", err)
	}
	size, err := io.Copy(dst, r)
	closeErr := dst.Close()
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write upload: %w", err)
	}
	if closeErr != nil {
		os.Remove(path)
		return nil, fmt.Errorf("close upload: %w", closeErr)
	}

	return &Object{URL: URLPrefix + stored, Size: size}, nil
}

// DownloadURL is the stored URL itself: local objects are served
// statically by the server.
func (l *Local) DownloadURL(ctx context.Context, storedURL string) (string, error) {
	return storedURL, nil
}

func (l *Local) Remove(ctx context.Context, storedURL string) error {
	name, ok := strings.CutPrefix(storedURL, URLPrefix)
	if !ok || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Handler serves the uploads directory for URLPrefix routes.
func (l *Local) Handler() http.Handler {
	return http.StripPrefix(URLPrefix, http.FileServer(http.Dir(l.dir)))
}

// sanitizeName strips any path components from an upload name.
func sanitizeName(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) {
		return "file"
	}
	return name
}
