package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

// JSONStore keeps each collection as a flat JSON array in its own file and
// rewrites the whole array on every mutation. A process-local mutex
// serializes access; there is no cross-process coordination, so concurrent
// writers race and the later write wins in full. That is the product's
// documented, accepted weakness; use the Postgres backend if it matters.
type JSONStore struct {
	users *jsonCollection[models.User]
	files *jsonCollection[models.FileRecord]
}

// NewJSONStore opens (creating if needed) users.json and files.json under
// dir.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONStore{
		users: &jsonCollection[models.User]{path: filepath.Join(dir, "users.json")},
		files: &jsonCollection[models.FileRecord]{path: filepath.Join(dir, "files.json")},
	}, nil
}

func (s *JSONStore) Users() Users { return &jsonUsers{c: s.users} }
func (s *JSONStore) Files() Files { return &jsonFiles{c: s.files} }

// jsonCollection is one JSON-array file with read-modify-write access.
type jsonCollection[T any] struct {
	mu   sync.Mutex
	path string
}

func (c *jsonCollection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	return items, nil
}

func (c *jsonCollection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	// Temp-file-and-rename keeps a crashed write from truncating the
	// collection.
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// all returns a copy of the collection.
func (c *jsonCollection[T]) all() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// update runs fn over the loaded collection and writes back whatever it
// returns.
func (c *jsonCollection[T]) update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load()
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.save(next)
}

type jsonUsers struct {
	c *jsonCollection[models.User]
}

func (u *jsonUsers) All(ctx context.Context) ([]models.User, error) {
	return u.c.all()
}

func (u *jsonUsers) ByID(ctx context.Context, id string) (*models.User, error) {
	users, err := u.c.all()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (u *jsonUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := u.c.all()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (u *jsonUsers) Append(ctx context.Context, user *models.User) error {
	return u.c.update(func(users []models.User) ([]models.User, error) {
		return append(users, *user), nil
	})
}

type jsonFiles struct {
	c *jsonCollection[models.FileRecord]
}

func (f *jsonFiles) All(ctx context.Context) ([]models.FileRecord, error) {
	return f.c.all()
}

func (f *jsonFiles) ByID(ctx context.Context, id string) (*models.FileRecord, error) {
	recs, err := f.c.all()
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].ID == id {
			return &recs[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *jsonFiles) ByOwner(ctx context.Context, ownerID string) ([]models.FileRecord, error) {
	recs, err := f.c.all()
	if err != nil {
		return nil, err
	}
	var out []models.FileRecord
	for _, r := range recs {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *jsonFiles) SharedWith(ctx context.Context, email string) ([]models.FileRecord, error) {
	recs, err := f.c.all()
	if err != nil {
		return nil, err
	}
	var out []models.FileRecord
	for _, r := range recs {
		if r.SharedWith.Contains(email) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *jsonFiles) Append(ctx context.Context, rec *models.FileRecord) error {
	return f.c.update(func(recs []models.FileRecord) ([]models.FileRecord, error) {
		return append(recs, *rec), nil
	})
}

func (f *jsonFiles) Replace(ctx context.Context, id string, rec *models.FileRecord) error {
	return f.c.update(func(recs []models.FileRecord) ([]models.FileRecord, error) {
		for i := range recs {
			if recs[i].ID == id {
				recs[i] = *rec
				return recs, nil
			}
		}
		return nil, common.ErrNotFound
	})
}

func (f *jsonFiles) Delete(ctx context.Context, id string) error {
	return f.c.update(func(recs []models.FileRecord) ([]models.FileRecord, error) {
		out := recs[:0]
		for _, r := range recs {
			if r.ID != id {
				out = append(out, r)
			}
		}
		return out, nil
	})
}
