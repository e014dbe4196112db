// Package recordstore persists user and file records. Two backends exist:
// a flat-JSON-file store faithful to the product's original persistence
// (whole collection rewritten on every mutation) and a Postgres store for
// deployments that want a real database.
package recordstore

import (
	"context"

	"github.com/shivamgupta1319/EasyShare/internal/models"
)

// Users is the user collection surface. Users are created on signup and
// never mutated or deleted in the normal flow.
type Users interface {
	All(ctx context.Context) ([]models.User, error)
	ByID(ctx context.Context, id string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Append(ctx context.Context, user *models.User) error
}

// Files is the file/folder record collection surface. Missing ids resolve
// to common.ErrNotFound.
type Files interface {
	All(ctx context.Context) ([]models.FileRecord, error)
	ByID(ctx context.Context, id string) (*models.FileRecord, error)
	ByOwner(ctx context.Context, ownerID string) ([]models.FileRecord, error)
	SharedWith(ctx context.Context, email string) ([]models.FileRecord, error)
	Append(ctx context.Context, rec *models.FileRecord) error
	Replace(ctx context.Context, id string, rec *models.FileRecord) error
	Delete(ctx context.Context, id string) error
}

// Store bundles the collections of one backend.
type Store interface {
	Users() Users
	Files() Files
}
