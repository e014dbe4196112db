// Package ledger durably remembers which folder ids this profile has
// granted access to, so the reconnect flow can ask for the same directory
// again. It stores references only, never capabilities: knowing about a
// folder is independent of currently being able to open it.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shivamgupta1319/EasyShare/internal/common"
)

// FolderReference is one remembered grant. Timestamp refreshes on every
// successful (re)registration; entries are never removed automatically.
type FolderReference struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	FolderName string    `json:"folderName"`
	OwnerID    string    `json:"ownerId"`
	Timestamp  time.Time `json:"timestamp"`
}

// Ledger is a sqlite-backed folder reference store. The database is opened
// lazily on first use; if opening fails, every call degrades to a
// failure/false result instead of panicking, so the rest of the system
// keeps working without folder memory.
type Ledger struct {
	path string

	mu      sync.Mutex
	db      *gorm.DB
	openErr error
	opened  bool
}

// New returns a ledger backed by the sqlite file at path. The file is not
// touched until the first operation.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// open performs the lazy one-time initialization. The outcome, success or
// failure, is sticky for the lifetime of the Ledger.
func (l *Ledger) open() (*gorm.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.opened {
		return l.db, l.openErr
	}
	l.opened = true

	db, err := gorm.Open(sqlite.Open(l.path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		l.openErr = fmt.Errorf("%w: open ledger %s: %v", common.ErrStoreUnavailable, l.path, err)
		return nil, l.openErr
	}
	if err := db.AutoMigrate(&FolderReference{}); err != nil {
		l.openErr = fmt.Errorf("%w: migrate ledger: %v", common.ErrStoreUnavailable, err)
		return nil, l.openErr
	}
	l.db = db
	return l.db, nil
}

// Register upserts a folder reference, refreshing its timestamp. It fails
// with ErrStoreUnavailable when the backing store cannot be opened or
// written; callers proceed without persistence in that case.
func (l *Ledger) Register(folderID, folderName, ownerID string) error {
	if folderID == "" {
		return common.ErrInvalidRequest
	}
	db, err := l.open()
	if err != nil {
		return err
	}
	ref := FolderReference{
		ID:         folderID,
		FolderName: folderName,
		OwnerID:    ownerID,
		Timestamp:  time.Now(),
	}
	if err := db.Save(&ref).Error; err != nil {
		return fmt.Errorf("%w: save reference: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

// Has reports whether a reference exists for the folder id. It returns
// false, not an error, when the store is unavailable: the caller falls
// back to the first-time-share flow.
func (l *Ledger) Has(folderID string) bool {
	db, err := l.open()
	if err != nil {
		return false
	}
	var count int64
	if err := db.Model(&FolderReference{}).Where("id = ?", folderID).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// Get returns the stored reference for a folder id, or ErrNotFound.
func (l *Ledger) Get(folderID string) (*FolderReference, error) {
	db, err := l.open()
	if err != nil {
		return nil, err
	}
	var ref FolderReference
	if err := db.First(&ref, "id = ?", folderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: read reference: %v", common.ErrStoreUnavailable, err)
	}
	return &ref, nil
}
