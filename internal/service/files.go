// Package service implements the business rules over the record store:
// sharing grants, the download toggle, and the owner's connection
// assertion. Handlers stay thin and translate these results to HTTP.
package service

import (
	"context"
	"time"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
	"github.com/shivamgupta1319/EasyShare/internal/recordstore"
)

// Files operates on file/folder records.
type Files struct {
	files recordstore.Files
	now   func() time.Time
}

// NewFiles builds the service over a record store backend.
func NewFiles(files recordstore.Files) *Files {
	return &Files{files: files, now: time.Now}
}

// WithClock substitutes the time source for tests.
func (s *Files) WithClock(now func() time.Time) *Files {
	s.now = now
	return s
}

// Share grants granteeEmail access to the record. A duplicate grant keeps
// the set unchanged and reports ErrAlreadyShared together with the
// unchanged record; callers surface that as a warning, not a failure.
// There is no unshare: grants are additive-only.
func (s *Files) Share(ctx context.Context, fileID, granteeEmail string) (*models.FileRecord, error) {
	if fileID == "" || granteeEmail == "" {
		return nil, common.ErrInvalidRequest
	}
	rec, err := s.files.ByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !rec.SharedWith.Add(granteeEmail) {
		return rec, common.ErrAlreadyShared
	}
	if err := s.files.Replace(ctx, fileID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ToggleDownload flips the download permission on a file. Folders never
// carry downloadable bytes, so calling this on one is a caller error.
func (s *Files) ToggleDownload(ctx context.Context, fileID string) (*models.FileRecord, error) {
	if fileID == "" {
		return nil, common.ErrInvalidRequest
	}
	rec, err := s.files.ByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if rec.IsFolder() {
		return nil, common.ErrInvalidTarget
	}
	rec.AllowDownload = !rec.AllowDownload
	if err := s.files.Replace(ctx, fileID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AssertConnected records that userID currently holds a live handle for
// the folder: it sets the advisory flag, stamps connectedBy, and refreshes
// lastConnected to now. Repeated calls just refresh the timestamp;
// that refresh is the owner's liveness heartbeat. Between concurrent
// sessions of the same owner, the last writer wins; there is no merge.
func (s *Files) AssertConnected(ctx context.Context, folderID, userID string) (*models.FileRecord, error) {
	if folderID == "" || userID == "" {
		return nil, common.ErrInvalidRequest
	}
	rec, err := s.files.ByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if !rec.IsFolder() {
		return nil, common.ErrInvalidTarget
	}
	rec.Folder.IsConnected = true
	rec.Folder.ConnectedBy = userID
	rec.Folder.LastConnected = s.now()
	if err := s.files.Replace(ctx, folderID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// CanView reports whether a user may read the record: its owner, or
// anyone it was shared with.
func (s *Files) CanView(rec *models.FileRecord, userID, userEmail string) bool {
	if rec == nil {
		return false
	}
	return rec.OwnerID == userID || rec.SharedWithEmail(userEmail)
}
