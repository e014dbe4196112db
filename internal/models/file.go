package models

import "time"

// FileRecord is a shared file or folder. The two cases share the common
// fields below; everything folder-specific lives behind the Folder pointer,
// which is nil for plain files. That keeps shapes like "a file with
// connection state" unrepresentable.
type FileRecord struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	OwnerID    string    `json:"ownerId" gorm:"index;not null"`
	OwnerEmail string    `json:"ownerEmail" gorm:"not null"`
	Name       string    `json:"name" gorm:"not null"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	URL        string    `json:"url,omitempty"`
	SharedWith StringSet `json:"sharedWith" gorm:"serializer:json"`
	// AllowDownload applies to files only; folders never carry bytes.
	AllowDownload bool        `json:"allowDownload"`
	Folder        *FolderMeta `json:"folder,omitempty" gorm:"serializer:json"`
	CreatedAt     time.Time   `json:"createdAt" gorm:"autoCreateTime"`
}

// FolderMeta holds the folder-only state replicated through the record
// store. IsConnected is advisory; LastConnected is the authoritative
// liveness signal and is interpreted under the freshness window.
type FolderMeta struct {
	Structure     *TreeNode `json:"structure,omitempty"`
	IsConnected   bool      `json:"isConnected"`
	ConnectedBy   string    `json:"connectedBy,omitempty"`
	LastConnected time.Time `json:"lastConnected,omitzero"`
}

// IsFolder reports whether the record is the folder variant.
func (r *FileRecord) IsFolder() bool {
	return r != nil && r.Folder != nil
}

// SharedWithEmail reports whether the record has been shared with the
// given email.
func (r *FileRecord) SharedWithEmail(email string) bool {
	if r == nil {
		return false
	}
	return r.SharedWith.Contains(email)
}

// StringSet is an insertion-ordered set of strings with JSON array
// encoding. Duplicates are forbidden by Add.
type StringSet []string

// Contains reports set membership.
func (s StringSet) Contains(v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// Add appends v and reports whether it was actually added.
func (s *StringSet) Add(v string) bool {
	if s.Contains(v) {
		return false
	}
	*s = append(*s, v)
	return true
}
