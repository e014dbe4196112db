package utils

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

// NewID returns an opaque record identifier.
func NewID() string {
	return uuid.NewString()
}

// NewFolderID returns a folder record identifier. The prefix keeps folder
// ids recognizable in logs and in the ledger; consumers still treat the
// whole id as opaque.
func NewFolderID() string {
	return "folder_" + uuid.NewString()
}

// GenerateSecureToken creates a cryptographically secure random token.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
