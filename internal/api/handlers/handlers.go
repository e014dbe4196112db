// Package handlers translates HTTP requests into record store and service
// calls, using a shared JSON response envelope.
package handlers

import (
	"github.com/shivamgupta1319/EasyShare/internal/blob"
	"github.com/shivamgupta1319/EasyShare/internal/recordstore"
	"github.com/shivamgupta1319/EasyShare/internal/service"
)

// Handler carries the dependencies of all routes.
type Handler struct {
	users recordstore.Users
	files recordstore.Files
	svc   *service.Files
	blobs blob.Store

	jwtSecret string
	isProd    bool
}

// New wires a handler set.
func New(store recordstore.Store, blobs blob.Store, jwtSecret string, isProd bool) *Handler {
	return &Handler{
		users:     store.Users(),
		files:     store.Files(),
		svc:       service.NewFiles(store.Files()),
		blobs:     blobs,
		jwtSecret: jwtSecret,
		isProd:    isProd,
	}
}
