package handlers

import (
	"errors"
	"net/http"

	"github.com/shivamgupta1319/EasyShare/internal/api/middleware"
	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/utils"
)

// POST /files/{id}/connect
// Connect godoc
// @Summary Assert a live folder connection
// @Description Marks the folder connected by the calling user and refreshes its liveness timestamp. Idempotent; owners call this as a heartbeat.
// @Tags Folders
// @Produce json
// @Param id path string true "Folder id"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/files/{id}/connect [post]
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	userID := middleware.UserID(r.Context())

	rec, err := h.svc.AssertConnected(r.Context(), folderID, userID)
	switch {
	case err == nil:
		utils.OK(w, http.StatusOK, "Folder marked as connected", rec)
	case errors.Is(err, common.ErrInvalidRequest):
		utils.Fail(w, http.StatusBadRequest, "Missing folder ID or user ID")
	case errors.Is(err, common.ErrNotFound):
		utils.Fail(w, http.StatusNotFound, "File not found")
	case errors.Is(err, common.ErrInvalidTarget):
		utils.Fail(w, http.StatusBadRequest, "Not a folder")
	default:
		utils.Fail(w, http.StatusInternalServerError, "Failed to mark folder as connected")
	}
}
