package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/utils"
)

// POST /files/{id}/share
// ShareFile godoc
// @Summary Share a file or folder with another user
// @Description Adds a grantee email. Sharing with an existing grantee is reported as a warning, not a failure.
// @Tags Share
// @Accept json
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/files/{id}/share [post]
func (h *Handler) ShareFile(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var input struct {
		Email string `json:"email"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	updated, err := h.svc.Share(r.Context(), rec.ID, input.Email)
	switch {
	case err == nil:
		utils.OK(w, http.StatusOK, "File shared successfully", updated)
	case errors.Is(err, common.ErrAlreadyShared):
		// Non-fatal: the grant already exists.
		utils.OK(w, http.StatusOK, "Already shared with this user", updated)
	case errors.Is(err, common.ErrInvalidRequest):
		utils.Fail(w, http.StatusBadRequest, "Missing grantee email")
	case errors.Is(err, common.ErrNotFound):
		utils.Fail(w, http.StatusNotFound, "File not found")
	default:
		utils.Fail(w, http.StatusInternalServerError, "Failed to share file")
	}
}

// POST /files/{id}/download
// ToggleDownload godoc
// @Summary Toggle the download permission on a file
// @Tags Share
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/files/{id}/download [post]
func (h *Handler) ToggleDownload(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	updated, err := h.svc.ToggleDownload(r.Context(), rec.ID)
	switch {
	case err == nil:
		utils.OK(w, http.StatusOK, "Download permission updated", updated)
	case errors.Is(err, common.ErrInvalidTarget):
		utils.Fail(w, http.StatusBadRequest, "Folders have no download permission")
	case errors.Is(err, common.ErrNotFound):
		utils.Fail(w, http.StatusNotFound, "File not found")
	default:
		utils.Fail(w, http.StatusInternalServerError, "Failed to update permission")
	}
}
