package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/shivamgupta1319/EasyShare/internal/api/middleware"
	"github.com/shivamgupta1319/EasyShare/internal/common"
	"github.com/shivamgupta1319/EasyShare/internal/models"
	"github.com/shivamgupta1319/EasyShare/internal/utils"
)

const maxUploadSize = 100 << 20 // 100 MB

// GET /files
// ListFiles godoc
// @Summary List own files and folders
// @Tags Files
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/files [get]
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	recs, err := h.files.ByOwner(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to load files")
		return
	}
	utils.OK(w, http.StatusOK, "Files retrieved successfully", recs)
}

// GET /files/shared
// ListShared godoc
// @Summary List files and folders shared with me
// @Tags Files
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/files/shared [get]
func (h *Handler) ListShared(w http.ResponseWriter, r *http.Request) {
	recs, err := h.files.SharedWith(r.Context(), middleware.UserEmail(r.Context()))
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to load shared files")
		return
	}
	utils.OK(w, http.StatusOK, "Shared files retrieved successfully", recs)
}

// POST /files
// CreateFile godoc
// @Summary Upload a file or register folder metadata
// @Description Multipart requests upload file bytes; JSON requests record a scanned folder snapshot.
// @Tags Files
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/files [post]
func (h *Handler) CreateFile(w http.ResponseWriter, r *http.Request) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(ct, "multipart/") {
		h.uploadFile(w, r)
		return
	}
	h.createFolder(w, r)
}

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid file upload form")
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer src.Close()

	if header.Size > maxUploadSize {
		utils.Fail(w, http.StatusBadRequest, "File exceeds 100 MB limit")
		return
	}

	obj, err := h.blobs.Save(r.Context(), header.Filename, src)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	rec := models.FileRecord{
		ID:         utils.NewID(),
		OwnerID:    middleware.UserID(r.Context()),
		OwnerEmail: middleware.UserEmail(r.Context()),
		Name:       header.Filename,
		Type:       header.Header.Get("Content-Type"),
		Size:       obj.Size,
		URL:        obj.URL,
		SharedWith: models.StringSet{},
		CreatedAt:  time.Now(),
	}
	if err := h.files.Append(r.Context(), &rec); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to save file record")
		return
	}

	utils.OK(w, http.StatusOK, "File uploaded successfully", rec)
}

// folderInput is the agent-supplied folder metadata. Connection state and
// ownership are set server-side.
type folderInput struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Structure *models.TreeNode `json:"structure"`
}

func (h *Handler) createFolder(w http.ResponseWriter, r *http.Request) {
	var input folderInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" {
		utils.Fail(w, http.StatusBadRequest, "Missing folder name")
		return
	}
	if input.ID == "" {
		input.ID = utils.NewFolderID()
	}
	if _, err := h.files.ByID(r.Context(), input.ID); err == nil {
		utils.Fail(w, http.StatusBadRequest, "Folder already registered")
		return
	}

	userID := middleware.UserID(r.Context())
	rec := models.FileRecord{
		ID:         input.ID,
		OwnerID:    userID,
		OwnerEmail: middleware.UserEmail(r.Context()),
		Name:       input.Name,
		Type:       "folder",
		SharedWith: models.StringSet{},
		Folder: &models.FolderMeta{
			Structure:     input.Structure,
			IsConnected:   true,
			ConnectedBy:   userID,
			LastConnected: time.Now(),
		},
		CreatedAt: time.Now(),
	}
	if err := h.files.Append(r.Context(), &rec); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to save folder record")
		return
	}

	utils.OK(w, http.StatusOK, "Folder registered successfully", rec)
}

// GET /files/{id}
// GetFile godoc
// @Summary Fetch one file or folder record
// @Tags Files
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/files/{id} [get]
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadVisible(w, r)
	if !ok {
		return
	}

	data := map[string]any{"file": rec}
	// Hand out a fetchable URL only when downloads are allowed or the
	// owner is asking.
	if !rec.IsFolder() && rec.URL != "" &&
		(rec.AllowDownload || rec.OwnerID == middleware.UserID(r.Context())) {
		if url, err := h.blobs.DownloadURL(r.Context(), rec.URL); err == nil {
			data["downloadUrl"] = url
		}
	}

	utils.OK(w, http.StatusOK, "File retrieved successfully", data)
}

// PUT /files/{id}
func (h *Handler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var input struct {
		Name *string `json:"name"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name != nil {
		if *input.Name == "" {
			utils.Fail(w, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		rec.Name = *input.Name
	}

	if err := h.files.Replace(r.Context(), rec.ID, rec); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to update record")
		return
	}
	utils.OK(w, http.StatusOK, "File updated successfully", rec)
}

// DELETE /files/{id}
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if !rec.IsFolder() && rec.URL != "" {
		if err := h.blobs.Remove(r.Context(), rec.URL); err != nil {
			utils.Fail(w, http.StatusInternalServerError, "Failed to remove stored file")
			return
		}
	}
	if err := h.files.Delete(r.Context(), rec.ID); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to delete record")
		return
	}
	utils.OK(w, http.StatusOK, "File deleted successfully", nil)
}

// loadVisible fetches the {id} record and enforces owner-or-grantee
// visibility, writing the error response itself on failure.
func (h *Handler) loadVisible(w http.ResponseWriter, r *http.Request) (*models.FileRecord, bool) {
	id := r.PathValue("id")
	if id == "" {
		utils.Fail(w, http.StatusBadRequest, "Missing file id")
		return nil, false
	}
	rec, err := h.files.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			utils.Fail(w, http.StatusNotFound, "File not found")
		} else {
			utils.Fail(w, http.StatusInternalServerError, "Failed to load record")
		}
		return nil, false
	}
	if !h.svc.CanView(rec, middleware.UserID(r.Context()), middleware.UserEmail(r.Context())) {
		utils.Fail(w, http.StatusForbidden, "You don't have permission to view this file")
		return nil, false
	}
	return rec, true
}

// loadOwned is loadVisible restricted to the record's owner.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.FileRecord, bool) {
	rec, ok := h.loadVisible(w, r)
	if !ok {
		return nil, false
	}
	if rec.OwnerID != middleware.UserID(r.Context()) {
		utils.Fail(w, http.StatusForbidden, "Only the owner can modify this file")
		return nil, false
	}
	return rec, true
}
