package handler

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/config"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/repositories"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/services"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/httputil"
)

// multipartMemoryLimit caps how much of a multipart body is held in memory;
// the rest spills to temp files.
const multipartMemoryLimit = 32 << 20

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService services.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// ListFiles lists all files owned by the caller
// GET /api/files
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	files, err := h.fileService.List(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.FileListResponse{Files: files, Total: len(files)})
}

// ListFilesInFolder lists files in a folder; "root" or an absent ID means
// the unfoldered set
// GET /api/files/folder/{folderID}
func (h *FileHandler) ListFilesInFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var folderID *string
	if id := r.PathValue("folderID"); id != "" && id != "root" {
		folderID = &id
	}

	files, err := h.fileService.ListByFolder(r.Context(), folderID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.FileListResponse{Files: files, Total: len(files)})
}

// GetFile retrieves a single file record
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	file, err := h.fileService.Get(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// Upload handles a single multipart upload (field "file")
// POST /api/files/upload
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	// Limit the whole request body; a little headroom over the per-file
	// limit covers multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize+(1<<20))

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer part.Close()

	if header.Size > config.MaxUploadSize {
		httputil.RespondError(w, http.StatusBadRequest, "file exceeds the 50 MiB upload limit")
		return
	}

	file, err := h.fileService.Upload(r.Context(), userID, uploadInput(part, header))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// UploadMultiple handles a batch multipart upload (field "files", max 10).
// Per-file failures are skipped; only successes are returned.
// POST /api/files/upload-multiple
func (h *FileHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxFilesPerUpload*config.MaxUploadSize+(1<<20))

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "missing 'files' field")
		return
	}
	if len(headers) > config.MaxFilesPerUpload {
		httputil.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("too many files: maximum %d per request", config.MaxFilesPerUpload))
		return
	}

	uploaded := []models.File{}
	for _, header := range headers {
		file, err := h.uploadOne(r, userID, header)
		if err != nil {
			h.logger.Warn("multi-upload: file skipped", "name", header.Filename, "error", err)
			continue
		}
		uploaded = append(uploaded, *file)
	}

	httputil.RespondJSON(w, http.StatusCreated, uploaded)
}

func (h *FileHandler) uploadOne(r *http.Request, userID string, header *multipart.FileHeader) (*models.File, error) {
	if header.Size > config.MaxUploadSize {
		return nil, fmt.Errorf("file exceeds the 50 MiB upload limit")
	}

	part, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open part: %w", err)
	}
	defer part.Close()

	return h.fileService.Upload(r.Context(), userID, uploadInput(part, header))
}

// Download streams the stored bytes
// GET /api/downloads/{id}
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	file, reader, err := h.fileService.Download(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.DisplayName))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		// Headers are gone; all we can do is log.
		h.logger.Warn("download interrupted", "id", id, "error", err)
	}
}

// UpdateTags fully replaces a file's tag set
// PATCH /api/files/{id}/tags
func (h *FileHandler) UpdateTags(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	var req models.UpdateTagsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	file, err := h.fileService.UpdateTags(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// UpdateFile renames or moves a file
// PATCH /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	var req models.UpdateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	file, err := h.fileService.Update(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// Reprocess re-runs tagging on the stored name/type
// POST /api/files/{id}/reprocess
func (h *FileHandler) Reprocess(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	file, err := h.fileService.Reprocess(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// ApplyToSimilar copies the file's tags onto every similar file
// POST /api/files/{id}/apply-to-similar
func (h *FileHandler) ApplyToSimilar(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	result, err := h.fileService.ApplyToSimilar(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// DeleteFile removes stored bytes, then the record
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	if err := h.fileService.Delete(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search performs case-insensitive matching on name, display name, and tags
// GET /api/search?q=&tag=&type=
func (h *FileHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	filter := &repositories.SearchFilter{
		Query: r.URL.Query().Get("q"),
		Tag:   r.URL.Query().Get("tag"),
		Type:  r.URL.Query().Get("type"),
	}

	files, err := h.fileService.Search(r.Context(), userID, filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.FileListResponse{Files: files, Total: len(files)})
}

// StorageUsage reports used bytes against the fixed quota
// GET /api/storage-usage
func (h *FileHandler) StorageUsage(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	usage, err := h.fileService.StorageUsage(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, usage)
}

// HealthCheck is a liveness probe
// GET /health
func (h *FileHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func uploadInput(part multipart.File, header *multipart.FileHeader) *services.UploadInput {
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &services.UploadInput{
		Name:     header.Filename,
		MimeType: mimeType,
		Size:     header.Size,
		Content:  part,
	}
}
