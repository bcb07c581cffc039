package services

import (
	"context"
	"io"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/repositories"
)

// UploadInput carries one file's bytes and metadata into the upload flow.
// Size must be the exact byte length; it is checked against the upload limit
// before any storage or tagging work.
type UploadInput struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// FileService owns the file lifecycle: upload (storage write + AI tag +
// optional auto-folder + record create), retrieval, tag management,
// similarity propagation, search, and deletion.
type FileService interface {
	Upload(ctx context.Context, userID string, input *UploadInput) (*models.File, error)

	Get(ctx context.Context, id, userID string) (*models.File, error)
	List(ctx context.Context, userID string) ([]models.File, error)

	// ListByFolder lists files in a folder; nil means unfoldered. A non-nil
	// folder ID must reference a folder owned by the caller.
	ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.File, error)

	// Download streams the stored bytes along with the owning record.
	Download(ctx context.Context, id, userID string) (*models.File, io.ReadCloser, error)

	// UpdateTags fully replaces a file's tag set.
	UpdateTags(ctx context.Context, id, userID string, req *models.UpdateTagsRequest) (*models.File, error)

	// Update renames or moves a file (full-field overwrite semantics).
	Update(ctx context.Context, id, userID string, req *models.UpdateFileRequest) (*models.File, error)

	// Reprocess re-runs tagging on the stored name/type and refreshes tags,
	// display name, and suggestion metadata.
	Reprocess(ctx context.Context, id, userID string) (*models.File, error)

	// ApplyToSimilar copies the source file's tags onto every similar file.
	// Per-file update failures are counted, not fatal.
	ApplyToSimilar(ctx context.Context, id, userID string) (*models.ApplyToSimilarResponse, error)

	// Delete removes the object-storage entry first, then the record.
	Delete(ctx context.Context, id, userID string) error

	Search(ctx context.Context, userID string, filter *repositories.SearchFilter) ([]models.File, error)
	StorageUsage(ctx context.Context, userID string) (*models.StorageUsage, error)
}
