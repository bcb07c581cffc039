package repositories

import (
	"context"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
)

// SearchFilter holds the optional filters for file search. Query and Type
// are case-insensitive substring matches; Tag is an exact case-insensitive
// tag match.
type SearchFilter struct {
	Query string
	Tag   string
	Type  string
}

// FileRepository defines data access to file records. All queries are
// scoped by the owning user; a row belonging to someone else behaves like a
// missing row.
type FileRepository interface {
	// Create inserts a new file record and fills in generated fields.
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by ID for the given owner.
	GetByID(ctx context.Context, id, userID string) (*models.File, error)

	// ListByUser lists all files owned by the user in upload order.
	ListByUser(ctx context.Context, userID string) ([]models.File, error)

	// ListByFolder lists files in a folder; nil folderID means unfoldered.
	ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.File, error)

	// Update overwrites all mutable fields of the record.
	Update(ctx context.Context, file *models.File) error

	// UpdateTags fully replaces the tag set of a file.
	UpdateTags(ctx context.Context, id, userID string, tags []string) error

	// Delete removes the file record.
	Delete(ctx context.Context, id, userID string) error

	// Search lists files matching the filter.
	Search(ctx context.Context, userID string, filter *SearchFilter) ([]models.File, error)

	// Usage returns the total stored bytes and file count for the user.
	Usage(ctx context.Context, userID string) (int64, int, error)
}
