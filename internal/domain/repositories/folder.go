package repositories

import (
	"context"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
)

// FolderRepository defines data access to folder records, scoped by owner.
type FolderRepository interface {
	// Create inserts a new folder and fills in generated fields.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID for the given owner.
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// GetByName retrieves a folder by case-insensitive exact name match.
	// Returns domain.ErrNotFound when no folder has that name.
	GetByName(ctx context.Context, userID, name string) (*models.Folder, error)

	// ListByUser lists all folders owned by the user ordered by name.
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)

	// Delete removes a folder, its child folders, and unlinks contained
	// files (folder_id set to NULL), mirroring the platform's referential
	// actions.
	Delete(ctx context.Context, id, userID string) error
}
