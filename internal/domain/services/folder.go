package services

import (
	"context"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
)

// FolderService owns explicit folder management. Implicit folder creation
// (upload auto-foldering, auto-organize) goes through the Organizer instead.
type FolderService interface {
	Create(ctx context.Context, userID string, req *models.CreateFolderRequest) (*models.Folder, error)
	List(ctx context.Context, userID string) ([]models.Folder, error)

	// Delete cascades to child folders and unlinks contained files.
	Delete(ctx context.Context, id, userID string) error
}

// Organizer routes unfoldered files into suggested folders.
type Organizer interface {
	// OrganizeFiles re-tags every unfoldered file of the user and moves the
	// ones with a suggested folder name into that folder, creating it when
	// absent. Per-file failures are logged and skipped.
	OrganizeFiles(ctx context.Context, userID string) (*models.OrganizeReport, error)
}
