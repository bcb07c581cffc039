package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/config"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/repositories"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/services"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(folderRepo repositories.FolderRepository, logger *slog.Logger) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// Create creates a folder from an explicit user request
func (s *folderService) Create(ctx context.Context, userID string, req *models.CreateFolderRequest) (*models.Folder, error) {
	if err := validateCreateFolderRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name := strings.TrimSpace(req.Name)

	// One folder per case-insensitive name per owner.
	existing, err := s.folderRepo.GetByName(ctx, userID, name)
	if err == nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists", existing.Name),
			ResourceType: "folder",
			ResourceID:   existing.ID,
		}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID, userID); err != nil {
			return nil, err
		}
	}

	folder := &models.Folder{
		UserID:    userID,
		ParentID:  req.ParentID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"user_id", userID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// List lists all folders owned by the user
func (s *folderService) List(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folderRepo.ListByUser(ctx, userID)
}

// Delete removes a folder; children cascade and contained files are unlinked
func (s *folderService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.folderRepo.GetByID(ctx, id, userID); err != nil {
		return err
	}

	if err := s.folderRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id, "user_id", userID)

	return nil
}

func validateCreateFolderRequest(req *models.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.By(validateTrimmedName),
		),
	)
}

func validateTrimmedName(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("name must be a string")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be blank")
	}
	return nil
}
