package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/repositories"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/services"
)

type organizerService struct {
	fileRepo   repositories.FileRepository
	folderRepo repositories.FolderRepository
	tagger     services.Tagger
	logger     *slog.Logger
}

// NewOrganizerService creates a new organizer service
func NewOrganizerService(
	fileRepo repositories.FileRepository,
	folderRepo repositories.FolderRepository,
	tagger services.Tagger,
	logger *slog.Logger,
) services.Organizer {
	return &organizerService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		tagger:     tagger,
		logger:     logger,
	}
}

// OrganizeFiles re-tags every unfoldered file of the user and routes the
// ones with a suggested folder name into that folder. Existing tags are
// ignored; each file is tagged fresh from its name and type. Files without
// a folder suggestion are left untouched. Per-file failures are logged and
// skipped; the report counts only successes.
func (s *organizerService) OrganizeFiles(ctx context.Context, userID string) (*models.OrganizeReport, error) {
	files, err := s.fileRepo.ListByFolder(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	report := &models.OrganizeReport{}

	// Folders resolved this run, keyed by lowercased name. Guarantees one
	// folder per case-insensitive name per run even when the store lookup
	// and create race.
	resolved := make(map[string]*models.Folder)

	for i := range files {
		file := &files[i]

		suggestion, err := s.tagger.SuggestTags(ctx, file.Name, file.MimeType, "")
		if err != nil || suggestion == nil {
			s.logger.Warn("organize: tagging failed", "id", file.ID, "name", file.Name, "error", err)
			continue
		}

		if suggestion.SuggestedFolderName == "" {
			continue
		}

		key := strings.ToLower(suggestion.SuggestedFolderName)
		folder, ok := resolved[key]
		if !ok {
			var created bool
			folder, created, err = s.findOrCreateFolder(ctx, userID, suggestion.SuggestedFolderName)
			if err != nil {
				s.logger.Warn("organize: folder resolution failed",
					"id", file.ID,
					"folder_name", suggestion.SuggestedFolderName,
					"error", err,
				)
				continue
			}
			if created {
				report.FoldersCreated++
			}
			resolved[key] = folder
		}

		file.FolderID = &folder.ID
		file.Tags = suggestion.Tags
		file.AIGenerated = true
		file.Metadata = suggestionMetadata(file.Metadata, suggestion)

		if err := s.fileRepo.Update(ctx, file); err != nil {
			s.logger.Warn("organize: file update failed", "id", file.ID, "error", err)
			continue
		}

		report.FilesMoved++
	}

	s.logger.Info("files organized",
		"user_id", userID,
		"eligible", len(files),
		"folders_created", report.FoldersCreated,
		"files_moved", report.FilesMoved,
	)

	return report, nil
}

func (s *organizerService) findOrCreateFolder(ctx context.Context, userID, name string) (*models.Folder, bool, error) {
	folder, err := s.folderRepo.GetByName(ctx, userID, name)
	if err == nil {
		return folder, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	folder = &models.Folder{
		UserID:      userID,
		Name:        name,
		AIGenerated: true,
		CreatedAt:   time.Now(),
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			existing, getErr := s.folderRepo.GetByName(ctx, userID, name)
			return existing, false, getErr
		}
		return nil, false, err
	}

	return folder, true, nil
}
