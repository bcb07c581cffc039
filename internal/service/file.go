package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/config"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/repositories"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/services"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/storage"
)

type fileService struct {
	fileRepo   repositories.FileRepository
	folderRepo repositories.FolderRepository
	objects    storage.ObjectStore
	tagger     services.Tagger
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repositories.FileRepository,
	folderRepo repositories.FolderRepository,
	objects storage.ObjectStore,
	tagger services.Tagger,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		objects:    objects,
		tagger:     tagger,
		logger:     logger,
	}
}

// Upload stores the file bytes, requests tags, resolves the suggested
// folder when there is one, and persists the record.
func (s *fileService) Upload(ctx context.Context, userID string, input *services.UploadInput) (*models.File, error) {
	if err := validateUploadInput(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Object key: <owner>/<uuid><ext> keeps per-user objects grouped and
	// collisions impossible for same-named uploads.
	objectKey := userID + "/" + uuid.New().String()
	if ext := models.FileExtension(input.Name); ext != "" {
		objectKey += "." + ext
	}

	if err := s.objects.Put(ctx, objectKey, input.Content, input.Size, input.MimeType); err != nil {
		return nil, fmt.Errorf("store file bytes: %w", err)
	}

	suggestion := s.suggestTags(ctx, input.Name, input.MimeType)

	displayName := input.Name
	if suggestion.SuggestedFileName != "" {
		displayName = suggestion.SuggestedFileName
	}

	var folderID *string
	if suggestion.SuggestedFolderName != "" {
		folder, err := s.resolveSuggestedFolder(ctx, userID, suggestion.SuggestedFolderName)
		if err != nil {
			// Auto-foldering is best effort; the file just stays unfoldered.
			s.logger.Warn("auto-folder resolution failed",
				"user_id", userID,
				"folder_name", suggestion.SuggestedFolderName,
				"error", err,
			)
		} else {
			folderID = &folder.ID
		}
	}

	file := &models.File{
		UserID:      userID,
		FolderID:    folderID,
		Name:        input.Name,
		DisplayName: displayName,
		MimeType:    input.MimeType,
		Size:        input.Size,
		ObjectKey:   objectKey,
		Tags:        suggestion.Tags,
		AIGenerated: true,
		Metadata:    suggestionMetadata(nil, suggestion),
		UploadedAt:  time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// The record never existed, so the stored bytes are orphaned.
		if removeErr := s.objects.Remove(ctx, objectKey); removeErr != nil {
			s.logger.Error("failed to clean up orphaned object", "object_key", objectKey, "error", removeErr)
		}
		return nil, err
	}

	s.logger.Info("file uploaded",
		"id", file.ID,
		"user_id", userID,
		"name", file.Name,
		"size", file.Size,
		"tags", file.Tags,
		"folder_id", file.FolderID,
		"tag_source", suggestion.Source,
	)

	return file, nil
}

// Get retrieves a single owned file
func (s *fileService) Get(ctx context.Context, id, userID string) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, id, userID)
}

// List lists all files owned by the user
func (s *fileService) List(ctx context.Context, userID string) ([]models.File, error) {
	return s.fileRepo.ListByUser(ctx, userID)
}

// ListByFolder lists files in a folder; nil means unfoldered
func (s *fileService) ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.File, error) {
	if folderID != nil {
		// The folder must exist and belong to the caller.
		if _, err := s.folderRepo.GetByID(ctx, *folderID, userID); err != nil {
			return nil, err
		}
	}
	return s.fileRepo.ListByFolder(ctx, folderID, userID)
}

// Download streams the stored bytes along with the owning record
func (s *fileService) Download(ctx context.Context, id, userID string) (*models.File, io.ReadCloser, error) {
	file, err := s.fileRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.objects.Get(ctx, file.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("read file bytes: %w", err)
	}

	return file, reader, nil
}

// UpdateTags fully replaces a file's tag set
func (s *fileService) UpdateTags(ctx context.Context, id, userID string, req *models.UpdateTagsRequest) (*models.File, error) {
	// Normalize first: a request of blank or duplicate-only tags must fail
	// validation rather than silently empty the tag set.
	tags := normalizeTags(req.Tags)
	if err := validateTags(tags); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.fileRepo.UpdateTags(ctx, id, userID, tags); err != nil {
		return nil, err
	}

	s.logger.Info("tags replaced", "id", id, "user_id", userID, "tags", tags)

	return s.fileRepo.GetByID(ctx, id, userID)
}

// Update renames or moves a file
func (s *fileService) Update(ctx context.Context, id, userID string, req *models.UpdateFileRequest) (*models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" || len(name) > config.MaxFileNameLength {
			return nil, fmt.Errorf("%w: display name must be 1-%d characters", domain.ErrValidation, config.MaxFileNameLength)
		}
		file.DisplayName = name
	}

	if req.FolderID != nil {
		if *req.FolderID == "" {
			// Empty string unfolders the file.
			file.FolderID = nil
		} else {
			if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, userID); err != nil {
				return nil, err
			}
			file.FolderID = req.FolderID
		}
	}

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	return file, nil
}

// Reprocess re-runs tagging on the stored name/type and refreshes tags,
// display name, and suggestion metadata. The folder reference is untouched.
func (s *fileService) Reprocess(ctx context.Context, id, userID string) (*models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	suggestion := s.suggestTags(ctx, file.Name, file.MimeType)

	file.Tags = suggestion.Tags
	file.AIGenerated = true
	if suggestion.SuggestedFileName != "" {
		file.DisplayName = suggestion.SuggestedFileName
	}
	file.Metadata = suggestionMetadata(file.Metadata, suggestion)

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file reprocessed",
		"id", file.ID,
		"user_id", userID,
		"tags", file.Tags,
		"tag_source", suggestion.Source,
	)

	return file, nil
}

// ApplyToSimilar copies the source file's tags onto every similar file.
// Per-file update failures are logged and counted, never fatal, so the
// found and updated counts can differ.
func (s *fileService) ApplyToSimilar(ctx context.Context, id, userID string) (*models.ApplyToSimilarResponse, error) {
	source, err := s.fileRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.fileRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var matches []models.File
	for _, candidate := range all {
		if candidate.ID == source.ID {
			continue
		}
		if isSimilar(source, &candidate) {
			matches = append(matches, candidate)
		}
	}

	updated := []models.File{}
	for _, match := range matches {
		if err := s.fileRepo.UpdateTags(ctx, match.ID, userID, source.Tags); err != nil {
			s.logger.Warn("failed to update similar file", "id", match.ID, "source_id", source.ID, "error", err)
			continue
		}
		match.Tags = append([]string(nil), source.Tags...)
		updated = append(updated, match)
	}

	s.logger.Info("tags applied to similar files",
		"source_id", source.ID,
		"user_id", userID,
		"found", len(matches),
		"updated", len(updated),
	)

	return &models.ApplyToSimilarResponse{
		SourceFile:        source,
		UpdatedFiles:      updated,
		Count:             len(updated),
		SimilarFilesFound: len(matches),
	}, nil
}

// Delete removes the object-storage entry first, then the record
func (s *fileService) Delete(ctx context.Context, id, userID string) error {
	file, err := s.fileRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.objects.Remove(ctx, file.ObjectKey); err != nil {
		return fmt.Errorf("delete file bytes: %w", err)
	}

	if err := s.fileRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("file deleted", "id", id, "user_id", userID, "object_key", file.ObjectKey)

	return nil
}

// Search lists files matching the filter
func (s *fileService) Search(ctx context.Context, userID string, filter *repositories.SearchFilter) ([]models.File, error) {
	trimmed := &repositories.SearchFilter{
		Query: strings.TrimSpace(filter.Query),
		Tag:   strings.TrimSpace(filter.Tag),
		Type:  strings.TrimSpace(filter.Type),
	}
	return s.fileRepo.Search(ctx, userID, trimmed)
}

// StorageUsage reports stored bytes against the fixed quota
func (s *fileService) StorageUsage(ctx context.Context, userID string) (*models.StorageUsage, error) {
	used, count, err := s.fileRepo.Usage(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.StorageUsage{
		UsedBytes:  used,
		QuotaBytes: config.StorageQuota,
		Used:       humanize.IBytes(uint64(used)),
		Quota:      humanize.IBytes(uint64(config.StorageQuota)),
		UsedPct:    float64(used) / float64(config.StorageQuota) * 100,
		FileCount:  count,
	}, nil
}

// suggestTags wraps the tagger so callers always get a usable suggestion.
// The tagging service already falls back internally; this guards the
// contract boundary.
func (s *fileService) suggestTags(ctx context.Context, name, mimeType string) *models.TagSuggestion {
	suggestion, err := s.tagger.SuggestTags(ctx, name, mimeType, "")
	if err != nil || suggestion == nil || len(suggestion.Tags) == 0 {
		if err != nil {
			s.logger.Error("tagger returned error past fallback", "file_name", name, "error", err)
		}
		return &models.TagSuggestion{
			Tags:       []string{"uncategorized"},
			Confidence: 0,
			Source:     models.TagSourceFallback,
		}
	}
	return suggestion
}

// resolveSuggestedFolder finds a folder by case-insensitive name or creates
// it flagged as AI-generated.
func (s *fileService) resolveSuggestedFolder(ctx context.Context, userID, name string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByName(ctx, userID, name)
	if err == nil {
		return folder, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	folder = &models.Folder{
		UserID:      userID,
		Name:        name,
		AIGenerated: true,
		CreatedAt:   time.Now(),
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Created concurrently; use the existing one.
			return s.folderRepo.GetByName(ctx, userID, name)
		}
		return nil, err
	}

	s.logger.Info("folder auto-created", "id", folder.ID, "user_id", userID, "name", folder.Name)

	return folder, nil
}

// suggestionMetadata merges tagging results into a file's metadata map.
func suggestionMetadata(existing map[string]interface{}, suggestion *models.TagSuggestion) map[string]interface{} {
	metadata := make(map[string]interface{}, len(existing)+4)
	for k, v := range existing {
		metadata[k] = v
	}

	metadata["tag_source"] = suggestion.Source
	metadata["confidence"] = suggestion.Confidence
	if suggestion.SuggestedFolderName != "" {
		metadata["suggested_folder"] = suggestion.SuggestedFolderName
	}
	if suggestion.SuggestedFileName != "" {
		metadata["suggested_name"] = suggestion.SuggestedFileName
	}

	return metadata
}

func validateUploadInput(input *services.UploadInput) error {
	if err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&input.Content, validation.Required),
	); err != nil {
		return err
	}

	if input.Size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if input.Size > config.MaxUploadSize {
		return fmt.Errorf("file exceeds the %s upload limit", humanize.IBytes(config.MaxUploadSize))
	}

	return nil
}

// validateTags checks an already-normalized tag set.
func validateTags(tags []string) error {
	return validation.Validate(tags,
		validation.Required,
		validation.Length(1, config.MaxTagsPerFile),
		validation.Each(
			validation.Required,
			validation.Length(1, config.MaxTagLength),
		),
	)
}

// normalizeTags lowercases, trims, and deduplicates while keeping order.
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}
