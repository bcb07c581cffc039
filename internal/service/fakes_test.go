package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/repositories"
)

// fakeFileRepo is an in-memory FileRepository. Per-ID errors can be injected
// to exercise partial-failure paths.
type fakeFileRepo struct {
	files         map[string]*models.File
	order         []string
	nextID        int
	updateTagsErr map[string]error
	updateErr     map[string]error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{
		files:         make(map[string]*models.File),
		updateTagsErr: make(map[string]error),
		updateErr:     make(map[string]error),
	}
}

func (r *fakeFileRepo) add(file models.File) *models.File {
	r.nextID++
	file.ID = fmt.Sprintf("file-%d", r.nextID)
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	r.files[file.ID] = &file
	r.order = append(r.order, file.ID)
	return &file
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	created := r.add(*file)
	*file = *created
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id, userID string) (*models.File, error) {
	file, ok := r.files[id]
	if !ok || file.UserID != userID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	copied := *file
	return &copied, nil
}

func (r *fakeFileRepo) ListByUser(ctx context.Context, userID string) ([]models.File, error) {
	files := []models.File{}
	for _, id := range r.order {
		if r.files[id].UserID == userID {
			files = append(files, *r.files[id])
		}
	}
	return files, nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.File, error) {
	files := []models.File{}
	for _, id := range r.order {
		file := r.files[id]
		if file.UserID != userID {
			continue
		}
		if folderID == nil && file.FolderID == nil {
			files = append(files, *file)
		} else if folderID != nil && file.FolderID != nil && *file.FolderID == *folderID {
			files = append(files, *file)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *models.File) error {
	if err := r.updateErr[file.ID]; err != nil {
		return err
	}
	stored, ok := r.files[file.ID]
	if !ok || stored.UserID != file.UserID {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}
	copied := *file
	r.files[file.ID] = &copied
	return nil
}

func (r *fakeFileRepo) UpdateTags(ctx context.Context, id, userID string, tags []string) error {
	if err := r.updateTagsErr[id]; err != nil {
		return err
	}
	file, ok := r.files[id]
	if !ok || file.UserID != userID {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	file.Tags = append([]string(nil), tags...)
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id, userID string) error {
	file, ok := r.files[id]
	if !ok || file.UserID != userID {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(r.files, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeFileRepo) Search(ctx context.Context, userID string, filter *repositories.SearchFilter) ([]models.File, error) {
	// Mirrors the SQL predicate closely enough for service-level tests.
	matches := []models.File{}
	q := strings.ToLower(filter.Query)
	for _, id := range r.order {
		file := r.files[id]
		if file.UserID != userID {
			continue
		}
		if q != "" && !fileMatchesQuery(file, q) {
			continue
		}
		if filter.Tag != "" && !hasTagFold(file.Tags, filter.Tag) {
			continue
		}
		if filter.Type != "" && !strings.Contains(strings.ToLower(file.MimeType), strings.ToLower(filter.Type)) {
			continue
		}
		matches = append(matches, *file)
	}
	return matches, nil
}

func fileMatchesQuery(file *models.File, q string) bool {
	if strings.Contains(strings.ToLower(file.Name), q) || strings.Contains(strings.ToLower(file.DisplayName), q) {
		return true
	}
	for _, tag := range file.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func hasTagFold(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

func (r *fakeFileRepo) Usage(ctx context.Context, userID string) (int64, int, error) {
	var total int64
	count := 0
	for _, file := range r.files {
		if file.UserID == userID {
			total += file.Size
			count++
		}
	}
	return total, count, nil
}

// fakeFolderRepo is an in-memory FolderRepository.
type fakeFolderRepo struct {
	folders   map[string]*models.Folder
	nextID    int
	createErr error
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.folders {
		if existing.UserID == folder.UserID && strings.EqualFold(existing.Name, folder.Name) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
	}
	r.nextID++
	folder.ID = fmt.Sprintf("folder-%d", r.nextID)
	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	folder, ok := r.folders[id]
	if !ok || folder.UserID != userID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copied := *folder
	return &copied, nil
}

func (r *fakeFolderRepo) GetByName(ctx context.Context, userID, name string) (*models.Folder, error) {
	for _, folder := range r.folders {
		if folder.UserID == userID && strings.EqualFold(folder.Name, name) {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("folder '%s': %w", name, domain.ErrNotFound)
}

func (r *fakeFolderRepo) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	folders := []models.Folder{}
	for _, folder := range r.folders {
		if folder.UserID == userID {
			folders = append(folders, *folder)
		}
	}
	return folders, nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, userID string) error {
	folder, ok := r.folders[id]
	if !ok || folder.UserID != userID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	return nil
}

// stubTagger answers from a fixed table keyed by file name.
type stubTagger struct {
	suggestions map[string]*models.TagSuggestion
	err         error
	calls       int
}

func (t *stubTagger) SuggestTags(ctx context.Context, fileName, mimeType, preview string) (*models.TagSuggestion, error) {
	t.calls++
	if t.err != nil {
		return nil, t.err
	}
	if suggestion, ok := t.suggestions[fileName]; ok {
		copied := *suggestion
		copied.Tags = append([]string(nil), suggestion.Tags...)
		return &copied, nil
	}
	return &models.TagSuggestion{Tags: []string{"uncategorized"}, Confidence: 0.7, Source: models.TagSourceFallback}, nil
}

// fakeObjectStore keeps objects in memory.
type fakeObjectStore struct {
	objects   map[string][]byte
	putErr    error
	removeErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (s *fakeObjectStore) Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[objectKey] = data
	return nil
}

func (s *fakeObjectStore) Get(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	data, ok := s.objects[objectKey]
	if !ok {
		return nil, fmt.Errorf("object %s not found", objectKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeObjectStore) Remove(ctx context.Context, objectKey string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.objects, objectKey)
	return nil
}
