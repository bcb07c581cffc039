package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrganizeFiles(t *testing.T) {
	const userID = "user-1"

	t.Run("routes files into suggested folders", func(t *testing.T) {
		fileRepo := newFakeFileRepo()
		folderRepo := newFakeFolderRepo()
		fileRepo.add(models.File{UserID: userID, Name: "invoice_march.pdf", MimeType: "application/pdf"})
		fileRepo.add(models.File{UserID: userID, Name: "invoice_april.pdf", MimeType: "application/pdf"})
		fileRepo.add(models.File{UserID: userID, Name: "beach.jpg", MimeType: "image/jpeg"})

		tagger := &stubTagger{suggestions: map[string]*models.TagSuggestion{
			"invoice_march.pdf": {Tags: []string{"invoice", "finance"}, SuggestedFolderName: "Invoices", Confidence: 0.9, Source: models.TagSourceAI},
			"invoice_april.pdf": {Tags: []string{"invoice", "finance"}, SuggestedFolderName: "Invoices", Confidence: 0.9, Source: models.TagSourceAI},
			"beach.jpg":         {Tags: []string{"photo"}, SuggestedFolderName: "Photos", Confidence: 0.8, Source: models.TagSourceAI},
		}}

		svc := NewOrganizerService(fileRepo, folderRepo, tagger, testLogger())
		report, err := svc.OrganizeFiles(context.Background(), userID)
		if err != nil {
			t.Fatalf("OrganizeFiles() error = %v", err)
		}

		if report.FoldersCreated != 2 {
			t.Errorf("FoldersCreated = %d, want 2", report.FoldersCreated)
		}
		if report.FilesMoved != 3 {
			t.Errorf("FilesMoved = %d, want 3", report.FilesMoved)
		}

		unfoldered, _ := fileRepo.ListByFolder(context.Background(), nil, userID)
		if len(unfoldered) != 0 {
			t.Errorf("unfoldered files after organize = %d, want 0", len(unfoldered))
		}
	})

	t.Run("reuses existing folder case-insensitively", func(t *testing.T) {
		fileRepo := newFakeFileRepo()
		folderRepo := newFakeFolderRepo()
		existing := &models.Folder{UserID: userID, Name: "invoices"}
		if err := folderRepo.Create(context.Background(), existing); err != nil {
			t.Fatalf("seed folder: %v", err)
		}
		fileRepo.add(models.File{UserID: userID, Name: "invoice_may.pdf", MimeType: "application/pdf"})

		tagger := &stubTagger{suggestions: map[string]*models.TagSuggestion{
			"invoice_may.pdf": {Tags: []string{"invoice"}, SuggestedFolderName: "Invoices", Source: models.TagSourceAI},
		}}

		svc := NewOrganizerService(fileRepo, folderRepo, tagger, testLogger())
		report, err := svc.OrganizeFiles(context.Background(), userID)
		if err != nil {
			t.Fatalf("OrganizeFiles() error = %v", err)
		}

		if report.FoldersCreated != 0 {
			t.Errorf("FoldersCreated = %d, want 0", report.FoldersCreated)
		}
		if report.FilesMoved != 1 {
			t.Errorf("FilesMoved = %d, want 1", report.FilesMoved)
		}
		if len(folderRepo.folders) != 1 {
			t.Errorf("folder count = %d, want 1", len(folderRepo.folders))
		}

		moved, _ := fileRepo.GetByID(context.Background(), "file-1", userID)
		if moved.FolderID == nil || *moved.FolderID != existing.ID {
			t.Errorf("file folder = %v, want %s", moved.FolderID, existing.ID)
		}
	})

	t.Run("never duplicates a folder name within one run", func(t *testing.T) {
		fileRepo := newFakeFileRepo()
		folderRepo := newFakeFolderRepo()
		fileRepo.add(models.File{UserID: userID, Name: "a.pdf", MimeType: "application/pdf"})
		fileRepo.add(models.File{UserID: userID, Name: "b.pdf", MimeType: "application/pdf"})

		tagger := &stubTagger{suggestions: map[string]*models.TagSuggestion{
			"a.pdf": {Tags: []string{"document"}, SuggestedFolderName: "Documents", Source: models.TagSourceAI},
			"b.pdf": {Tags: []string{"document"}, SuggestedFolderName: "DOCUMENTS", Source: models.TagSourceAI},
		}}

		svc := NewOrganizerService(fileRepo, folderRepo, tagger, testLogger())
		report, err := svc.OrganizeFiles(context.Background(), userID)
		if err != nil {
			t.Fatalf("OrganizeFiles() error = %v", err)
		}

		if report.FoldersCreated != 1 {
			t.Errorf("FoldersCreated = %d, want 1", report.FoldersCreated)
		}
		if len(folderRepo.folders) != 1 {
			t.Errorf("folder count = %d, want 1", len(folderRepo.folders))
		}
	})

	t.Run("skips files without a folder suggestion", func(t *testing.T) {
		fileRepo := newFakeFileRepo()
		folderRepo := newFakeFolderRepo()
		fileRepo.add(models.File{UserID: userID, Name: "notes.log", MimeType: "text/plain", Tags: []string{"old"}})

		tagger := &stubTagger{suggestions: map[string]*models.TagSuggestion{
			"notes.log": {Tags: []string{"data"}, Source: models.TagSourceFallback},
		}}

		svc := NewOrganizerService(fileRepo, folderRepo, tagger, testLogger())
		report, err := svc.OrganizeFiles(context.Background(), userID)
		if err != nil {
			t.Fatalf("OrganizeFiles() error = %v", err)
		}

		if report.FilesMoved != 0 || report.FoldersCreated != 0 {
			t.Errorf("report = %+v, want zero", report)
		}

		// An untouched file keeps its original tags.
		file, _ := fileRepo.GetByID(context.Background(), "file-1", userID)
		if len(file.Tags) != 1 || file.Tags[0] != "old" {
			t.Errorf("tags = %v, want [old]", file.Tags)
		}
	})

	t.Run("continues past per-file update failures", func(t *testing.T) {
		fileRepo := newFakeFileRepo()
		folderRepo := newFakeFolderRepo()
		fileRepo.add(models.File{UserID: userID, Name: "invoice_a.pdf", MimeType: "application/pdf"})
		fileRepo.add(models.File{UserID: userID, Name: "invoice_b.pdf", MimeType: "application/pdf"})
		fileRepo.updateErr["file-1"] = errors.New("write failed")

		tagger := &stubTagger{suggestions: map[string]*models.TagSuggestion{
			"invoice_a.pdf": {Tags: []string{"invoice"}, SuggestedFolderName: "Invoices", Source: models.TagSourceAI},
			"invoice_b.pdf": {Tags: []string{"invoice"}, SuggestedFolderName: "Invoices", Source: models.TagSourceAI},
		}}

		svc := NewOrganizerService(fileRepo, folderRepo, tagger, testLogger())
		report, err := svc.OrganizeFiles(context.Background(), userID)
		if err != nil {
			t.Fatalf("OrganizeFiles() error = %v", err)
		}

		if report.FilesMoved != 1 {
			t.Errorf("FilesMoved = %d, want 1", report.FilesMoved)
		}
	})

	t.Run("ignores already foldered files", func(t *testing.T) {
		fileRepo := newFakeFileRepo()
		folderRepo := newFakeFolderRepo()
		folderID := "folder-existing"
		fileRepo.add(models.File{UserID: userID, Name: "sorted.pdf", MimeType: "application/pdf", FolderID: &folderID})

		tagger := &stubTagger{}
		svc := NewOrganizerService(fileRepo, folderRepo, tagger, testLogger())
		report, err := svc.OrganizeFiles(context.Background(), userID)
		if err != nil {
			t.Fatalf("OrganizeFiles() error = %v", err)
		}

		if tagger.calls != 0 {
			t.Errorf("tagger calls = %d, want 0", tagger.calls)
		}
		if report.FilesMoved != 0 {
			t.Errorf("FilesMoved = %d, want 0", report.FilesMoved)
		}
	})
}
