package tagging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
)

type fakePrimary struct {
	suggestion *models.TagSuggestion
	err        error
	calls      int
}

func (f *fakePrimary) SuggestTags(ctx context.Context, fileName, mimeType, preview string) (*models.TagSuggestion, error) {
	f.calls++
	return f.suggestion, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustLoadRules(t *testing.T) *RuleTable {
	t.Helper()
	table, err := LoadRuleTable()
	if err != nil {
		t.Fatalf("LoadRuleTable() error = %v", err)
	}
	return table
}

func TestServiceSuggestTags(t *testing.T) {
	t.Run("primary answer wins", func(t *testing.T) {
		primary := &fakePrimary{suggestion: &models.TagSuggestion{
			Tags:       []string{"invoice"},
			Confidence: 0.95,
			Source:     models.TagSourceAI,
		}}
		svc := NewService(primary, mustLoadRules(t), discardLogger())

		got, err := svc.SuggestTags(context.Background(), "invoice.pdf", "application/pdf", "")
		if err != nil {
			t.Fatalf("SuggestTags() error = %v", err)
		}
		if got.Source != models.TagSourceAI {
			t.Errorf("source = %q, want %q", got.Source, models.TagSourceAI)
		}
		if primary.calls != 1 {
			t.Errorf("primary calls = %d, want 1", primary.calls)
		}
	})

	t.Run("primary failure falls back to rules", func(t *testing.T) {
		primary := &fakePrimary{err: errors.New("api timeout")}
		svc := NewService(primary, mustLoadRules(t), discardLogger())

		got, err := svc.SuggestTags(context.Background(), "resume_john.pdf", "application/pdf", "")
		if err != nil {
			t.Fatalf("SuggestTags() error = %v", err)
		}
		if got.Source != models.TagSourceFallback {
			t.Errorf("source = %q, want %q", got.Source, models.TagSourceFallback)
		}
		want := map[string]bool{"document": false, "resume": false, "personal": false}
		for _, tag := range got.Tags {
			if _, ok := want[tag]; ok {
				want[tag] = true
			}
		}
		for tag, found := range want {
			if !found {
				t.Errorf("fallback tags %v missing %q", got.Tags, tag)
			}
		}
		if got.SuggestedFolderName != "Resumes" {
			t.Errorf("folder = %q, want %q", got.SuggestedFolderName, "Resumes")
		}
	})

	t.Run("nil primary always uses rules", func(t *testing.T) {
		svc := NewService(nil, mustLoadRules(t), discardLogger())

		got, err := svc.SuggestTags(context.Background(), "photo.jpg", "image/jpeg", "")
		if err != nil {
			t.Fatalf("SuggestTags() error = %v", err)
		}
		if got.Source != models.TagSourceFallback {
			t.Errorf("source = %q, want %q", got.Source, models.TagSourceFallback)
		}
		if got.SuggestedFolderName != "Photos" {
			t.Errorf("folder = %q, want %q", got.SuggestedFolderName, "Photos")
		}
	})
}
