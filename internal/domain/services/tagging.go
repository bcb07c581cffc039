package services

import (
	"context"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
)

// Tagger suggests tags (and optionally a folder and an improved name) for a
// file based on its name, MIME type, and an optional short content preview.
//
// Implementations never fail: when the primary path is unavailable they
// degrade to a deterministic suggestion instead of returning an error.
type Tagger interface {
	SuggestTags(ctx context.Context, fileName, mimeType, preview string) (*models.TagSuggestion, error)
}
