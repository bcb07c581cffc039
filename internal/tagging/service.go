package tagging

import (
	"context"
	"log/slog"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/services"
)

// Service implements services.Tagger: primary AI path with rule-table
// fallback. A single primary failure (network error, malformed JSON, empty
// reply) triggers fallback immediately; there are no retries, so AI outages
// degrade tag quality instead of availability.
type Service struct {
	primary services.Tagger // nil when no API key is configured
	rules   *RuleTable
	logger  *slog.Logger
}

// NewService creates the tagging service. primary may be nil, in which case
// every request takes the fallback path.
func NewService(primary services.Tagger, rules *RuleTable, logger *slog.Logger) *Service {
	return &Service{
		primary: primary,
		rules:   rules,
		logger:  logger,
	}
}

// SuggestTags returns a tag suggestion for the file. It never returns an
// error: primary-path failures are logged and answered from the rule table.
func (s *Service) SuggestTags(ctx context.Context, fileName, mimeType, preview string) (*models.TagSuggestion, error) {
	if s.primary != nil {
		suggestion, err := s.primary.SuggestTags(ctx, fileName, mimeType, preview)
		if err == nil {
			return suggestion, nil
		}
		s.logger.Warn("AI tagging failed, using fallback rules",
			"file_name", fileName,
			"mime_type", mimeType,
			"error", err,
		)
	}

	return s.rules.Suggest(fileName, mimeType), nil
}
