package models

// Tag suggestion sources.
const (
	TagSourceAI       = "ai"
	TagSourceFallback = "fallback"
)

// TagSuggestion is the tagging contract: a non-empty set of lowercase
// category strings plus optional folder/name suggestions and a confidence
// score in [0,1].
type TagSuggestion struct {
	Tags                []string `json:"tags"`
	SuggestedFolderName string   `json:"suggestedFolderName,omitempty"`
	SuggestedFileName   string   `json:"suggestedFileName,omitempty"`
	Confidence          float64  `json:"confidence"`
	Source              string   `json:"source"` // "ai" or "fallback"
}
