package tagging

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantTags   []string
		wantFolder string
		wantName   string
		wantConf   float64
		wantErr    bool
	}{
		{
			name:       "bare JSON",
			reply:      `{"tags": ["invoice", "finance"], "suggestedFolderName": "Invoices", "confidence": 0.9}`,
			wantTags:   []string{"invoice", "finance"},
			wantFolder: "Invoices",
			wantConf:   0.9,
		},
		{
			name: "fenced JSON",
			reply: "```json\n" +
				`{"tags": ["photo"], "suggestedFolderName": "Photos", "suggestedFileName": "Beach Day", "confidence": 0.8}` +
				"\n```",
			wantTags:   []string{"photo"},
			wantFolder: "Photos",
			wantName:   "Beach Day",
			wantConf:   0.8,
		},
		{
			name:     "prose around the object",
			reply:    `Here is my analysis: {"tags": ["report"], "confidence": 0.75} Hope that helps.`,
			wantTags: []string{"report"},
			wantConf: 0.75,
		},
		{
			name:     "tags normalized and deduplicated",
			reply:    `{"tags": [" Invoice ", "invoice", "FINANCE", ""], "confidence": 0.5}`,
			wantTags: []string{"invoice", "finance"},
			wantConf: 0.5,
		},
		{
			name:     "confidence clamped high",
			reply:    `{"tags": ["x"], "confidence": 3.5}`,
			wantTags: []string{"x"},
			wantConf: 1,
		},
		{
			name:     "confidence clamped low",
			reply:    `{"tags": ["x"], "confidence": -1}`,
			wantTags: []string{"x"},
			wantConf: 0,
		},
		{
			name:     "missing confidence defaults to zero",
			reply:    `{"tags": ["x"]}`,
			wantTags: []string{"x"},
			wantConf: 0,
		},
		{
			name:    "no JSON object",
			reply:   "I cannot categorize this file.",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			reply:   `{"tags": ["x",}`,
			wantErr: true,
		},
		{
			name:    "tags not an array",
			reply:   `{"tags": "invoice"}`,
			wantErr: true,
		},
		{
			name:    "empty tag array",
			reply:   `{"tags": [], "confidence": 0.9}`,
			wantErr: true,
		},
		{
			name:    "tags all blank",
			reply:   `{"tags": ["", "  "]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestion(tt.reply)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSuggestion() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSuggestion() error = %v", err)
			}

			if !reflect.DeepEqual(got.Tags, tt.wantTags) {
				t.Errorf("tags = %v, want %v", got.Tags, tt.wantTags)
			}
			if got.SuggestedFolderName != tt.wantFolder {
				t.Errorf("folder = %q, want %q", got.SuggestedFolderName, tt.wantFolder)
			}
			if got.SuggestedFileName != tt.wantName {
				t.Errorf("file name = %q, want %q", got.SuggestedFileName, tt.wantName)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if got.Source != "ai" {
				t.Errorf("source = %q, want %q", got.Source, "ai")
			}
		})
	}
}

func TestSystemPromptMentionsSchema(t *testing.T) {
	// The parser depends on these field names appearing in the reply.
	for _, field := range []string{"tags", "suggestedFolderName", "suggestedFileName", "confidence"} {
		if !strings.Contains(systemPrompt, field) {
			t.Errorf("system prompt does not mention %q", field)
		}
	}
}
