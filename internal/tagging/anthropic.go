package tagging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tidwall/gjson"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
)

const systemPrompt = `You are a file-organization expert. Given a file's name, MIME type, and an optional content preview, categorize it.

Respond with ONLY a JSON object matching this schema, no other text:
{"tags": ["lowercase category strings"], "suggestedFolderName": "optional folder name", "suggestedFileName": "optional improved file name", "confidence": 0.0}

tags must be non-empty. confidence is between 0 and 1.`

// AnthropicTagger is the primary tagging path: one structured call to the
// Anthropic API per file. No retries; any failure is reported to the caller,
// which falls back to the rule table.
type AnthropicTagger struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicTagger creates the primary tagger with the given API key.
func NewAnthropicTagger(apiKey, model string) (*AnthropicTagger, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicTagger{
		client: &client,
		model:  model,
	}, nil
}

// SuggestTags requests a tag suggestion from the model.
func (t *AnthropicTagger) SuggestTags(ctx context.Context, fileName, mimeType, preview string) (*models.TagSuggestion, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "File name: %s\nMIME type: %s\n", fileName, mimeType)
	if preview != "" {
		fmt.Fprintf(&prompt, "Content preview:\n%s\n", preview)
	}

	message, err := t.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(t.model),
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: systemPrompt,
			},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.String())),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var reply strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			reply.WriteString(content.Text)
		}
	}

	return parseSuggestion(reply.String())
}

// parseSuggestion extracts a TagSuggestion from the model reply. Replies are
// usually bare JSON but may arrive wrapped in code fences or prose, so the
// object is located positionally and read with gjson.
func parseSuggestion(reply string) (*models.TagSuggestion, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in reply")
	}

	doc := reply[start : end+1]
	if !gjson.Valid(doc) {
		return nil, errors.New("malformed JSON in reply")
	}

	tagsResult := gjson.Get(doc, "tags")
	if !tagsResult.IsArray() {
		return nil, errors.New("reply missing tags array")
	}

	var tags []string
	seen := make(map[string]bool)
	for _, item := range tagsResult.Array() {
		tag := strings.ToLower(strings.TrimSpace(item.String()))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil, errors.New("reply has empty tag set")
	}

	confidence := gjson.Get(doc, "confidence").Float()
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return &models.TagSuggestion{
		Tags:                tags,
		SuggestedFolderName: strings.TrimSpace(gjson.Get(doc, "suggestedFolderName").String()),
		SuggestedFileName:   strings.TrimSpace(gjson.Get(doc, "suggestedFileName").String()),
		Confidence:          confidence,
		Source:              models.TagSourceAI,
	}, nil
}
