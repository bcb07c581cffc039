package service

import (
	"strings"

	"github.com/Saikat257-ui/Smart-File-Organizer/internal/domain/models"
)

// isSimilar reports whether candidate is similar to source. A candidate
// matches if ANY of:
//
//	a. its MIME type string is exactly equal to the source's, or
//	b. its MIME main-type and file extension both equal the source's
//	   (case-insensitive), or
//	c. its extension equals the source's and the two names share a keyword.
//
// The predicate is symmetric: (a) and (b) compare equalities, and keyword
// sharing in (c) checks containment in both directions.
func isSimilar(source, candidate *models.File) bool {
	if candidate.MimeType == source.MimeType {
		return true
	}

	sameExt := source.Extension() == candidate.Extension()

	if sameExt && mimeMainType(candidate.MimeType) == mimeMainType(source.MimeType) {
		return true
	}

	if sameExt && shareKeyword(nameKeywords(source.Name), nameKeywords(candidate.Name)) {
		return true
	}

	return false
}

// mimeMainType returns the lowercased substring before "/", e.g. "image"
// for "image/png". Types without a slash are returned whole.
func mimeMainType(mimeType string) string {
	mimeType = strings.ToLower(mimeType)
	if idx := strings.Index(mimeType, "/"); idx >= 0 {
		return mimeType[:idx]
	}
	return mimeType
}

// nameKeywords tokenizes a file name: lowercase, every non-alphanumeric
// character becomes a space, split on whitespace, tokens of length <= 2
// are discarded.
func nameKeywords(name string) []string {
	mapped := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return ' '
	}, name)

	var keywords []string
	for _, token := range strings.Fields(mapped) {
		if len(token) > 2 {
			keywords = append(keywords, token)
		}
	}
	return keywords
}

// shareKeyword reports whether any token from one set is a substring of,
// contains, or equals any token from the other.
func shareKeyword(a, b []string) bool {
	for _, ka := range a {
		for _, kb := range b {
			if strings.Contains(ka, kb) || strings.Contains(kb, ka) {
				return true
			}
		}
	}
	return false
}
