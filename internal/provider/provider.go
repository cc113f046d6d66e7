// Package provider defines the ports for the two external dictionary
// collaborators. Adapters live under internal/adapter; the lookup logic
// depends only on these interfaces so it can be tested against fakes.
package provider

import "context"

// StructuredClient fetches pre-parsed lexical entries for a word from the
// structured dictionary source.
//
// Implementations return domain.ErrNotFound when the word has no entry.
type StructuredClient interface {
	Fetch(ctx context.Context, word, language string, relations []string) ([]RawEntry, error)
}

// BrowserSession drives the interactive HTML dictionary. One session is
// shared across all words of a run and must be used strictly sequentially:
// the page is stateful and a concurrent submit would corrupt it.
type BrowserSession interface {
	// SubmitAndGetPage types word into the dictionary's search field,
	// confirms, and returns the resulting page markup.
	SubmitAndGetPage(ctx context.Context, word string) (string, error)
	Close() error
}

// RawEntry is one entry exactly as the structured service returns it.
type RawEntry struct {
	Etymology      string            `json:"etymology"`
	Definitions    []RawDefinition   `json:"definitions"`
	Pronunciations RawPronunciations `json:"pronunciations"`
}

// RawDefinition is one definition block of a raw entry. Text[0] is the
// composite header line; the remainder are the human-readable definition
// lines.
type RawDefinition struct {
	PartOfSpeech string        `json:"partOfSpeech"`
	Text         []string      `json:"text"`
	RelatedWords []RawRelation `json:"relatedWords"`
	Examples     []string      `json:"examples"`
}

// RawRelation groups related words by relationship type.
type RawRelation struct {
	RelationshipType string   `json:"relationshipType"`
	Words            []string `json:"words"`
}

// RawPronunciations carries pronunciation text lines and audio links.
type RawPronunciations struct {
	Text  []string `json:"text"`
	Audio []string `json:"audio"`
}
