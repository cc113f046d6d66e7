package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	// ErrNotFound is returned by the structured source when a word has no entry.
	ErrNotFound = errors.New("not found")

	// ErrNoTokens is returned by the tokenizer when the stripped text contains
	// no tokens at all; frequency is undefined for an empty token sequence.
	ErrNoTokens = errors.New("no tokens in text")

	// ErrSourceUnavailable indicates a requested dictionary source has no
	// working collaborator (e.g. no browser runtime). Raised before any
	// lookup work starts.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMarkup indicates the HTML dictionary page no longer matches the
	// structural contract the extractor depends on.
	ErrMarkup = errors.New("markup contract violation")
)

// MarkupError identifies which word was being processed when the HTML
// dictionary's structure stopped matching expectations. It is fatal for the
// whole batch: a changed page means every later extraction is suspect.
type MarkupError struct {
	Word   string
	Detail string
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("markup contract violation for %q: %s", e.Word, e.Detail)
}

func (e *MarkupError) Unwrap() error { return ErrMarkup }

// NewMarkupError creates a MarkupError for the given word.
func NewMarkupError(word, format string, args ...any) *MarkupError {
	return &MarkupError{Word: word, Detail: fmt.Sprintf(format, args...)}
}
