// Package lookup holds the dictionary-side logic of the pipeline: the
// normalization of structured-source entries and the extraction of records
// from the HTML dictionary's markup. Both work against the ports in
// internal/provider and never touch the network themselves.
package lookup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yiddishlab/wordlist/internal/domain"
	"github.com/yiddishlab/wordlist/internal/provider"
)

// DefaultLanguage is the target language requested from the structured source.
const DefaultLanguage = "Yiddish"

// DefaultRelations are the entry relations requested from the structured source.
var DefaultRelations = []string{"derived terms", "alternative forms", "see also"}

const (
	headerSeparator = "•"      // middle dot between lexeme and transliteration
	nbsp            = "\u00a0" // precedes the gender marker in headers
)

// StructuredLookup fetches and normalizes entries from the structured
// dictionary source.
type StructuredLookup struct {
	client    provider.StructuredClient
	language  string
	relations []string
	log       *slog.Logger
}

// NewStructuredLookup creates a StructuredLookup. Empty language/relations
// fall back to the Yiddish defaults.
func NewStructuredLookup(client provider.StructuredClient, language string, relations []string, logger *slog.Logger) *StructuredLookup {
	if language == "" {
		language = DefaultLanguage
	}
	if len(relations) == 0 {
		relations = DefaultRelations
	}
	return &StructuredLookup{
		client:    client,
		language:  language,
		relations: relations,
		log:       logger.With("source", "structured"),
	}
}

// LookupAll fetches entries for every word. A failed lookup never aborts the
// batch: the word is skipped and reported in the returned failure map.
func (l *StructuredLookup) LookupAll(ctx context.Context, words []string) (map[string][]domain.DictionaryEntry, map[string]error) {
	entries := make(map[string][]domain.DictionaryEntry, len(words))
	failed := make(map[string]error)

	for _, word := range words {
		if err := ctx.Err(); err != nil {
			failed[word] = err
			continue
		}

		raw, err := l.client.Fetch(ctx, word, l.language, l.relations)
		if err != nil {
			l.log.Warn("lookup failed",
				slog.String("word", word), slog.String("error", err.Error()))
			failed[word] = err
			continue
		}

		normalized := make([]domain.DictionaryEntry, 0, len(raw))
		for _, r := range raw {
			normalized = append(normalized, normalizeEntry(r))
		}
		entries[word] = normalized
	}

	return entries, failed
}

// normalizeEntry maps one raw entry to the output shape: pronunciations
// flattened to text-only, definition headers split into derived fields, and
// the transliteration collapsed to a scalar when all definitions agree.
func normalizeEntry(raw provider.RawEntry) domain.DictionaryEntry {
	entry := domain.DictionaryEntry{
		Etymology:      raw.Etymology,
		Pronunciations: raw.Pronunciations.Text,
	}

	var translits domain.Transliteration
	for _, def := range raw.Definitions {
		d := domain.Definition{
			PartOfSpeech: def.PartOfSpeech,
			Examples:     def.Examples,
		}
		for _, rel := range def.RelatedWords {
			d.RelatedWords = append(d.RelatedWords, domain.Relation{
				RelationshipType: rel.RelationshipType,
				Words:            rel.Words,
			})
		}

		if len(def.Text) > 0 {
			h := parseHeader(def.Text[0])
			d.Lexeme = h.lexeme
			d.Gender = h.gender
			d.Plural = h.plural
			d.Participle = h.participle
			d.Text = def.Text[1:]
			translits = append(translits, h.transliteration)
		}

		entry.Definitions = append(entry.Definitions, d)
	}

	entry.Transliteration = collapseTransliteration(translits)
	return entry
}

// collapseTransliteration reduces the per-definition list to a single value
// when every definition produced the identical string.
func collapseTransliteration(translits domain.Transliteration) domain.Transliteration {
	if len(translits) == 0 {
		return nil
	}
	for _, t := range translits[1:] {
		if t != translits[0] {
			return translits
		}
	}
	return domain.Transliteration{translits[0]}
}

// headerFields are the values split out of a definition's composite header
// line, e.g. `הונט • (hunt) m (plural הינט)`.
type headerFields struct {
	lexeme          string
	transliteration string
	gender          *string
	plural          *string
	participle      *string
}

// parseHeader splits the composite header line. The lexeme sits before the
// middle dot; the parenthesized transliteration follows it; a non-breaking
// space precedes the gender marker; "plural" and "participle" introduce
// their respective forms.
func parseHeader(header string) headerFields {
	var h headerFields

	if i := strings.Index(header, headerSeparator); i >= 0 {
		h.lexeme = strings.TrimSpace(header[:i])

		rest := header[i+len(headerSeparator):]
		if j := strings.Index(rest, ")"); j >= 0 {
			rest = rest[:j]
		}
		h.transliteration = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "("))
	} else {
		h.lexeme = strings.TrimSpace(header)
	}

	if i := strings.Index(header, nbsp); i >= 0 {
		tok := header[i+len(nbsp):]
		if j := strings.Index(tok, ","); j >= 0 {
			tok = tok[:j]
		}
		if g := strings.TrimSpace(tok); g != "" {
			h.gender = &g
		}
	}

	if i := strings.Index(header, "plural"); i >= 0 {
		if p := strings.TrimSpace(header[i+len("plural"):]); p != "" {
			h.plural = &p
		}
	}

	if i := strings.Index(header, "participle"); i >= 0 {
		p := strings.ReplaceAll(header[i+len("participle"):], "))", ")")
		if p = strings.TrimSpace(p); p != "" {
			h.participle = &p
		}
	}

	return h
}
