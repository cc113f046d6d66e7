// Package app wires the pipeline together: tokenize the story, then run
// each requested dictionary source over the words and attach its results.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/yiddishlab/wordlist/internal/domain"
	"github.com/yiddishlab/wordlist/internal/lookup"
	"github.com/yiddishlab/wordlist/internal/provider"
	"github.com/yiddishlab/wordlist/internal/tokenizer"
)

// Source names a dictionary source the pipeline can run.
type Source string

const (
	SourceStructured Source = "structured"
	SourceHTML       Source = "html"
)

// ParseSources parses a comma-separated source list. Duplicates collapse;
// order is preserved.
func ParseSources(raw string) ([]Source, error) {
	var out []Source
	seen := make(map[Source]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		src := Source(part)
		switch src {
		case SourceStructured, SourceHTML:
		default:
			return nil, fmt.Errorf("unknown source %q (want %q or %q)", part, SourceStructured, SourceHTML)
		}
		if !seen[src] {
			seen[src] = true
			out = append(out, src)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sources selected")
	}
	return out, nil
}

// Result holds pipeline statistics.
type Result struct {
	Words             int
	StructuredLookups int
	StructuredFailed  int
	KentuckyLookups   int
}

// Pipeline sequences tokenization and dictionary enrichment. Collaborators
// for sources that were not requested may be nil.
type Pipeline struct {
	structured *lookup.StructuredLookup
	kentucky   *lookup.KentuckyExtractor
	session    provider.BrowserSession
	log        *slog.Logger
}

// New creates a Pipeline.
func New(structured *lookup.StructuredLookup, kentucky *lookup.KentuckyExtractor, session provider.BrowserSession, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		structured: structured,
		kentucky:   kentucky,
		session:    session,
		log:        logger,
	}
}

// Build tokenizes text and enriches every word from each requested source.
// Sources populate disjoint fields, so their order does not affect the
// result. A requested source with no collaborator fails before any lookup
// work starts.
func (p *Pipeline) Build(ctx context.Context, text string, sources []Source) (domain.Wordlist, Result, error) {
	var res Result

	if err := p.checkSources(sources); err != nil {
		return nil, res, err
	}

	wordlist, err := tokenizer.Tokenize(text)
	if err != nil {
		return nil, res, fmt.Errorf("tokenize: %w", err)
	}
	res.Words = len(wordlist)
	p.log.Info("text tokenized", slog.Int("words", res.Words))

	if res.Words == 0 {
		return wordlist, res, nil
	}

	// Sorted order keeps runs reproducible; the browser session sees a
	// deterministic submission sequence.
	words := make([]string, 0, len(wordlist))
	for w := range wordlist {
		words = append(words, w)
	}
	sort.Strings(words)

	for _, src := range sources {
		switch src {
		case SourceStructured:
			entries, failed := p.structured.LookupAll(ctx, words)
			for w, e := range entries {
				wordlist[w].Wiktionary = e
			}
			res.StructuredLookups = len(entries)
			res.StructuredFailed = len(failed)
			p.log.Info("structured lookup done",
				slog.Int("found", len(entries)),
				slog.Int("failed", len(failed)),
			)
		case SourceHTML:
			records, err := p.kentucky.LookupAll(ctx, p.session, words)
			if err != nil {
				return nil, res, err
			}
			for w, r := range records {
				wordlist[w].Kentucky = r
			}
			res.KentuckyLookups = len(records)
			p.log.Info("kentucky lookup done", slog.Int("found", len(records)))
		}
	}

	return wordlist, res, nil
}

// checkSources verifies every requested source has its collaborator before
// any work starts.
func (p *Pipeline) checkSources(sources []Source) error {
	for _, src := range sources {
		switch src {
		case SourceStructured:
			if p.structured == nil {
				return fmt.Errorf("structured source requested: %w", domain.ErrSourceUnavailable)
			}
		case SourceHTML:
			if p.kentucky == nil || p.session == nil {
				return fmt.Errorf("html source requested: %w", domain.ErrSourceUnavailable)
			}
		default:
			return fmt.Errorf("unknown source %q", src)
		}
	}
	return nil
}
