// Package tokenizer turns the raw story text into the initial wordlist.
//
// Tokenization is deliberately naive: newlines become spaces, punctuation
// and digits are deleted outright, and the remainder is split on single
// spaces. Tokens are compared by exact string equality, with no case folding
// and no diacritic normalization.
package tokenizer

import (
	"strings"

	"github.com/yiddishlab/wordlist/internal/domain"
)

// stripped characters: ASCII punctuation plus the em-dash and the two curly
// double-quote variants that show up in Yiddish story texts.
const (
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" + "—“„"
	digits      = "0123456789"
)

// Tokenize builds the wordlist for text. Each unique token maps to its
// ordered occurrence positions (0-based offsets into the split sequence),
// its count, and its relative frequency.
//
// An empty text yields an empty wordlist. Text that is non-empty but strips
// down to zero tokens returns domain.ErrNoTokens: frequency would require
// dividing by zero and the caller must decide what such input means.
func Tokenize(text string) (domain.Wordlist, error) {
	if text == "" {
		return domain.Wordlist{}, nil
	}

	tokens := splitTokens(text)
	if len(tokens) == 0 {
		return nil, domain.ErrNoTokens
	}

	total := float64(len(tokens))
	wordlist := make(domain.Wordlist)
	for i, tok := range tokens {
		entry, ok := wordlist[tok]
		if !ok {
			entry = &domain.WordEntry{}
			wordlist[tok] = entry
		}
		entry.Index = append(entry.Index, i)
	}

	for _, entry := range wordlist {
		entry.Count = len(entry.Index)
		entry.Frequency = float64(entry.Count) / total
	}

	return wordlist, nil
}

// splitTokens applies the newline/punctuation/digit stripping and splits the
// result on single spaces, discarding empty tokens.
func splitTokens(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(punctuation, r) || strings.ContainsRune(digits, r) {
			continue
		}
		b.WriteRune(r)
	}

	var tokens []string
	for _, t := range strings.Split(b.String(), " ") {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
