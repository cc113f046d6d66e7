package domain

import "encoding/json"

// Wordlist maps each unique token of the source text to its aggregated record.
type Wordlist map[string]*WordEntry

// WordEntry is the per-word record: occurrence statistics from the tokenizer
// plus the optional enrichment attached by each dictionary source.
type WordEntry struct {
	// Index holds the 0-based positions of the word in the tokenized text,
	// in order of occurrence.
	Index     []int   `json:"index"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`

	Wiktionary []DictionaryEntry `json:"wiktionary,omitempty"`
	Kentucky   *KentuckyRecord   `json:"kentucky,omitempty"`
}

// DictionaryEntry is a single entry from the structured dictionary source,
// normalized: pronunciations are text-only, definitions carry the fields
// split out of the composite header line, and the transliteration is
// collapsed to a scalar when all definitions agree.
type DictionaryEntry struct {
	Etymology       string          `json:"etymology,omitempty"`
	Pronunciations  []string        `json:"pronunciations,omitempty"`
	Definitions     []Definition    `json:"definitions,omitempty"`
	Transliteration Transliteration `json:"transliteration,omitempty"`
}

// Definition is one definition block of a structured entry.
type Definition struct {
	PartOfSpeech string     `json:"partOfSpeech,omitempty"`
	Lexeme       string     `json:"lexeme,omitempty"`
	Gender       *string    `json:"gender,omitempty"`
	Plural       *string    `json:"plural,omitempty"`
	Participle   *string    `json:"participle,omitempty"`
	Text         []string   `json:"text,omitempty"`
	RelatedWords []Relation `json:"relatedWords,omitempty"`
	Examples     []string   `json:"examples,omitempty"`
}

// Relation groups related words by relationship type (derived terms,
// alternative forms, see also).
type Relation struct {
	RelationshipType string   `json:"relationshipType"`
	Words            []string `json:"words"`
}

// Transliteration holds the per-definition transliterations of an entry.
// It marshals as a bare string once collapsed to a single agreed value and
// as an array otherwise.
type Transliteration []string

func (t Transliteration) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

func (t *Transliteration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Transliteration{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = Transliteration(list)
	return nil
}

// KentuckyRecord is the result of one word's lookup in the HTML dictionary.
type KentuckyRecord struct {
	Transliteration string `json:"transliteration"`
	// Stem is the canonical base form the dictionary resolved the word to.
	Stem        string               `json:"stem"`
	Definitions []KentuckyDefinition `json:"definitions"`
}

// KentuckyDefinition is one extracted entry from the HTML dictionary page.
// Optional fields are nil when the page did not yield them.
type KentuckyDefinition struct {
	PartOfSpeech *string `json:"partOfSpeech,omitempty"`
	Text         string  `json:"text"`
	Gender       *string `json:"gender,omitempty"`
	Participle   *string `json:"participle,omitempty"`
	Plural       *string `json:"plural,omitempty"`
	Lexeme       string  `json:"lexeme"`
}
