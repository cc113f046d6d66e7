package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/yiddishlab/wordlist/internal/domain"
	"github.com/yiddishlab/wordlist/internal/provider"
)

// CSS classes the dictionary page uses to tag its parts.
const (
	classGrammar    = "gram"       // grammatical annotations (part of speech, gender)
	classGoodMatch  = "goodmatch"  // highlighted stem/word occurrences
	classLexeme     = "lexeme"     // headword of an entry
	classDefinition = "definition" // definition text of an entry
	classHebrew     = "hebrew"     // Hebrew-script rendering of a form
)

// Literal labels asserted by the structural contract. If these disappear the
// upstream page has changed and extraction must stop.
const (
	convertingLabel = "Converting "
	baseWordLabel   = "The base word for "
)

// KentuckyExtractor parses result pages of the HTML dictionary into
// normalized records.
type KentuckyExtractor struct {
	log *slog.Logger
}

// NewKentuckyExtractor creates a KentuckyExtractor.
func NewKentuckyExtractor(logger *slog.Logger) *KentuckyExtractor {
	return &KentuckyExtractor{log: logger.With("source", "kentucky")}
}

// LookupAll submits every word through the session, one at a time, and
// extracts its record. The session is stateful; submissions are strictly
// sequential. Any markup-contract violation or session error aborts the
// batch.
func (e *KentuckyExtractor) LookupAll(ctx context.Context, session provider.BrowserSession, words []string) (map[string]*domain.KentuckyRecord, error) {
	records := make(map[string]*domain.KentuckyRecord, len(words))

	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := session.SubmitAndGetPage(ctx, word)
		if err != nil {
			return nil, fmt.Errorf("kentucky: fetch page for %q: %w", word, err)
		}

		rec, err := e.Extract(word, page)
		if err != nil {
			return nil, err
		}
		records[word] = rec

		e.log.Debug("word extracted",
			slog.String("word", word),
			slog.String("stem", rec.Stem),
			slog.Int("definitions", len(rec.Definitions)),
		)
	}

	return records, nil
}

// Extract parses one result page into a KentuckyRecord. The transliteration
// and base-word assertions are fatal (the markup contract); per-entry field
// extraction is best-effort.
func (e *KentuckyExtractor) Extract(word, page string) (*domain.KentuckyRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, domain.NewMarkupError(word, "parse page: %v", err)
	}

	translit, err := e.convertingAnnotation(doc, word)
	if err != nil {
		return nil, err
	}

	stem, err := e.baseWord(doc, word)
	if err != nil {
		return nil, err
	}

	rec := &domain.KentuckyRecord{
		Transliteration: translit,
		Stem:            stem,
		Definitions:     []domain.KentuckyDefinition{},
	}

	seen := make(map[defKey]bool)
	for _, container := range e.entryContainers(doc, stem) {
		def := e.extractDefinition(word, container)
		key := keyOf(def)
		if seen[key] {
			continue
		}
		seen[key] = true
		rec.Definitions = append(rec.Definitions, def)
	}

	return rec, nil
}

// convertingAnnotation locates the romanization the dictionary echoes back
// for the submitted word: the first grammar-class span, which must follow a
// literal "Converting " text label two siblings back.
func (e *KentuckyExtractor) convertingAnnotation(doc *goquery.Document, word string) (string, error) {
	span := doc.Find("span." + classGrammar).First()
	if span.Length() == 0 {
		return "", domain.NewMarkupError(word, "no %s span for the converting annotation", classGrammar)
	}
	if !precededByLabel(span.Get(0), convertingLabel) {
		return "", domain.NewMarkupError(word, "converting annotation is not preceded by %q", convertingLabel)
	}
	return strings.TrimSpace(span.Text()), nil
}

// baseWord locates the stem the dictionary resolved the word to: the first
// good-match span, preceded by the "The base word for " label.
func (e *KentuckyExtractor) baseWord(doc *goquery.Document, word string) (string, error) {
	span := doc.Find("span." + classGoodMatch).First()
	if span.Length() == 0 {
		return "", domain.NewMarkupError(word, "no %s span for the base word", classGoodMatch)
	}
	if !precededByLabel(span.Get(0), baseWordLabel) {
		return "", domain.NewMarkupError(word, "base word is not preceded by %q", baseWordLabel)
	}
	return strings.TrimSpace(span.Text()), nil
}

// precededByLabel reports whether one of the two text-node siblings directly
// before n carries the given label.
func precededByLabel(n *html.Node, label string) bool {
	prev := n.PrevSibling
	for i := 0; prev != nil && i < 2; i++ {
		if prev.Type == html.TextNode && strings.Contains(prev.Data, label) {
			return true
		}
		prev = prev.PrevSibling
	}
	return false
}

// entryContainers runs the ranked candidate pipeline:
//
//	rawCandidates -> stemFilter -> lexemeFilter -> fallback
//
// Each stage narrows the good-match spans of the entry list down to the
// elements holding the entries that actually define the stem. When the
// lexeme-class stage eliminates everything (words whose stem never appears
// literally in a lexeme), the fallback widens back out to every good-match
// span's parent.
func (e *KentuckyExtractor) entryContainers(doc *goquery.Document, stem string) []*goquery.Selection {
	raw := rawCandidates(doc)
	containers := lexemeFilter(stemFilter(raw, stem), stem)
	if len(containers) == 0 {
		containers = fallbackContainers(raw)
	}
	return containers
}

// rawCandidates collects every good-match span inside the page's entry list.
func rawCandidates(doc *goquery.Document) []*goquery.Selection {
	var out []*goquery.Selection
	doc.Find("ol span." + classGoodMatch).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}

// stemFilter keeps the candidates whose containing element mentions the stem.
func stemFilter(cands []*goquery.Selection, stem string) []*goquery.Selection {
	var out []*goquery.Selection
	for _, s := range cands {
		if strings.Contains(s.Parent().Text(), stem) {
			out = append(out, s)
		}
	}
	return out
}

// lexemeFilter keeps the candidates sitting inside a lexeme-class element
// and promotes each to its grandparent entry container, provided the
// container's lexeme text still contains the stem.
func lexemeFilter(cands []*goquery.Selection, stem string) []*goquery.Selection {
	var out []*goquery.Selection
	for _, s := range cands {
		if !s.Parent().HasClass(classLexeme) {
			continue
		}
		container := s.Parent().Parent()
		lex := cleanLexeme(container.Find("span." + classLexeme).First().Text())
		if strings.Contains(lex, stem) {
			out = append(out, container)
		}
	}
	return out
}

// fallbackContainers treats every good-match span's immediate parent as an
// entry container, with no further filtering.
func fallbackContainers(cands []*goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, len(cands))
	for _, s := range cands {
		out = append(out, s.Parent())
	}
	return out
}

// extractDefinition pulls the fields out of one entry container. Every
// optional field degrades to absent on a miss; only the miss reason is
// logged.
func (e *KentuckyExtractor) extractDefinition(word string, container *goquery.Selection) domain.KentuckyDefinition {
	def := domain.KentuckyDefinition{
		Lexeme: cleanLexeme(container.Find("span." + classLexeme).First().Text()),
		Text:   strings.TrimSpace(container.Find("span." + classDefinition).First().Text()),
	}

	def.PartOfSpeech = e.logged(word, "partOfSpeech", extractPartOfSpeech(container)).ptr()
	def.Plural = e.logged(word, "plural", extractPlural(container)).ptr()
	def.Participle = e.logged(word, "participle", extractParticiple(container)).ptr()
	def.Gender = e.logged(word, "gender", extractGender(container)).ptr()

	return def
}

// extractPartOfSpeech takes the text before the first comma of the entry's
// grammar element, unless that element is really a plural or gender
// annotation.
func extractPartOfSpeech(container *goquery.Selection) field {
	gram := container.Find("span." + classGrammar).First()
	if gram.Length() == 0 {
		return miss("no grammar element")
	}
	txt := strings.TrimSpace(strings.SplitN(strings.TrimSpace(gram.Text()), ",", 2)[0])
	if strings.HasPrefix(txt, "plural") || strings.HasPrefix(txt, "gender") {
		return miss("grammar element holds %q, not a part of speech", txt)
	}
	if txt == "" {
		return miss("empty grammar element")
	}
	return value(txt)
}

// extractPlural reads the text sibling right after the grammar element:
// first comma segment, opening parenthesis stripped. When the element after
// that sibling is a Hebrew-script span, its text is appended in parentheses.
func extractPlural(container *goquery.Selection) field {
	gram := container.Find("span." + classGrammar).First()
	if gram.Length() == 0 {
		return miss("no grammar element")
	}

	sib := gram.Get(0).NextSibling
	if sib == nil || sib.Type != html.TextNode {
		return miss("no text after grammar element")
	}

	seg := strings.SplitN(sib.Data, ",", 2)[0]
	seg = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(seg), "("))
	if seg == "" {
		return miss("empty plural text")
	}

	if next := sib.NextSibling; next != nil && next.Type == html.ElementNode && hasClass(next, classHebrew) {
		seg += " (" + strings.TrimSpace(nodeText(next)) + ")"
	}
	return value(seg)
}

// extractParticiple finds a sub-element literally labeled "participle" and
// reads its following sibling, commas removed.
func extractParticiple(container *goquery.Selection) field {
	out := miss("no participle label")
	container.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != "participle" {
			return true
		}
		sib := s.Get(0).NextSibling
		if sib == nil {
			out = miss("nothing follows the participle label")
			return false
		}
		txt := strings.TrimSpace(strings.ReplaceAll(nodeText(sib), ",", ""))
		if txt == "" {
			out = miss("empty participle text")
			return false
		}
		out = value(txt)
		return false
	})
	return out
}

// extractGender finds a grammar element whose text is a gender annotation
// and strips the commas and the word itself.
func extractGender(container *goquery.Selection) field {
	out := miss("no gender annotation")
	container.Find("span."+classGrammar).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		txt := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(txt, "gender") {
			return true
		}
		txt = strings.TrimSpace(strings.TrimPrefix(strings.ReplaceAll(txt, ",", ""), "gender"))
		if txt == "" {
			out = miss("empty gender text")
			return false
		}
		out = value(txt)
		return false
	})
	return out
}

// cleanLexeme strips the leading opening parenthesis and surrounding
// whitespace from a lexeme-class element's text.
func cleanLexeme(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "("))
}

// logged records a field miss at debug level and passes the field through.
func (e *KentuckyExtractor) logged(word, name string, f field) field {
	if !f.ok {
		e.log.Debug("field absent",
			slog.String("word", word),
			slog.String("field", name),
			slog.String("reason", f.reason),
		)
	}
	return f
}

// defKey is the full-tuple identity used to deduplicate extracted entries.
type defKey struct {
	pos, text, gender, participle, plural, lexeme string
	hasPOS, hasGender, hasParticiple, hasPlural   bool
}

func keyOf(d domain.KentuckyDefinition) defKey {
	k := defKey{text: d.Text, lexeme: d.Lexeme}
	if d.PartOfSpeech != nil {
		k.pos, k.hasPOS = *d.PartOfSpeech, true
	}
	if d.Gender != nil {
		k.gender, k.hasGender = *d.Gender, true
	}
	if d.Participle != nil {
		k.participle, k.hasParticiple = *d.Participle, true
	}
	if d.Plural != nil {
		k.plural, k.hasPlural = *d.Plural, true
	}
	return k
}

// nodeText returns the concatenated text content of a node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// hasClass reports whether the element node carries the CSS class.
func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
