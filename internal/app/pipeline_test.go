package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiddishlab/wordlist/internal/domain"
	"github.com/yiddishlab/wordlist/internal/lookup"
	"github.com/yiddishlab/wordlist/internal/provider"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStructured returns one minimal raw entry for every word.
type fakeStructured struct{}

func (fakeStructured) Fetch(_ context.Context, word, _ string, _ []string) ([]provider.RawEntry, error) {
	return []provider.RawEntry{{
		Definitions: []provider.RawDefinition{{
			PartOfSpeech: "noun",
			Text:         []string{word + " • (x)", "a definition"},
		}},
	}}, nil
}

// fakeSession serves the same well-formed page for every word.
type fakeSession struct {
	submitted []string
}

func (f *fakeSession) SubmitAndGetPage(_ context.Context, word string) (string, error) {
	f.submitted = append(f.submitted, word)
	return fmt.Sprintf(`<html><body>
<p>Converting <br/><span class="gram">x</span></p>
<p>The base word for <span class="goodmatch">%[1]s</span> was found</p>
<ol><li><span class="lexeme">(<span class="goodmatch">%[1]s</span></span>)<span class="gram">noun</span> <span class="definition">something</span></li></ol>
</body></html>`, word), nil
}

func (f *fakeSession) Close() error { return nil }

func newPipeline(session provider.BrowserSession) *Pipeline {
	return New(
		lookup.NewStructuredLookup(fakeStructured{}, "", nil, testLogger()),
		lookup.NewKentuckyExtractor(testLogger()),
		session,
		testLogger(),
	)
}

func TestParseSources(t *testing.T) {
	t.Parallel()

	srcs, err := ParseSources("structured,html")
	require.NoError(t, err)
	assert.Equal(t, []Source{SourceStructured, SourceHTML}, srcs)

	srcs, err = ParseSources(" html , html ")
	require.NoError(t, err)
	assert.Equal(t, []Source{SourceHTML}, srcs)

	_, err = ParseSources("structured,telepathy")
	assert.Error(t, err)

	_, err = ParseSources("")
	assert.Error(t, err)
}

func TestPipeline_Build_BothSources(t *testing.T) {
	t.Parallel()

	session := &fakeSession{}
	p := newPipeline(session)

	wl, res, err := p.Build(context.Background(), "גוט מאָרגן גוט", []Source{SourceStructured, SourceHTML})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Words)
	assert.Equal(t, 2, res.StructuredLookups)
	assert.Equal(t, 2, res.KentuckyLookups)
	assert.Zero(t, res.StructuredFailed)

	// Sorted submission order.
	assert.Equal(t, []string{"גוט", "מאָרגן"}, session.submitted)

	entry := wl["גוט"]
	require.NotNil(t, entry)
	assert.Equal(t, []int{0, 2}, entry.Index)
	assert.Equal(t, 2, entry.Count)
	require.Len(t, entry.Wiktionary, 1)
	require.NotNil(t, entry.Kentucky)
	assert.Equal(t, "גוט", entry.Kentucky.Stem)
}

func TestPipeline_Build_TokenizerOnly(t *testing.T) {
	t.Parallel()

	p := New(nil, nil, nil, testLogger())

	wl, res, err := p.Build(context.Background(), "איין צוויי", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Words)
	assert.Nil(t, wl["איין"].Wiktionary)
	assert.Nil(t, wl["איין"].Kentucky)
}

func TestPipeline_Build_EmptyText(t *testing.T) {
	t.Parallel()

	p := newPipeline(&fakeSession{})
	wl, res, err := p.Build(context.Background(), "", []Source{SourceStructured})
	require.NoError(t, err)
	assert.Empty(t, wl)
	assert.Zero(t, res.Words)
}

func TestPipeline_Build_ZeroTokensFails(t *testing.T) {
	t.Parallel()

	p := newPipeline(&fakeSession{})
	_, _, err := p.Build(context.Background(), "123 456", []Source{SourceStructured})
	assert.ErrorIs(t, err, domain.ErrNoTokens)
}

func TestPipeline_Build_MissingCollaboratorFailsFast(t *testing.T) {
	t.Parallel()

	p := New(nil, nil, nil, testLogger())
	_, _, err := p.Build(context.Background(), "װאָרט", []Source{SourceHTML})
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestPipeline_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	p := newPipeline(&fakeSession{})
	wl, _, err := p.Build(context.Background(), "גוט מאָרגן גוט", []Source{SourceStructured, SourceHTML})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "story.json")
	require.NoError(t, WriteJSON(path, wl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back domain.Wordlist
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, wl, back)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	got, err := OutputPath("stories/mayse.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "stories/mayse.json", got)

	got, err = OutputPath("mayse.txt", "out/words.json")
	require.NoError(t, err)
	assert.Equal(t, "out/words.json", got)

	_, err = OutputPath("mayse.txt", "words.txt")
	assert.Error(t, err)

	_, err = OutputPath("", "")
	assert.Error(t, err)
}
