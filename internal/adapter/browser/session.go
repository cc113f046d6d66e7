// Package browser drives the interactive HTML dictionary through a real
// Chrome instance. It implements provider.BrowserSession; everything the
// extractor knows about the page lives in internal/lookup, this package
// only submits words and hands back page source.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/yiddishlab/wordlist/internal/domain"
)

// searchField is the name of the dictionary's word input.
const searchField = `input[name="base"]`

// Session is a single stateful browser tab opened on the dictionary page.
// It must be used sequentially: each submit replaces the page the next
// submit types into.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
	log         *slog.Logger
}

// Open starts Chrome and navigates to the dictionary URL. A failure to
// launch the browser runtime is reported as domain.ErrSourceUnavailable so
// the caller can fail fast before doing any work.
func Open(ctx context.Context, dictURL string, headless bool, timeout time.Duration, logger *slog.Logger) (*Session, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancel := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:         tabCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		timeout:     timeout,
		log:         logger.With("adapter", "browser"),
	}

	openCtx, openCancel := context.WithTimeout(tabCtx, timeout)
	defer openCancel()

	if err := chromedp.Run(openCtx,
		chromedp.Navigate(dictURL),
		chromedp.WaitVisible(searchField, chromedp.ByQuery),
	); err != nil {
		s.Close()
		return nil, fmt.Errorf("browser: open %s: %v: %w", dictURL, err, domain.ErrSourceUnavailable)
	}

	s.log.Debug("dictionary page opened", slog.String("url", dictURL))
	return s, nil
}

// SubmitAndGetPage types word into the search field, submits the form, and
// returns the source of the result page.
//
// The wait after the submit is tied to the navigation's load event, not to a
// selector: the outgoing page has a ready body too, so a selector wait can
// match the still-current document and snapshot the previous word's markup.
func (s *Session) SubmitAndGetPage(ctx context.Context, word string) (string, error) {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	// Respect caller cancellation alongside the session's own lifetime.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Registered before the submit so the event cannot slip past us.
	loaded := make(chan struct{}, 1)
	listenCtx, stopListening := context.WithCancel(runCtx)
	defer stopListening()
	chromedp.ListenTarget(listenCtx, loadSignal(loaded))

	err := chromedp.Run(runCtx,
		chromedp.WaitVisible(searchField, chromedp.ByQuery),
		chromedp.SetValue(searchField, word, chromedp.ByQuery),
		chromedp.Submit(searchField, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("browser: submit %q: %w", word, err)
	}

	select {
	case <-loaded:
	case <-runCtx.Done():
		return "", fmt.Errorf("browser: submit %q: waiting for result page: %w", word, runCtx.Err())
	}

	var source string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &source, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("browser: read result page for %q: %w", word, err)
	}

	s.log.Debug("page fetched", slog.String("word", word), slog.Int("bytes", len(source)))
	return source, nil
}

// loadSignal returns an event handler that signals once when the page fires
// its load event. Later load events are dropped, not buffered: each submit
// registers a fresh handler for its own navigation.
func loadSignal(loaded chan<- struct{}) func(ev any) {
	return func(ev any) {
		if _, ok := ev.(*page.EventLoadEventFired); ok {
			select {
			case loaded <- struct{}{}:
			default:
			}
		}
	}
}

// Close shuts down the tab and the browser process. Safe to call after a
// failed Open.
func (s *Session) Close() error {
	s.cancel()
	s.allocCancel()
	return nil
}
