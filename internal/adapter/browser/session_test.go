package browser

import (
	"testing"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/page"
	"github.com/stretchr/testify/assert"
)

func TestLoadSignal_FiresOnlyOnLoadEvent(t *testing.T) {
	t.Parallel()

	loaded := make(chan struct{}, 1)
	handler := loadSignal(loaded)

	// Unrelated events must not signal; the result page is only there once
	// the navigation's load event fires.
	handler(&page.EventFrameStartedLoading{})
	handler(&dom.EventDocumentUpdated{})
	assert.Empty(t, loaded)

	handler(&page.EventLoadEventFired{})
	assert.Len(t, loaded, 1)
}

func TestLoadSignal_DropsRepeatedLoadEvents(t *testing.T) {
	t.Parallel()

	loaded := make(chan struct{}, 1)
	handler := loadSignal(loaded)

	// A second load event (e.g. from a page resource triggering another
	// navigation) must not block the handler or queue a stale signal.
	handler(&page.EventLoadEventFired{})
	handler(&page.EventLoadEventFired{})
	assert.Len(t, loaded, 1)

	<-loaded
	handler(&page.EventLoadEventFired{})
	assert.Len(t, loaded, 1)
}
