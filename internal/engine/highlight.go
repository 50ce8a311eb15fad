package engine

import (
	"time"

	"github.com/mesh-intelligence/gridview/pkg/types"
)

// highlighter classifies rows when highlighting is shown. It also keeps the
// expiring "new" tags: a tag is live until its expiry, checked against the
// clock on every read, so no timer runs behind the engine's back.
type highlighter[T any] struct {
	classifier types.Classifier[T]
	enabled    bool
	ttl        time.Duration
	autoTag    bool
	tags       map[string]time.Time
	now        func() time.Time
}

func newHighlighter[T any](classifier types.Classifier[T], cfg types.Config, now func() time.Time) *highlighter[T] {
	if now == nil {
		now = time.Now
	}
	return &highlighter[T]{
		classifier: classifier,
		enabled:    cfg.ShowHighlight,
		ttl:        cfg.NewTagTTL,
		autoTag:    cfg.TagNewRows,
		tags:       make(map[string]time.Time),
		now:        now,
	}
}

// markNew tags id as new for ttl, or the configured TTL when ttl <= 0.
func (h *highlighter[T]) markNew(id string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = h.ttl
	}
	h.tags[id] = h.now().Add(ttl)
}

// tagArrivals marks every ID in current that was absent from prev. Nothing
// is tagged on the first load, when prev is empty.
func (h *highlighter[T]) tagArrivals(prev map[string]int, current map[string]int) int {
	if !h.autoTag || len(prev) == 0 {
		return 0
	}
	n := 0
	for id := range current {
		if _, seen := prev[id]; !seen {
			h.markNew(id, 0)
			n++
		}
	}
	return n
}

// isNew reports whether id carries a live tag, dropping it once expired.
func (h *highlighter[T]) isNew(id string) bool {
	exp, ok := h.tags[id]
	if !ok {
		return false
	}
	if h.now().Before(exp) {
		return true
	}
	delete(h.tags, id)
	return false
}

// sweep drops expired tags.
func (h *highlighter[T]) sweep() {
	now := h.now()
	for id, exp := range h.tags {
		if !now.Before(exp) {
			delete(h.tags, id)
		}
	}
}

// classify returns the highlight for row. A live new tag wins over the
// classifier. Nothing is classified while highlighting is hidden.
func (h *highlighter[T]) classify(row T, id string) types.Highlight {
	if !h.enabled {
		return types.HighlightNone
	}
	if h.isNew(id) {
		return types.HighlightNew
	}
	if h.classifier == nil {
		return types.HighlightNone
	}
	return h.classifier.Classify(row)
}
