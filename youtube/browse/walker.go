// Package browse drives paginated listings. A Walker is an explicit state
// machine over {Start, HasNext, Exhausted, Failed} wrapped in a pull-based
// iterator: pages are fetched only when the consumer asks for items beyond
// the current buffer, one outstanding fetch per traversal.
package browse

import (
	"context"

	"github.com/ytget/ytx/internal/logger"
	"github.com/ytget/ytx/types"
	"github.com/ytget/ytx/youtube/entity"
	"github.com/ytget/ytx/youtube/schema"
)

var log = logger.WithComponent(logger.ComponentBrowse)

// State is the walker's position in a traversal.
type State int

const (
	// StateStart means no page has been fetched yet.
	StateStart State = iota
	// StateHasNext means a continuation token is in hand.
	StateHasNext
	// StateExhausted means the last page carried no token: no more data.
	StateExhausted
	// StateFailed means a fetch or parse broke the traversal. Distinct from
	// Exhausted so "no more data" is never confused with "broke while
	// fetching more data".
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateHasNext:
		return "has_next"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher retrieves one listing page as a normalized tree. An empty token
// requests the initial page; later calls carry the token extracted from the
// previous page. Tokens are opaque and upstream-versioned.
type Fetcher func(ctx context.Context, token string) (*schema.Tree, error)

// Walker lazily yields the video summaries of a paginated listing. Not safe
// for concurrent use; independent traversals use independent Walkers. A
// failed Walker stays failed; restart by constructing a new one.
type Walker struct {
	fetch Fetcher
	state State
	token string
	buf   []types.PlaylistItem
	seen  map[string]bool
	err   error
}

// NewWalker starts a traversal at the initial page.
func NewWalker(fetch Fetcher) *Walker {
	return &Walker{
		fetch: fetch,
		state: StateStart,
		seen:  make(map[string]bool),
	}
}

// State reports the current traversal state.
func (w *Walker) State() State { return w.state }

// Err returns the error that moved the walker to Failed, if any.
func (w *Walker) Err() error { return w.err }

// Next returns the next item. The second result is false when the sequence
// is over: either the listing is exhausted (nil error) or the traversal
// failed (the error that broke it).
func (w *Walker) Next(ctx context.Context) (types.PlaylistItem, bool, error) {
	for len(w.buf) == 0 {
		switch w.state {
		case StateExhausted:
			return types.PlaylistItem{}, false, nil
		case StateFailed:
			return types.PlaylistItem{}, false, w.err
		}
		if err := w.pull(ctx); err != nil {
			return types.PlaylistItem{}, false, err
		}
	}

	item := w.buf[0]
	w.buf = w.buf[1:]
	return item, true, nil
}

// All drains the remaining sequence into a slice.
func (w *Walker) All(ctx context.Context) ([]types.PlaylistItem, error) {
	var items []types.PlaylistItem
	for {
		item, ok, err := w.Next(ctx)
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}

// pull fetches the next page and refills the buffer. Cancellation or any
// fetch/parse error moves the walker to Failed; no partial page is kept.
func (w *Walker) pull(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return w.fail(err)
	}

	tree, err := w.fetch(ctx, w.token)
	if err != nil {
		return w.fail(err)
	}
	items, next, err := entity.BuildPlaylistItems(tree)
	if err != nil {
		return w.fail(err)
	}

	for _, item := range items {
		// A listing mutated mid-walk can repeat entries across page
		// boundaries; one traversal never yields the same id twice.
		if w.seen[item.VideoID] {
			continue
		}
		w.seen[item.VideoID] = true
		w.buf = append(w.buf, item)
	}

	w.token = next
	if next == "" {
		w.state = StateExhausted
	} else {
		w.state = StateHasNext
	}
	log.Trace("Fetched listing page", map[string]interface{}{
		"items": len(items),
		"state": w.state.String(),
	})
	return nil
}

func (w *Walker) fail(err error) error {
	w.state = StateFailed
	w.err = err
	return err
}
