package data

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/icariumtech/mothership-console/events"
)

// Fetcher supplies tier documents to the transition coordinator's pre-fetch
// phase. Key is "" for the galaxy, "<system>" for a system map, and
// "<system>/<body>" for an orbit map.
type Fetcher interface {
	FetchTier(ctx context.Context, key string) (*TierDocument, error)
}

// StoreFetcher resolves tier keys against the filesystem campaign store
type StoreFetcher struct {
	loader *Loader
}

func NewStoreFetcher(loader *Loader) *StoreFetcher {
	return &StoreFetcher{loader: loader}
}

func (f *StoreFetcher) FetchTier(ctx context.Context, key string) (*TierDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch parts := strings.SplitN(key, "/", 2); {
	case key == "" || key == "galaxy":
		return f.loader.LoadStarMap()
	case len(parts) == 1:
		return f.loader.LoadSystemMap(parts[0])
	default:
		return f.loader.LoadOrbitMap(parts[0], parts[1])
	}
}

// CachingFetcher memoizes tier documents per key and reports fetch results
// on the event queue. Pre-fetching the destination tier during a transition
// makes the later mount a cache hit.
type CachingFetcher struct {
	inner Fetcher
	queue *events.Queue

	mu    sync.Mutex
	cache map[string]*TierDocument
}

func NewCachingFetcher(inner Fetcher, queue *events.Queue) *CachingFetcher {
	return &CachingFetcher{
		inner: inner,
		queue: queue,
		cache: make(map[string]*TierDocument),
	}
}

func (f *CachingFetcher) FetchTier(ctx context.Context, key string) (*TierDocument, error) {
	f.mu.Lock()
	if doc, ok := f.cache[key]; ok {
		f.mu.Unlock()
		return doc, nil
	}
	f.mu.Unlock()

	doc, err := f.inner.FetchTier(ctx, key)
	if err != nil {
		if f.queue != nil {
			f.queue.Push(events.Event{
				Type:    events.EventDataFailed,
				Time:    time.Now(),
				Payload: &events.DataPayload{Key: key, Err: err.Error()},
			})
		}
		return nil, err
	}

	f.mu.Lock()
	f.cache[key] = doc
	f.mu.Unlock()

	if f.queue != nil {
		f.queue.Push(events.Event{
			Type:    events.EventDataLoaded,
			Time:    time.Now(),
			Payload: &events.DataPayload{Tier: doc.Tier, Key: key},
		})
	}
	return doc, nil
}

// Invalidate drops a cached document (campaign data edited mid-session)
func (f *CachingFetcher) Invalidate(key string) {
	f.mu.Lock()
	delete(f.cache, key)
	f.mu.Unlock()
}

// PrefetchAll warms the cache for a set of tier keys concurrently.
// Individual failures are reported via the event queue and do not abort
// the remaining fetches.
func (f *CachingFetcher) PrefetchAll(ctx context.Context, keys []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, key := range keys {
		g.Go(func() error {
			// Errors already routed to the queue; warm what we can
			f.FetchTier(ctx, key)
			return nil
		})
	}
	return g.Wait()
}
