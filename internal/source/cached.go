package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"dwh-dashboard/internal/table"
)

// Policy is the data-layer policy applied around a Feed.
type Policy struct {
	// StaleTime is how long fetched rows are served without refetching.
	StaleTime time.Duration
	// Retries is the number of extra attempts after a failed fetch.
	Retries int
	// RetryDelay is the first backoff; it doubles per attempt up to MaxRetryDelay.
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
	// FetchTimeout bounds each upstream attempt. Zero means no bound.
	FetchTimeout time.Duration
}

// DefaultPolicy serves rows for five minutes and retries twice.
func DefaultPolicy() Policy {
	return Policy{
		StaleTime:     5 * time.Minute,
		Retries:       2,
		RetryDelay:    time.Second,
		MaxRetryDelay: 30 * time.Second,
		FetchTimeout:  10 * time.Second,
	}
}

// Observer is told about every upstream fetch attempt.
type Observer interface {
	ObserveFetch(domain string, err error, elapsed time.Duration)
}

// Cached wraps a Feed with a Store, retries and per-domain request
// coalescing. It is safe for concurrent use.
type Cached struct {
	feed     Feed
	store    Store
	policy   Policy
	log      *slog.Logger
	observer Observer
	group    singleflight.Group
}

func NewCached(feed Feed, store Store, policy Policy, log *slog.Logger) *Cached {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Cached{
		feed:   feed,
		store:  store,
		policy: policy,
		log:    log,
	}
}

// WithObserver attaches an Observer and returns c.
func (c *Cached) WithObserver(o Observer) *Cached {
	c.observer = o
	return c
}

// Fetch serves rows from the store while they are fresh and fetches them
// upstream otherwise. Concurrent misses for one domain share one fetch.
func (c *Cached) Fetch(ctx context.Context, d Domain) ([]table.Row, error) {
	const op = "source.Cached.Fetch"

	log := c.log.With(slog.String("op", op), slog.String("domain", string(d)))

	rows, ok, err := c.store.Load(ctx, d)
	if err != nil {
		log.Warn("cache load failed, fetching upstream", slog.String("error", err.Error()))
	}
	if ok {
		return rows, nil
	}

	// the shared fetch must outlive the caller that started it
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(string(d), func() (interface{}, error) {
		version, verErr := c.store.Version(shared)
		if verErr != nil {
			log.Warn("cache version failed, rows will not be stored", slog.String("error", verErr.Error()))
		}

		rows, err := c.fetchWithRetry(shared, d)
		if err != nil {
			return nil, err
		}
		if verErr == nil {
			if err := c.store.Save(shared, d, version, rows, c.policy.StaleTime); err != nil {
				log.Warn("cache save failed", slog.String("error", err.Error()))
			}
		}
		return rows, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%s: %w", op, res.Err)
		}
		return res.Val.([]table.Row), nil
	}
}

// Invalidate drops every stored row set. Fetches already in flight still
// answer their callers but neither store their rows nor serve later ones.
func (c *Cached) Invalidate(ctx context.Context) error {
	const op = "source.Cached.Invalidate"

	if err := c.store.Invalidate(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, d := range Domains {
		c.group.Forget(string(d))
	}
	c.log.Info("feeds invalidated", slog.String("op", op))
	return nil
}

func (c *Cached) fetchWithRetry(ctx context.Context, d Domain) ([]table.Row, error) {
	for attempt := 0; ; attempt++ {
		start := time.Now()
		rows, err := c.attempt(ctx, d)
		if c.observer != nil {
			c.observer.ObserveFetch(string(d), err, time.Since(start))
		}
		if err == nil {
			return rows, nil
		}
		if attempt >= c.policy.Retries || errors.Is(err, ErrUnknownDomain) {
			return nil, err
		}

		delay := c.backoff(attempt)
		c.log.Warn("fetch failed, retrying",
			slog.String("domain", string(d)),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Cached) attempt(ctx context.Context, d Domain) ([]table.Row, error) {
	if c.policy.FetchTimeout <= 0 {
		return c.feed.Fetch(ctx, d)
	}
	ctx, cancel := context.WithTimeout(ctx, c.policy.FetchTimeout)
	defer cancel()
	return c.feed.Fetch(ctx, d)
}

func (c *Cached) backoff(attempt int) time.Duration {
	delay := c.policy.RetryDelay << attempt
	if c.policy.MaxRetryDelay > 0 && (delay > c.policy.MaxRetryDelay || delay <= 0) {
		return c.policy.MaxRetryDelay
	}
	return delay
}
