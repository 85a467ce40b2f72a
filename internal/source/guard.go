// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

const (
	defaultBreakerTimeout = 60 * time.Second
	breakerInterval       = 30 * time.Second
	breakerMinRequests    = 3
	breakerFailureRatio   = 0.6
)

// errAbandoned marks a fetch cut short because the caller's context ended.
// The breaker counts it as a success so departing callers cannot trip it.
var errAbandoned = errors.New("fetch abandoned by caller")

// Guard wraps a Fetcher with a circuit breaker per source, an optional
// rate limiter, and an optional expiring result cache. Its methods never
// return errors: a failed or rejected fetch yields an empty slice and is
// logged. A fetch whose caller context has ended also yields an empty
// slice but counts against neither the breaker nor OnFailure. Guard is
// safe for concurrent use.
type Guard struct {
	fetcher Fetcher
	logger  *logrus.Logger
	limiter *rate.Limiter

	literature *boundary[types.LiteratureRecord]
	trials     *boundary[types.TrialRecord]

	// OnFailure, when set, is called with the source name after each
	// failed fetch.
	OnFailure func(source string)
}

type boundary[T any] struct {
	name    string
	breaker *gobreaker.CircuitBreaker
	cache   *expirable.LRU[string, []T]
}

// NewGuard builds a Guard around f using the boundary settings in cfg.
func NewGuard(f Fetcher, cfg types.SourcesConfig, logger *logrus.Logger) *Guard {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	g := &Guard{fetcher: f, logger: logger}
	if cfg.RateLimit > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	g.literature = newBoundary[types.LiteratureRecord](NameLiterature, cfg, logger)
	g.trials = newBoundary[types.TrialRecord](NameTrials, cfg, logger)
	return g
}

func newBoundary[T any](name string, cfg types.SourcesConfig, logger *logrus.Logger) *boundary[T] {
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = defaultBreakerTimeout
	}
	b := &boundary[T]{
		name: name,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Interval:    breakerInterval,
			Timeout:     timeout,
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errAbandoned)
			},
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= breakerMinRequests && failureRatio >= breakerFailureRatio
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"source": name,
					"from":   from.String(),
					"to":     to.String(),
				}).Warn("source circuit breaker state changed")
			},
		}),
	}
	if cfg.CacheSize > 0 {
		b.cache = expirable.NewLRU[string, []T](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return b
}

// Literature fetches literature for query, or nothing on failure.
func (g *Guard) Literature(ctx context.Context, query string, max int) []types.LiteratureRecord {
	return guarded(ctx, g, g.literature, query, max, g.fetcher.FetchLiterature)
}

// Trials fetches trials for query, or nothing on failure.
func (g *Guard) Trials(ctx context.Context, query string, max int) []types.TrialRecord {
	return guarded(ctx, g, g.trials, query, max, g.fetcher.FetchTrials)
}

func guarded[T any](
	ctx context.Context,
	g *Guard,
	b *boundary[T],
	query string,
	max int,
	fetch func(context.Context, string, int) ([]T, error),
) []T {
	key := cacheKey(query, max)
	if b.cache != nil {
		if cached, ok := b.cache.Get(key); ok {
			return slices.Clone(cached)
		}
	}

	if ctx.Err() != nil {
		g.abandon(b.name, query, ctx.Err())
		return []T{}
	}

	if g.limiter != nil {
		// Wait also fails early when the next token lies past the deadline.
		if err := g.limiter.Wait(ctx); err != nil {
			g.abandon(b.name, query, fmt.Errorf("waiting for rate limiter: %w", err))
			return []T{}
		}
	}

	result, err := b.breaker.Execute(func() (interface{}, error) {
		records, err := fetch(ctx, query, max)
		if err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errAbandoned, err)
		}
		return records, err
	})
	if errors.Is(err, errAbandoned) {
		g.abandon(b.name, query, err)
		return []T{}
	}
	if err != nil {
		g.fail(b.name, query, err)
		return []T{}
	}

	records, _ := result.([]T)
	if records == nil {
		records = []T{}
	}
	if b.cache != nil {
		b.cache.Add(key, slices.Clone(records))
	}
	return records
}

func (g *Guard) fail(source, query string, err error) {
	g.logger.WithFields(logrus.Fields{
		"source": source,
		"query":  query,
		"error":  err.Error(),
	}).Warn("source fetch failed, continuing with no records")
	if g.OnFailure != nil {
		g.OnFailure(source)
	}
}

// abandon records a fetch the caller gave up on. It is not a source failure.
func (g *Guard) abandon(source, query string, err error) {
	g.logger.WithFields(logrus.Fields{
		"source": source,
		"query":  query,
		"error":  err.Error(),
	}).Debug("source fetch abandoned by caller")
}

func cacheKey(query string, max int) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(query)), max)
}
