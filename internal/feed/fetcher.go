// Package feed retrieves the raw XML/HTML payloads published by Farming
// Simulator dedicated servers.
package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// Config tunes the fetcher
type Config struct {
	Timeout          time.Duration
	MaxBodyBytes     int64
	SSRFGuard        bool
	AllowedPorts     []int
	ModListTTL       time.Duration
	ModListCacheSize int
	UserAgent        string
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = domain.DefaultFeedTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.ModListTTL <= 0 {
		c.ModListTTL = DefaultModListTTL
	}
	if c.ModListCacheSize <= 0 {
		c.ModListCacheSize = DefaultModListCacheSize
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
}

// Result holds the payloads of one fetch round. A kind is present in Bodies
// only when its fetch succeeded; failures are recorded in Errors instead.
type Result struct {
	Bodies map[domain.FeedKind]string
	Errors map[domain.FeedKind]error
}

// Body returns the payload of the given kind
func (r Result) Body(kind domain.FeedKind) (string, bool) {
	body, ok := r.Bodies[kind]
	return body, ok
}

// Fetcher issues concurrent single-attempt GET requests
type Fetcher struct {
	client   *http.Client
	cfg      Config
	modLists *modListCache
}

// NewFetcher creates a fetcher. With SSRFGuard set the HTTP client refuses
// private network targets.
func NewFetcher(cfg Config) *Fetcher {
	cfg.applyDefaults()

	client := &http.Client{}
	if cfg.SSRFGuard {
		client = newSafeClient(cfg.Timeout, cfg.AllowedPorts)
		slog.Info(LogMsgSSRFGuardOn, "allowed_ports", cfg.AllowedPorts)
	}
	return NewFetcherWithClient(cfg, client)
}

// NewFetcherWithClient creates a fetcher around an existing HTTP client
func NewFetcherWithClient(cfg Config, client *http.Client) *Fetcher {
	cfg.applyDefaults()
	return &Fetcher{
		client:   client,
		cfg:      cfg,
		modLists: newModListCache(cfg.ModListCacheSize, cfg.ModListTTL),
	}
}

// FetchAll retrieves every source concurrently and waits for all of them.
// It never fails as a whole; each failed source is simply absent.
func (f *Fetcher) FetchAll(ctx context.Context, sources []domain.FeedSource) Result {
	result := Result{
		Bodies: make(map[domain.FeedKind]string, len(sources)),
		Errors: make(map[domain.FeedKind]error),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, src := range sources {
		wg.Add(1)
		go func(src domain.FeedSource) {
			defer wg.Done()
			body, err := f.Fetch(ctx, src)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors[src.Kind] = err
				return
			}
			result.Bodies[src.Kind] = body
		}(src)
	}
	wg.Wait()

	return result
}

// Fetch retrieves one source within the configured timeout
func (f *Fetcher) Fetch(ctx context.Context, src domain.FeedSource) (string, error) {
	log := logger.FromContext(ctx).With("feed", string(src.Kind))

	if src.URL == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrFeedNotConfigured, src.Kind)
	}

	if src.Kind == domain.FeedModList {
		if body, ok := f.modLists.Get(src.URL); ok {
			metrics.ModListCacheHits.Inc()
			log.Debug(LogMsgModListCached)
			return body, nil
		}
	}

	start := time.Now()
	body, err := f.get(ctx, src.URL)
	metrics.FeedFetchDuration.WithLabelValues(string(src.Kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.FeedFetchesTotal.WithLabelValues(string(src.Kind), metrics.ResultError).Inc()
		log.Warn(LogMsgFetchFailed, "required", src.Required, "error", err)
		return "", err
	}
	metrics.FeedFetchesTotal.WithLabelValues(string(src.Kind), metrics.ResultSuccess).Inc()
	log.Debug(LogMsgFetchSucceeded, "bytes", len(body), "duration", time.Since(start))

	if src.Kind == domain.FeedModList {
		f.modLists.Set(src.URL, body)
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/xml, text/xml, text/html;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s %d", domain.ErrFeedUnavailable, ErrMsgUnexpectedStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	if int64(len(data)) > f.cfg.MaxBodyBytes {
		return "", fmt.Errorf("%w: %s (%d bytes)", domain.ErrFeedUnavailable, ErrMsgBodyTooLarge, f.cfg.MaxBodyBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrFeedUnavailable, ErrMsgEmptyBody)
	}

	return string(data), nil
}
