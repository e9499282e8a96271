// Package pokeapi implements orchestration.Fetcher against a PokeBuild-style
// HTTP API, where GET {base}/{name} returns the creature as JSON.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/agbru/brawl/internal/creature"
	apperrors "github.com/agbru/brawl/internal/errors"
	"github.com/agbru/brawl/internal/logging"
)

const (
	// DefaultBaseURL is the public PokeBuild API endpoint.
	DefaultBaseURL = "https://pokebuildapi.fr/api/v1/pokemon"
	// DefaultTimeout bounds a single lookup, including reading the body.
	DefaultTimeout = 10 * time.Second
	// maxBodyBytes caps the response body read from the API.
	maxBodyBytes = 1 << 20
)

// ErrNotFound is the cause of a RetrievalError for names the API does not know.
var ErrNotFound = apperrors.ErrNotFound

// StatusError reports an unexpected HTTP status from the API.
type StatusError struct {
	StatusCode int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// payload mirrors the subset of the API response the battle needs.
type payload struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Stats *struct {
		Attack  int `json:"attack"`
		Defense int `json:"defense"`
	} `json:"stats"`
}

type cacheEntry struct {
	creature creature.Creature
	expires  time.Time
}

// Client fetches creatures over HTTP. Concurrent lookups of the same name
// share one request; successful lookups are cached for CacheTTL when set.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
	cacheTTL   time.Duration
	timeout    time.Duration
	now        func() time.Time

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]cacheEntry
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-lookup timeout. It bounds the shared request
// even when the *http.Client given to WithHTTPClient has no Timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the client logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithCacheTTL enables caching of successful lookups. Zero disables it.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cacheTTL = ttl }
}

// NewClient creates a Client with DefaultBaseURL and DefaultTimeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.NopLogger{},
		timeout:    DefaultTimeout,
		now:        time.Now,
		cache:      make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchByName looks up name. Every failure is an apperrors.RetrievalError
// carrying name; unknown names wrap ErrNotFound.
func (c *Client) FetchByName(ctx context.Context, name string) (creature.Creature, error) {
	if cr, ok := c.cached(name); ok {
		c.logger.Debug("creature cache hit", logging.String("name", name))
		return cr, nil
	}

	// DoChan lets this caller give up on ctx while a shared request
	// started by another caller keeps running. The request outlives its
	// first caller, so it carries its own deadline.
	ch := c.group.DoChan(name, func() (any, error) {
		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.lookupTimeout())
		defer cancel()
		cr, err := c.get(reqCtx, name)
		if err != nil {
			return nil, err
		}
		return cr, nil
	})
	select {
	case <-ctx.Done():
		return creature.Creature{}, apperrors.NewRetrievalError(name, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return creature.Creature{}, res.Err
		}
		// Callers sharing one request each get their own copy.
		cr := res.Val.(creature.Creature).Clone()
		c.store(name, cr)
		return cr, nil
	}
}

func (c *Client) lookupTimeout() time.Duration {
	if c.timeout > 0 {
		return c.timeout
	}
	return DefaultTimeout
}

func (c *Client) get(ctx context.Context, name string) (creature.Creature, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return creature.Creature{}, apperrors.NewRetrievalError(name, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("creature request failed", err, logging.String("name", name))
		return creature.Creature{}, apperrors.NewRetrievalError(name, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("creature request done",
		logging.String("name", name),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return creature.Creature{}, apperrors.NewRetrievalError(name, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return creature.Creature{}, apperrors.NewRetrievalError(name, StatusError{StatusCode: resp.StatusCode})
	}

	var p payload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&p); err != nil {
		return creature.Creature{}, apperrors.NewRetrievalError(name, apperrors.WrapError(err, "decode response"))
	}
	// The API answers unknown names with an empty object on some routes.
	if p.Name == "" {
		return creature.Creature{}, apperrors.NewRetrievalError(name, ErrNotFound)
	}

	var stats *creature.Stats
	if p.Stats != nil {
		stats = &creature.Stats{Attack: p.Stats.Attack, Defense: p.Stats.Defense}
	}
	return creature.New(p.Name, p.Image, stats), nil
}

func (c *Client) cached(name string) (creature.Creature, bool) {
	if c.cacheTTL <= 0 {
		return creature.Creature{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache[name]
	if !ok {
		return creature.Creature{}, false
	}
	if c.now().After(e.expires) {
		delete(c.cache, name)
		return creature.Creature{}, false
	}
	return e.creature.Clone(), true
}

func (c *Client) store(name string, cr creature.Creature) {
	if c.cacheTTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[name] = cacheEntry{creature: cr.Clone(), expires: c.now().Add(c.cacheTTL)}
}
