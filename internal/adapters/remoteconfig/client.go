// Package remoteconfig is the client for the managed configuration
// service the cycling payload ships over. The service is a plain
// key-value channel: Fetch pulls the latest versioned document, Activate
// promotes it, Value reads an activated parameter.
package remoteconfig

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	perr "peloton/internal/platform/errors"
	"peloton/internal/platform/logger"
)

const (
	defaultNamespace = "production"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "peloton-feed"
	maxBodyBytes     = 32 << 20 // the season blob is a few MB; cap well above that
)

// Document is one versioned parameter set as served by the config service
type Document struct {
	Version    int64             `json:"version"`
	Parameters map[string]string `json:"parameters"`

	ETag      string    `json:"-"`
	FetchedAt time.Time `json:"-"`
}

// Options configures the Client
type Options struct {
	BaseURL   string
	Namespace string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches and activates config documents. Fetched and activated
// documents are held separately: a fetch never changes what Value serves
// until Activate promotes it.
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time

	mu        sync.Mutex
	fetched   *Document
	activated *Document
	lastFetch time.Time
	cache     *Cache
}

// NewClient creates a Client. cache may be nil; when set, the last
// activated document is loaded from it so a cold start can serve data
// without any network.
func NewClient(o Options, cache *Cache) (*Client, error) {
	if o.BaseURL == "" {
		return nil, perr.InvalidArgf("remoteconfig: BaseURL is required")
	}
	if o.Namespace == "" {
		o.Namespace = defaultNamespace
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	c := &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("remoteconfig"),
		now:   time.Now,
		cache: cache,
	}
	if cache != nil {
		doc, err := cache.Get(context.Background(), o.Namespace)
		if err != nil {
			c.log.Warn().Err(err).Msg("cache read failed, starting cold")
		} else if doc != nil {
			c.activated = doc
			c.log.Info().Int64("version", doc.Version).Time("fetched_at", doc.FetchedAt).
				Msg("restored activated document from cache")
		}
	}
	return c, nil
}

// Fetch pulls the latest document unless one was fetched within
// minInterval; a throttled call succeeds and keeps serving the already
// fetched document
func (c *Client) Fetch(ctx context.Context, minInterval time.Duration) error {
	c.mu.Lock()
	if c.fetched != nil && c.now().Sub(c.lastFetch) < minInterval {
		c.mu.Unlock()
		return nil
	}
	etag := ""
	if c.fetched != nil {
		etag = c.fetched.ETag
	}
	c.mu.Unlock()

	url := c.opts.BaseURL + "/v1/configs/" + c.opts.Namespace
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeRemoteFetch, "remoteconfig new request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeRemoteFetch, "remoteconfig fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusNotModified:
		c.mu.Lock()
		c.lastFetch = c.now()
		c.mu.Unlock()
		return nil
	case http.StatusOK:
		// fall through
	default:
		return perr.RemoteFetchf("remoteconfig: unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeRemoteFetch, "remoteconfig read body")
	}
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return perr.Wrap(err, perr.ErrorCodeRemoteFetch, "remoteconfig decode document")
	}
	doc.ETag = resp.Header.Get("ETag")
	doc.FetchedAt = c.now()

	c.mu.Lock()
	c.fetched = &doc
	c.lastFetch = doc.FetchedAt
	c.mu.Unlock()
	c.log.Debug().Int64("version", doc.Version).Str("etag", doc.ETag).Msg("fetched document")
	return nil
}

// Activate promotes the last fetched document and reports whether the
// activated version changed. Persisting to the cache is best effort.
func (c *Client) Activate(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetched == nil {
		return false, nil
	}
	if c.activated != nil && c.activated.Version == c.fetched.Version {
		return false, nil
	}
	c.activated = c.fetched
	if c.cache != nil {
		if err := c.cache.Put(ctx, c.opts.Namespace, *c.activated); err != nil {
			c.log.Warn().Err(err).Msg("cache write failed")
		}
	}
	c.log.Info().Int64("version", c.activated.Version).Msg("activated document")
	return true, nil
}

// Value returns an activated parameter. NotFound when nothing has been
// activated yet or the key is absent.
func (c *Client) Value(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activated == nil {
		return "", perr.NotFoundf("remoteconfig: no activated document")
	}
	v, ok := c.activated.Parameters[key]
	if !ok {
		return "", perr.NotFoundf("remoteconfig: key %q not present", key)
	}
	return v, nil
}

// HasActivated reports whether any document (cached or fetched) is live
func (c *Client) HasActivated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activated != nil
}
