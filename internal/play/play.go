// Package play runs the extraction pipeline against store pages: it builds
// the page URL, fetches and parses the page, resolves the mapping versions
// and merges the request context into the result.
package play

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/agentic-research/playmap/api"
	"github.com/agentic-research/playmap/internal/extract"
	"github.com/agentic-research/playmap/internal/fetch"
	"github.com/agentic-research/playmap/internal/mappings"
	"github.com/agentic-research/playmap/internal/scriptdata"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Defaults applied to empty options.
const (
	DefaultLang    = "en"
	DefaultCountry = "us"
)

// ErrAppNotFound is returned when the store answers 404 for an app page.
var ErrAppNotFound = errors.New("app not found")

// ValidationError rejects options before any request is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Fetcher loads a page body.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// DocumentSink receives every freshly fetched document.
type DocumentSink interface {
	SaveDocument(ctx context.Context, url string, doc *scriptdata.Document) error
}

// Options configures a Client.
type Options struct {
	// BaseURL is the store origin (default mappings.BaseURL).
	BaseURL string
	// CacheSize bounds the per-URL document memo; 0 disables it.
	CacheSize int
	// Workers bounds parallel list item resolution.
	Workers  int
	Registry *mappings.Registry
	Sink     DocumentSink
	Logger   *slog.Logger
}

// Client runs App and List operations.
type Client struct {
	fetcher  Fetcher
	base     string
	cache    *lru.Cache[string, *scriptdata.Document]
	workers  int
	registry *mappings.Registry
	sink     DocumentSink
	logger   *slog.Logger
}

// New returns a Client fetching through f.
func New(f Fetcher, opts Options) (*Client, error) {
	c := &Client{
		fetcher:  f,
		base:     strings.TrimSuffix(opts.BaseURL, "/"),
		workers:  opts.Workers,
		registry: opts.Registry,
		sink:     opts.Sink,
		logger:   opts.Logger,
	}
	if c.base == "" {
		c.base = mappings.BaseURL
	}
	if c.registry == nil {
		c.registry = mappings.Default()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, *scriptdata.Document](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("document cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// AppOptions selects one app detail page.
type AppOptions struct {
	AppID   string
	Lang    string
	Country string
}

// ListOptions selects one category page.
type ListOptions struct {
	Category string
	Lang     string
	Country  string
	// NotMerge returns the collection groups instead of the merged list.
	NotMerge bool
}

// ListResult holds either the merged list or the groups, per NotMerge.
type ListResult struct {
	Apps   []api.Record
	Groups []api.CollectionGroup
}

// Value is the populated half of r.
func (r ListResult) Value() any {
	if r.Groups != nil {
		return r.Groups
	}
	return r.Apps
}

// AppURL is the detail page URL for opts after defaults.
func (c *Client) AppURL(opts AppOptions) (string, error) {
	if strings.TrimSpace(opts.AppID) == "" {
		return "", &ValidationError{Field: "appId", Reason: "missing"}
	}
	q := url.Values{}
	q.Set("id", opts.AppID)
	q.Set("hl", orDefault(opts.Lang, DefaultLang))
	q.Set("gl", orDefault(opts.Country, DefaultCountry))
	return c.base + "/store/apps/details?" + q.Encode(), nil
}

// ListURL is the category page URL for opts after defaults.
func (c *Client) ListURL(opts ListOptions) (string, error) {
	cat := Category(strings.ToUpper(strings.TrimSpace(opts.Category)))
	if cat == "" {
		cat = Application
	}
	if !cat.Valid() {
		return "", &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %s", cat)}
	}
	q := url.Values{}
	q.Set("hl", orDefault(opts.Lang, DefaultLang))
	q.Set("gl", orDefault(opts.Country, DefaultCountry))
	return c.base + "/store/apps/category/" + string(cat) + "?" + q.Encode(), nil
}

// App fetches and extracts one app. The record carries appId and url in
// addition to the mapped fields.
func (c *Client) App(ctx context.Context, opts AppOptions) (api.Record, error) {
	u, err := c.AppURL(opts)
	if err != nil {
		return nil, err
	}
	doc, err := c.Document(ctx, u)
	if err != nil {
		if fetch.NotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrAppNotFound, opts.AppID)
		}
		return nil, err
	}
	rec, err := c.ExtractApp(doc)
	if err != nil {
		return nil, fmt.Errorf("app %s: %w", opts.AppID, err)
	}
	return rec.With("appId", opts.AppID).With("url", u), nil
}

// List fetches and extracts one category page.
func (c *Client) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	u, err := c.ListURL(opts)
	if err != nil {
		return ListResult{}, err
	}
	doc, err := c.Document(ctx, u)
	if err != nil {
		return ListResult{}, err
	}
	return c.ExtractList(doc, opts.NotMerge)
}

// ExtractApp resolves the app entity against an already parsed document.
func (c *Client) ExtractApp(doc *scriptdata.Document) (api.Record, error) {
	versions, err := c.registry.Versions(mappings.EntityApp)
	if err != nil {
		return nil, err
	}
	res, err := extract.Resolve(versions, doc)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("app resolved", "version", res.Version)
	return res.Record, nil
}

// ExtractList assembles the collection groups of an already parsed category
// document.
func (c *Client) ExtractList(doc *scriptdata.Document, notMerge bool) (ListResult, error) {
	versions, err := c.registry.Versions(mappings.EntityListItem)
	if err != nil {
		return ListResult{}, err
	}
	var groups []any
	if node, ok := extract.Navigate(doc, mappings.ListGroups); ok {
		if groups, ok = node.([]any); !ok {
			return ListResult{}, fmt.Errorf("groups at %s are %T, not an array", mappings.ListGroups, node)
		}
	}
	asm := &extract.Assembler{Items: versions, Workers: c.workers, Logger: c.logger}
	out, err := asm.Assemble(groups)
	if err != nil {
		return ListResult{}, err
	}
	c.logger.Debug("list assembled", "groups", len(out))
	if notMerge {
		if out == nil {
			out = []api.CollectionGroup{}
		}
		return ListResult{Groups: out}, nil
	}
	return ListResult{Apps: extract.Merge(out)}, nil
}

// Document returns the parsed page at u, from the memo when possible.
func (c *Client) Document(ctx context.Context, u string) (*scriptdata.Document, error) {
	if c.cache != nil {
		if doc, ok := c.cache.Get(u); ok {
			c.logger.Debug("document cache hit", "url", u)
			return doc, nil
		}
	}
	body, err := c.fetcher.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	doc, err := scriptdata.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", u, err)
	}
	c.logger.Debug("document parsed", "url", u, "partitions", len(doc.Data))
	if c.sink != nil {
		if err := c.sink.SaveDocument(ctx, u, doc); err != nil {
			return nil, fmt.Errorf("save %s: %w", u, err)
		}
	}
	// Cached only once saved, so a failed save is retried on the next call.
	if c.cache != nil {
		c.cache.Add(u, doc)
	}
	return doc, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
