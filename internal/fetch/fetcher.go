package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/karmayogi/riddlequest/internal/cache"
	"github.com/karmayogi/riddlequest/internal/model"
	"github.com/karmayogi/riddlequest/internal/util"
	"golang.org/x/net/html"
)

// Fetcher downloads encyclopedia articles and turns them into sentences
// about a concept. Pages are cached so repeated runs do not re-fetch.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	baseURL    string
	robots     *Robots
	limiter    *Limiter
	cache      cache.Cache
}

// NewFetcher creates a Fetcher from the HTTP and rate-limit configuration.
// A nil pageCache disables caching.
func NewFetcher(httpCfg model.HTTPConfig, rateCfg model.RateLimitConfig, pageCache cache.Cache) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   httpCfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: httpCfg.UserAgent,
		maxBytes:  httpCfg.MaxBodyBytes,
		baseURL:   strings.TrimRight(httpCfg.BaseURL, "/"),
		robots:    NewRobots(httpCfg.UserAgent, httpCfg.Timeout),
		limiter:   NewLimiter(rateCfg.RequestsPerSecond, rateCfg.BurstSize),
		cache:     pageCache,
	}
}

// ArticleURL maps a concept name to its article URL
func (f *Fetcher) ArticleURL(concept string) string {
	slug := strings.ReplaceAll(concept, " ", "_")
	return f.baseURL + "/" + url.PathEscape(slug)
}

// Sentences fetches the article for a concept and returns the sentences
// that mention it.
func (f *Fetcher) Sentences(ctx context.Context, concept string) ([]string, error) {
	page, err := f.fetchPage(ctx, f.ArticleURL(concept))
	if err != nil {
		return nil, fmt.Errorf("fetch article for %q: %w", concept, err)
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse article for %q: %w", concept, err)
	}

	text := extractVisibleText(doc)
	return filterMentions(splitSentences(text), concept), nil
}

func (f *Fetcher) fetchPage(ctx context.Context, rawURL string) (string, error) {
	if f.cache != nil {
		if cached, found := f.cache.Get(rawURL); found {
			return string(cached), nil
		}
	}

	if !f.robots.Allowed(ctx, rawURL) {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if f.cache != nil {
		_ = f.cache.Set(rawURL, body, 0)
	}

	return string(body), nil
}
