package fetcher

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

const defaultRobotsTTL = 30 * time.Minute

// robotsCache keeps one parsed robots.txt per scheme+host for ttl. Hosts
// whose robots.txt cannot be reached are allowed and retried on the next
// page. A 5xx answer disallows the host for that page only.
type robotsCache struct {
	client *http.Client
	agent  string
	ttl    time.Duration

	mu    sync.RWMutex
	hosts map[string]robotsEntry
}

type robotsEntry struct {
	fetched time.Time
	rules   *robotstxt.RobotsData // nil = allow all
}

func newRobotsCache(c *http.Client, agent string, ttl time.Duration) *robotsCache {
	if ttl <= 0 {
		ttl = defaultRobotsTTL
	}
	return &robotsCache{client: c, agent: agent, ttl: ttl, hosts: make(map[string]robotsEntry)}
}

// allowed checks u against the host's robots.txt rules.
func (r *robotsCache) allowed(ctx context.Context, u *url.URL) bool {
	if u.Host == "" {
		return true
	}
	key := u.Scheme + "://" + u.Host

	r.mu.RLock()
	entry, ok := r.hosts[key]
	r.mu.RUnlock()
	if ok && time.Since(entry.fetched) < r.ttl {
		return test(entry.rules, u, r.agent)
	}

	rules, cacheable := r.load(ctx, key)
	if cacheable {
		r.mu.Lock()
		r.hosts[key] = robotsEntry{fetched: time.Now(), rules: rules}
		r.mu.Unlock()
	}
	return test(rules, u, r.agent)
}

// load fetches and parses origin's robots.txt. Transport and context
// errors, and 5xx answers, are not cacheable.
func (r *robotsCache) load(ctx context.Context, origin string) (*robotstxt.RobotsData, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", r.agent)
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	rules, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, false
	}
	return rules, resp.StatusCode < http.StatusInternalServerError
}

func test(rules *robotstxt.RobotsData, u *url.URL, agent string) bool {
	if rules == nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return rules.TestAgent(path, agent)
}
