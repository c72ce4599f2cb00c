package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fuzumoe/linktorch-search/internal/search"
)

// ErrDisallowed is returned when robots.txt forbids the page.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Options controls the HTML fetcher.
type Options struct {
	UserAgent     string
	Timeout       time.Duration
	MaxBodyBytes  int64
	RespectRobots bool
	HostRate      float64 // requests per second per host, 0 disables limiting
	HostBurst     int
	RobotsTTL     time.Duration // how long a host's robots.txt is trusted, default 30m
	Client        *http.Client
}

// HTMLFetcher downloads pages over HTTP and extracts their text and links.
type HTMLFetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	robots    *robotsCache
	limiter   *hostLimiter
}

var _ search.Fetcher = (*HTMLFetcher)(nil)

// New creates an HTMLFetcher with defaults for unset options.
func New(opts Options) *HTMLFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 5 * 1024 * 1024
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "LinkTorch-Search/1.0"
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	f := &HTMLFetcher{
		client:    client,
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBodyBytes,
		limiter:   newHostLimiter(opts.HostRate, opts.HostBurst),
	}
	if opts.RespectRobots {
		f.robots = newRobotsCache(client, opts.UserAgent, opts.RobotsTTL)
	}
	return f
}

// Fetch downloads page and populates its text and outbound links.
func (f *HTMLFetcher) Fetch(ctx context.Context, page *search.Page) error {
	u, err := url.Parse(page.Address())
	if err != nil {
		return fmt.Errorf("parse address: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if f.robots != nil && !f.robots.allowed(ctx, u) {
		return ErrDisallowed
	}
	if err := f.limiter.wait(ctx, u.Host); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// a redirect changes the base for relative links
	base := u
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return fmt.Errorf("parse html: %w", err)
	}

	page.Populate(pageText(doc), extractLinks(base, doc))
	return nil
}

// pageText joins the title and the visible body text.
func pageText(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	body := visibleText(doc.Find("body"))
	if title == "" {
		return body
	}
	return title + "\n" + body
}

// hiddenElements never contribute text.
var hiddenElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// visibleText separates text nodes with spaces so words in adjacent
// block elements stay apart.
func visibleText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case html.ElementNode:
			if hiddenElements[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// extractLinks returns absolute http(s) links in document order, first occurrence only.
func extractLinks(base *url.URL, doc *goquery.Document) []string {
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if b, err := base.Parse(strings.TrimSpace(href)); err == nil {
			base = b
		}
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if rel, _ := a.Attr("rel"); strings.Contains(strings.ToLower(rel), "nofollow") {
			return
		}
		href, _ := a.Attr("href")
		abs := resolve(base, href)
		if abs == "" {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})
	return links
}

// resolve makes href absolute against base, dropping fragments and non-http schemes.
func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	p, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(p)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	abs.Fragment = ""
	abs.RawFragment = ""
	return abs.String()
}
