package search

import (
	"iter"
	"strings"
)

// Page is a node of the document graph. The address is its identity.
type Page struct {
	address string
	depth   int

	fetched bool
	content string
	links   []string
}

// NewPage creates an unfetched page.
func NewPage(address string, depth int) *Page {
	return &Page{address: address, depth: depth}
}

// Address returns the page URL.
func (p *Page) Address() string { return p.address }

// Depth returns the distance from the seed page.
func (p *Page) Depth() int { return p.depth }

// Fetched reports whether Populate has been called.
func (p *Page) Fetched() bool { return p.fetched }

// Content returns the text captured by the fetcher.
func (p *Page) Content() string { return p.content }

// Populate stores the fetched text and outbound addresses. Fetchers call it once.
func (p *Page) Populate(content string, links []string) {
	p.content = content
	p.links = links
	p.fetched = true
}

// ContainsKeyword reports whether the content contains term, ignoring case.
func (p *Page) ContainsKeyword(term string) bool {
	if !p.fetched {
		return false
	}
	return strings.Contains(strings.ToLower(p.content), strings.ToLower(term))
}

// OutboundLinks yields a child page per outbound address, one level deeper.
// Children are created lazily as the sequence is consumed.
func (p *Page) OutboundLinks() iter.Seq[*Page] {
	return func(yield func(*Page) bool) {
		for _, addr := range p.links {
			if !yield(NewPage(addr, p.depth+1)) {
				return
			}
		}
	}
}

// LinkCount returns the number of outbound addresses.
func (p *Page) LinkCount() int { return len(p.links) }
