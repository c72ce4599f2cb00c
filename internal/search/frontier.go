package search

import (
	"fmt"
	"strings"
)

// Frontier holds pages waiting for a visit. Its removal order is the
// traversal discipline.
type Frontier interface {
	Insert(p *Page)
	// RemoveNext returns nil when the frontier is empty.
	RemoveNext() *Page
	IsEmpty() bool
	PendingCount() int
	ContainsPending(address string) bool
}

// Strategy selects a frontier discipline.
type Strategy string

const (
	BreadthFirst Strategy = "breadth"
	DepthFirst   Strategy = "depth"
)

// ParseStrategy accepts "breadth"/"bfs" and "depth"/"dfs", case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "breadth", "bfs", "breadth-first":
		return BreadthFirst, nil
	case "depth", "dfs", "depth-first":
		return DepthFirst, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// NewFrontier returns an empty frontier for the strategy.
func NewFrontier(s Strategy) (Frontier, error) {
	switch s {
	case BreadthFirst:
		return NewQueueFrontier(), nil
	case DepthFirst:
		return NewStackFrontier(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// pendingSet counts pending entries per address.
type pendingSet map[string]int

func (s pendingSet) add(address string) { s[address]++ }

func (s pendingSet) remove(address string) {
	if s[address] <= 1 {
		delete(s, address)
		return
	}
	s[address]--
}

func (s pendingSet) has(address string) bool { return s[address] > 0 }

// QueueFrontier removes pages in insertion order.
type QueueFrontier struct {
	items   []*Page
	head    int
	pending pendingSet
}

func NewQueueFrontier() *QueueFrontier {
	return &QueueFrontier{pending: make(pendingSet)}
}

func (q *QueueFrontier) Insert(p *Page) {
	q.items = append(q.items, p)
	q.pending.add(p.Address())
}

func (q *QueueFrontier) RemoveNext() *Page {
	if q.IsEmpty() {
		return nil
	}
	p := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	// reclaim the consumed prefix once it dominates the backing array
	if q.head > 32 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	q.pending.remove(p.Address())
	return p
}

func (q *QueueFrontier) IsEmpty() bool                       { return q.PendingCount() == 0 }
func (q *QueueFrontier) PendingCount() int                   { return len(q.items) - q.head }
func (q *QueueFrontier) ContainsPending(address string) bool { return q.pending.has(address) }

// StackFrontier removes the most recently inserted page first.
type StackFrontier struct {
	items   []*Page
	pending pendingSet
}

func NewStackFrontier() *StackFrontier {
	return &StackFrontier{pending: make(pendingSet)}
}

func (s *StackFrontier) Insert(p *Page) {
	s.items = append(s.items, p)
	s.pending.add(p.Address())
}

func (s *StackFrontier) RemoveNext() *Page {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	p := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	s.pending.remove(p.Address())
	return p
}

func (s *StackFrontier) IsEmpty() bool                       { return len(s.items) == 0 }
func (s *StackFrontier) PendingCount() int                   { return len(s.items) }
func (s *StackFrontier) ContainsPending(address string) bool { return s.pending.has(address) }
