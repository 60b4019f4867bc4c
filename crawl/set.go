// Package crawl — insertion-ordered link set.
// Maintains a seen map to avoid recording the same link tuple twice.
package crawl

import "github.com/gaurav-prasanna/catalogpipe/core"

// linkSet is an insertion-ordered set of PdfLinks keyed by the full
// {url, name, filename} tuple.
type linkSet struct {
	items []core.PdfLink
	seen  map[string]bool
}

// newLinkSet creates an empty linkSet.
func newLinkSet() *linkSet {
	return &linkSet{
		seen: make(map[string]bool),
	}
}

// Add records a link if its tuple hasn't been seen before.
func (s *linkSet) Add(link core.PdfLink) {
	key := link.Key()
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items = append(s.items, link)
}

// All returns the recorded links in discovery order.
func (s *linkSet) All() []core.PdfLink {
	return s.items
}
