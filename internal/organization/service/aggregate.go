package service

import "github.com/orgcatalog/catalog/internal/organization/domain"

// aggregator merges organization lists from multiple source lookups into
// one sequence with each organization appearing exactly once, in
// first-seen order. Sources are consulted in the order they are extended;
// within a source, its own order is kept.
type aggregator struct {
	seen map[int64]struct{}
	out  []domain.Organization
}

func newAggregator() *aggregator {
	return &aggregator{seen: make(map[int64]struct{})}
}

func (a *aggregator) extend(orgs []domain.Organization) {
	for _, org := range orgs {
		if _, ok := a.seen[org.ID]; ok {
			continue
		}
		a.seen[org.ID] = struct{}{}
		a.out = append(a.out, org)
	}
}

func (a *aggregator) result() []domain.Organization {
	if a.out == nil {
		return []domain.Organization{}
	}
	return a.out
}
