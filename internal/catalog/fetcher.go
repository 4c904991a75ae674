package catalog

import (
	"context"
	"sync/atomic"
)

// ListingFetcher serializes listing fetches for a single viewer. Each fetch
// takes a monotonically increasing ticket; a result whose ticket has been
// superseded by a newer fetch is dropped instead of delivered, so a slow
// response can never overwrite the state of a later request.
type ListingFetcher struct {
	service Service
	seq     atomic.Uint64
}

// NewListingFetcher wraps the catalog service with the stale-result guard.
func NewListingFetcher(service Service) *ListingFetcher {
	return &ListingFetcher{service: service}
}

// Fetch runs a listing fetch and passes the result to deliver unless a
// newer fetch has started meanwhile. Returns whether the result was
// delivered.
func (f *ListingFetcher) Fetch(ctx context.Context, filters Filters, deliver func(*ProductList)) bool {
	ticket := f.seq.Add(1)
	list := f.service.Products(ctx, filters)
	if f.seq.Load() != ticket {
		return false
	}
	if deliver != nil {
		deliver(list)
	}
	return true
}
