// Package filters owns the draft filter state for a product listing view.
// Structural changes submit to the fetch callback immediately; free-text
// search is debounced so only the final text after a typing burst is
// submitted.
package filters

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bautizosmaitte/storefront-api/internal/catalog"
)

const (
	// DefaultDebounce is the quiet window after the last search keystroke
	// before the draft is submitted.
	DefaultDebounce = 500 * time.Millisecond

	// DefaultSettle is how long the loading flag stays set after a
	// structural submission. Purely an indicator, not a correctness
	// mechanism.
	DefaultSettle = 300 * time.Millisecond
)

// SubmitFunc receives the normalized draft whenever the controller decides
// a fetch should run.
type SubmitFunc func(catalog.Filters)

// Controller is a state machine over a filter draft. Safe for concurrent
// use; the submit callback is invoked without the controller's lock held
// beyond draft capture, always with a normalized copy.
type Controller struct {
	mu       sync.Mutex
	draft    catalog.Filters
	initial  catalog.Filters
	submit   SubmitFunc
	debounce time.Duration
	settle   time.Duration

	pending     *time.Timer
	settleTimer *time.Timer
	loading     bool
	closed      bool
}

// Option adjusts controller timing, mainly for tests.
type Option func(*Controller)

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

func WithSettle(d time.Duration) Option {
	return func(c *Controller) { c.settle = d }
}

// NewController starts from the supplied initial filters. The submit
// callback must be non-nil for the controller to be useful, but nil is
// tolerated (submissions become no-ops).
func NewController(initial catalog.Filters, submit SubmitFunc, opts ...Option) *Controller {
	c := &Controller{
		draft:    initial.Normalized(),
		initial:  initial.Normalized(),
		submit:   submit,
		debounce: DefaultDebounce,
		settle:   DefaultSettle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Filters returns the current draft.
func (c *Controller) Filters() catalog.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Loading reports whether a structural submission is still settling.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// HasActiveFilters reports whether the draft differs from the defaults.
func (c *Controller) HasActiveFilters() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.HasActive()
}

// SetCategory applies a category filter and submits immediately.
func (c *Controller) SetCategory(slug string) {
	c.structural(func(f *catalog.Filters) { f.Category = slug })
}

// SetBrand applies a brand filter and submits immediately.
func (c *Controller) SetBrand(slug string) {
	c.structural(func(f *catalog.Filters) { f.Brand = slug })
}

// SetPriceRange applies inclusive price bounds; nil means unbounded.
func (c *Controller) SetPriceRange(min, max *decimal.Decimal) {
	c.structural(func(f *catalog.Filters) {
		f.MinPrice = min
		f.MaxPrice = max
	})
}

// SetFeatured toggles the featured-only filter.
func (c *Controller) SetFeatured(on bool) {
	c.structural(func(f *catalog.Filters) { f.IsFeatured = on })
}

// SetDiscount toggles the discounted-only filter.
func (c *Controller) SetDiscount(on bool) {
	c.structural(func(f *catalog.Filters) { f.IsDiscount = on })
}

// SetSort applies a sort clause and submits immediately.
func (c *Controller) SetSort(by, order string) {
	c.structural(func(f *catalog.Filters) {
		f.SortBy = by
		f.SortOrder = order
	})
}

// SetPage navigates to a page. Unlike the other structural setters it
// keeps the requested page instead of resetting to the first one.
func (c *Controller) SetPage(page int) {
	c.structuralKeepingPage(func(f *catalog.Filters) { f.Page = page })
}

// SetPageSize changes the page size and returns to the first page.
func (c *Controller) SetPageSize(size int) {
	c.structural(func(f *catalog.Filters) { f.PageSize = size })
}

// SetSearch updates the search text immediately but defers submission by
// the debounce window; each call cancels and restarts the timer, so a
// typing burst submits once with the final text.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.draft.Search = text
	c.draft.Page = 1
	if c.pending != nil {
		c.pending.Stop()
	}
	c.pending = time.AfterFunc(c.debounce, c.firePending)
	c.mu.Unlock()
}

// ApplyNow flushes any pending debounced submission immediately.
func (c *Controller) ApplyNow() {
	c.mu.Lock()
	if c.closed || c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending.Stop()
	c.pending = nil
	draft := c.draft
	submit := c.submit
	c.mu.Unlock()

	if submit != nil {
		submit(draft.Normalized())
	}
}

// ClearFilters resets the draft to the default paging and sort with no
// other filters, and submits immediately.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cancelPendingLocked()
	c.draft = catalog.DefaultFilters()
	draft := c.draft
	submit := c.submit
	c.beginSettleLocked()
	c.mu.Unlock()

	if submit != nil {
		submit(draft)
	}
}

// ResetFilters restores the draft to the initial filters the controller
// was created with. It does not submit.
func (c *Controller) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.cancelPendingLocked()
	c.draft = c.initial
}

// Close cancels any pending timers. Submissions after Close never fire.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelPendingLocked()
	if c.settleTimer != nil {
		c.settleTimer.Stop()
		c.settleTimer = nil
	}
	c.loading = false
}

func (c *Controller) structural(mutate func(*catalog.Filters)) {
	c.structuralKeepingPage(func(f *catalog.Filters) {
		mutate(f)
		f.Page = 1
	})
}

func (c *Controller) structuralKeepingPage(mutate func(*catalog.Filters)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	// A structural change supersedes any pending search submission; the
	// search text itself stays in the draft and rides along.
	c.cancelPendingLocked()
	mutate(&c.draft)
	draft := c.draft
	submit := c.submit
	c.beginSettleLocked()
	c.mu.Unlock()

	if submit != nil {
		submit(draft.Normalized())
	}
}

// firePending runs on the debounce timer goroutine.
func (c *Controller) firePending() {
	c.mu.Lock()
	if c.closed || c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	draft := c.draft
	submit := c.submit
	c.mu.Unlock()

	if submit != nil {
		submit(draft.Normalized())
	}
}

func (c *Controller) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) beginSettleLocked() {
	c.loading = true
	if c.settleTimer != nil {
		c.settleTimer.Stop()
	}
	c.settleTimer = time.AfterFunc(c.settle, func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	})
}
