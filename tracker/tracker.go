// Package tracker wraps a lobkit/book.OrderBook with the concurrency
// guard and staleness bookkeeping a live feed consumer needs, adapted
// from the teacher bot's internal/market.Book (which did the same for
// a Polymarket CLOB mirror): an RWMutex around the book, a last-update
// timestamp, and derived BestBidAsk/MidPrice accessors.
//
// lobkit/book.OrderBook itself stays single-threaded by design (see
// its package doc) — Tracker is the seam a caller reaches for once a
// book is shared across goroutines, rather than baking locking into
// the book package for every caller whether or not they need it.
package tracker

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"lobkit/book"
	"lobkit/dec"
	"lobkit/sortedmap"
)

var decimalTwo = decimal.NewFromInt(2)

// Tracker guards one OrderBook and records when it last changed.
type Tracker struct {
	mu      sync.RWMutex
	ob      *book.OrderBook
	updated time.Time
}

// New wraps ob for concurrent access.
func New(ob *book.OrderBook) *Tracker {
	return &Tracker{ob: ob}
}

// SetSide replaces one side's contents, as book.OrderBook.SetSide, and
// records the update time.
func (t *Tracker) SetSide(name string, pairs []sortedmap.Pair[book.Value]) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ob.SetSide(name, pairs); err != nil {
		return err
	}
	t.updated = time.Now()
	return nil
}

// Set assigns a single level-2 price/size on the named side, and
// records the update time.
func (t *Tracker) Set(name string, price, size dec.Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	side, err := t.ob.Side(name)
	if err != nil {
		return err
	}
	if err := side.Set(price, size); err != nil {
		return err
	}
	t.updated = time.Now()
	return nil
}

// BestBidAsk returns the best bid and ask prices. ok is false if
// either side is empty.
func (t *Tracker) BestBidAsk() (bid, ask dec.Value, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	bidPrice, _, err := t.ob.Bids().Index(0)
	if err != nil {
		return dec.Value{}, dec.Value{}, false
	}
	askPrice, _, err := t.ob.Asks().Index(0)
	if err != nil {
		return dec.Value{}, dec.Value{}, false
	}
	return bidPrice, askPrice, true
}

// MidPrice returns (bestBid + bestAsk) / 2. ok is false if the book is
// one-sided or empty.
func (t *Tracker) MidPrice() (dec.Value, bool) {
	bid, ask, ok := t.BestBidAsk()
	if !ok {
		return dec.Value{}, false
	}
	sum := bid.Decimal().Add(ask.Decimal())
	half := sum.Div(decimalTwo)
	return dec.FromDecimal(half), true
}

// IsStale reports whether the book has gone longer than maxAge since
// its last Set/SetSide call. A book that has never been written to is
// always stale.
func (t *Tracker) IsStale(maxAge time.Duration) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.updated.IsZero() {
		return true
	}
	return time.Since(t.updated) > maxAge
}

// LastUpdated returns the time of the last Set/SetSide call, or the
// zero time if there has not been one yet.
func (t *Tracker) LastUpdated() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.updated
}

// Book returns the wrapped OrderBook for read operations that don't
// need the staleness bookkeeping (Keys, ToList, checksum.Compute,
// etc). Callers must not call its mutating methods directly — go
// through Tracker.Set/SetSide so LastUpdated stays accurate.
func (t *Tracker) Book() *book.OrderBook {
	return t.ob
}
