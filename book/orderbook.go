// Package book implements the level-2/level-3 limit order book on top
// of lobkit/sortedmap: a pair of Sides (bids DESC, asks ASC), bulk
// assignment, and the venue checksum in the sibling lobkit/checksum
// package.
//
// OrderBook is, like sortedmap.SortedMap, single-threaded with no
// internal synchronization — a caller sharing one across goroutines
// must serialise its own mutations.
package book

import (
	"fmt"
	"strings"

	"lobkit/errs"
	"lobkit/sortedmap"
)

// ChecksumFormat selects the venue-specific checksum algorithm.
type ChecksumFormat int

const (
	// ChecksumNone disables the checksum (checksum.Compute always
	// returns ErrInvalidValue).
	ChecksumNone ChecksumFormat = iota
	ChecksumKraken
	ChecksumFTX
	ChecksumOKX
	ChecksumOKCoin
)

// ParseChecksumFormat parses the venue spellings accepted at a config
// boundary. Anything else is ErrInvalidValue.
func ParseChecksumFormat(s string) (ChecksumFormat, error) {
	switch strings.ToUpper(s) {
	case "", "NONE":
		return ChecksumNone, nil
	case "KRAKEN":
		return ChecksumKraken, nil
	case "FTX":
		return ChecksumFTX, nil
	case "OKX":
		return ChecksumOKX, nil
	case "OKCOIN":
		return ChecksumOKCoin, nil
	default:
		return 0, fmt.Errorf("book: checksum format %q: %w", s, errs.ErrInvalidValue)
	}
}

// Options configures a new OrderBook.
type Options struct {
	// MaxDepth caps each side at this many price levels. 0 means
	// unbounded.
	MaxDepth int
	// Truncate selects eager (TruncateOn) or lazy (TruncateOff)
	// enforcement of MaxDepth.
	Truncate sortedmap.Truncate
	// ChecksumFormat selects the venue checksum.Compute computes for.
	ChecksumFormat ChecksumFormat
}

// OrderBook pairs one bid Side and one ask Side sharing a depth cap,
// truncation mode, and checksum format.
type OrderBook struct {
	opts Options
	bid  *Side
	ask  *Side
}

// New constructs an OrderBook. A negative MaxDepth is ErrInvalidValue.
func New(opts Options) (*OrderBook, error) {
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("book: max depth %d: %w", opts.MaxDepth, errs.ErrInvalidValue)
	}
	if opts.Truncate == sortedmap.TruncateOn && opts.MaxDepth == 0 {
		return nil, fmt.Errorf("book: truncate on requires max depth > 0: %w", errs.ErrInvalidValue)
	}
	return &OrderBook{
		opts: opts,
		bid:  newSide(RoleBid, opts.MaxDepth, opts.Truncate),
		ask:  newSide(RoleAsk, opts.MaxDepth, opts.Truncate),
	}, nil
}

// Bids returns the bid Side.
func (ob *OrderBook) Bids() *Side { return ob.bid }

// Asks returns the ask Side.
func (ob *OrderBook) Asks() *Side { return ob.ask }

// ChecksumFormat reports the configured venue checksum algorithm.
func (ob *OrderBook) ChecksumFormat() ChecksumFormat { return ob.opts.ChecksumFormat }

// MaxDepth reports the configured per-side depth cap.
func (ob *OrderBook) MaxDepth() int { return ob.opts.MaxDepth }

// ResolveSide normalises one of the eight spellings a venue message
// might use for a side name (bid, bids, BID, BIDS, ask, asks, ASK,
// ASKS) to a Role. It is the single entry point every name-based
// accessor below goes through, replacing the original implementation's
// per-spelling dynamic-attribute dispatch with one closed, tested
// mapping.
func ResolveSide(name string) (Role, bool) {
	switch name {
	case "bid", "bids", "BID", "BIDS":
		return RoleBid, true
	case "ask", "asks", "ASK", "ASKS":
		return RoleAsk, true
	default:
		return 0, false
	}
}

// Side looks up a side by name (see ResolveSide for the accepted
// spellings). An unrecognised name is ErrNotFound, matching the
// original's KeyError on a bad read-side lookup.
func (ob *OrderBook) Side(name string) (*Side, error) {
	role, ok := ResolveSide(name)
	if !ok {
		return nil, fmt.Errorf("book: side %q: %w", name, errs.ErrNotFound)
	}
	if role == RoleBid {
		return ob.bid, nil
	}
	return ob.ask, nil
}

// SetSide wholesale-replaces a side's contents by name. An
// unrecognised name is ErrInvalidValue, matching the original's
// ValueError on an invalid write-side name (writes use a stricter
// error kind than reads, because assigning to an unknown side can
// never be a simple lookup miss — it is always a caller mistake).
func (ob *OrderBook) SetSide(name string, pairs []sortedmap.Pair[Value]) error {
	role, ok := ResolveSide(name)
	if !ok {
		return fmt.Errorf("book: set side %q: %w", name, errs.ErrInvalidValue)
	}
	if role == RoleBid {
		return ob.bid.ReplaceAll(pairs)
	}
	return ob.ask.ReplaceAll(pairs)
}

// DeleteSide always fails: a side cannot be removed from an
// OrderBook, only its contents cleared via SetSide with an empty
// slice.
func (ob *OrderBook) DeleteSide(name string) error {
	return fmt.Errorf("book: side %q cannot be deleted: %w", name, errs.ErrInvalidValue)
}

// Len reports len(bids) + len(asks).
func (ob *OrderBook) Len() int {
	return ob.bid.Len() + ob.ask.Len()
}

// Dict is the outer {"bid": ..., "ask": ...} view OrderBook.ToDict
// returns.
type Dict struct {
	Bid []sortedmap.Pair[Value]
	Ask []sortedmap.Pair[Value]
}

// ToDict returns both sides' visible levels keyed by their singular
// role name.
func (ob *OrderBook) ToDict() Dict {
	return Dict{Bid: ob.bid.ToList(), Ask: ob.ask.ToList()}
}
