// Package checksum computes the venue-specific 32-bit book fingerprint
// exchanges use to detect client/server desync, over the top levels of
// a lobkit/book.OrderBook.
//
// All four venues reduce to the same primitive: build a byte string
// from the top of book in a venue-defined order and run it through a
// CRC32 (IEEE/zlib polynomial, the variant Go's hash/crc32 and
// Python's zlib.crc32 both implement identically). No third-party
// library in this module's retrieval pack offers anything beyond what
// hash/crc32 already does for this exact polynomial, so this is one of
// the few places in the repository that reaches for the standard
// library on purpose rather than for lack of an alternative — see
// DESIGN.md.
package checksum

import (
	"fmt"
	"hash/crc32"
	"strings"

	"lobkit/book"
	"lobkit/dec"
	"lobkit/errs"
	"lobkit/sortedmap"
)

const (
	krakenDepth = 10
	okDepth     = 25
)

// Compute returns the venue checksum for ob, or an error if ob's
// ChecksumFormat is book.ChecksumNone or the book does not meet the
// venue's minimum depth requirement.
func Compute(ob *OrderBook) (uint32, error) {
	format := ob.ChecksumFormat()
	bids := scalarLevels(ob.Bids().ToList())
	asks := scalarLevels(ob.Asks().ToList())

	switch format {
	case book.ChecksumNone:
		return 0, fmt.Errorf("checksum: no checksum format configured: %w", errs.ErrInvalidValue)
	case book.ChecksumKraken:
		return krakenChecksum(ob.MaxDepth(), bids, asks)
	case book.ChecksumOKX, book.ChecksumOKCoin:
		return okChecksum(bids, asks), nil
	case book.ChecksumFTX:
		return ftxChecksum(bids, asks), nil
	default:
		return 0, fmt.Errorf("checksum: unknown format %d: %w", format, errs.ErrInvalidValue)
	}
}

// OrderBook is an alias for lobkit/book.OrderBook, so callers pass a
// *book.OrderBook to Compute directly.
type OrderBook = book.OrderBook

type level struct {
	price string
	size  string
}

// scalarLevels flattens a side's visible levels to their price/size
// display strings, skipping — rather than erroring on — any level-3
// entries, since a checksum is only defined over an aggregated
// (level-2) view of the book.
func scalarLevels(pairs []sortedmap.Pair[book.Value]) []level {
	out := make([]level, 0, len(pairs))
	for _, p := range pairs {
		size, ok := p.Value.AsScalar()
		if !ok {
			continue
		}
		out = append(out, level{price: p.Key.String(), size: size.String()})
	}
	return out
}

func krakenToken(s string) string {
	v, err := dec.FromString(s)
	if err != nil {
		return s
	}
	return v.KrakenToken()
}

// krakenChecksum requires the book's configured max depth, when set, to
// be at least krakenDepth — matching the original's test_minimum_depth_kraken,
// which rejects an OrderBook(max_depth=9, ...) before it ever holds a
// single level. An unbounded book (max_depth=0) or one configured with
// max_depth>=10 is never rejected on this basis, even if fewer than 10
// levels are currently loaded per side; the checksum is then taken over
// whatever is available, up to krakenDepth.
func krakenChecksum(maxDepth int, bids, asks []level) (uint32, error) {
	if maxDepth != 0 && maxDepth < krakenDepth {
		return 0, fmt.Errorf("checksum: kraken requires max_depth >= %d, have %d: %w",
			krakenDepth, maxDepth, errs.ErrInvalidValue)
	}

	nAsks, nBids := krakenDepth, krakenDepth
	if len(asks) < nAsks {
		nAsks = len(asks)
	}
	if len(bids) < nBids {
		nBids = len(bids)
	}

	var b strings.Builder
	for _, lvl := range asks[:nAsks] {
		b.WriteString(krakenToken(lvl.price))
		b.WriteString(krakenToken(lvl.size))
	}
	for _, lvl := range bids[:nBids] {
		b.WriteString(krakenToken(lvl.price))
		b.WriteString(krakenToken(lvl.size))
	}
	return crc32.ChecksumIEEE([]byte(b.String())), nil
}

func okChecksum(bids, asks []level) uint32 {
	if len(bids) > okDepth {
		bids = bids[:okDepth]
	}
	if len(asks) > okDepth {
		asks = asks[:okDepth]
	}

	n := len(bids)
	if len(asks) > n {
		n = len(asks)
	}

	tokens := make([]string, 0, 2*n)
	for i := 0; i < n; i++ {
		if i < len(bids) {
			tokens = append(tokens, bids[i].price+":"+bids[i].size)
		}
		if i < len(asks) {
			tokens = append(tokens, asks[i].price+":"+asks[i].size)
		}
	}
	return crc32.ChecksumIEEE([]byte(strings.Join(tokens, ":")))
}

func ftxChecksum(bids, asks []level) uint32 {
	n := len(bids)
	if len(asks) < n {
		n = len(asks)
	}

	tokens := make([]string, 0, len(bids)+len(asks))
	for i := 0; i < n; i++ {
		tokens = append(tokens, bids[i].price+":"+bids[i].size)
		tokens = append(tokens, asks[i].price+":"+asks[i].size)
	}
	switch {
	case len(bids) > n:
		for _, lvl := range bids[n:] {
			tokens = append(tokens, lvl.price+":"+lvl.size)
		}
	case len(asks) > n:
		for _, lvl := range asks[n:] {
			tokens = append(tokens, lvl.price+":"+lvl.size)
		}
	}
	return crc32.ChecksumIEEE([]byte(strings.Join(tokens, ":")))
}
