package book

import (
	"fmt"

	"lobkit/dec"
	"lobkit/errs"
	"lobkit/sortedmap"
)

// Role identifies which half of an OrderBook a Side represents.
type Role int

const (
	// RoleBid is the descending (best bid first) side.
	RoleBid Role = iota
	// RoleAsk is the ascending (best ask first) side.
	RoleAsk
)

// Side is a SortedMap fixed to one of a book's two directions: bids
// sort DESC (best bid first), asks sort ASC (best ask first). All
// SortedMap read operations apply unchanged; mutation goes through
// Side's price-level-aware helpers so level-3 order maps stay
// internally consistent.
type Side struct {
	role Role
	m    *sortedmap.SortedMap[Value]
}

func newSide(role Role, maxDepth int, truncate sortedmap.Truncate) *Side {
	direction := sortedmap.Ascending
	if role == RoleBid {
		direction = sortedmap.Descending
	}
	m, _ := sortedmap.New[Value](direction, maxDepth, truncate, nil)
	return &Side{role: role, m: m}
}

// Role reports whether this is the bid or ask side.
func (s *Side) Role() Role {
	return s.role
}

// Set assigns the level-2 aggregated size at price, replacing whatever
// was there (scalar or level-3).
func (s *Side) Set(price, size dec.Value) error {
	return s.m.Set(price, Scalar(size))
}

// Get returns the Value at price, or ErrNotFound.
func (s *Side) Get(price dec.Value) (Value, error) {
	return s.m.Get(price)
}

// Has reports whether price is present.
func (s *Side) Has(price dec.Value) bool {
	return s.m.Has(price)
}

// Delete removes the price level entirely (both level-2 and level-3
// forms), or returns ErrNotFound.
func (s *Side) Delete(price dec.Value) error {
	return s.m.Delete(price)
}

// Len reports the number of visible price levels.
func (s *Side) Len() int {
	return s.m.Len()
}

// Keys returns the visible prices in directional order.
func (s *Side) Keys() []dec.Value {
	return s.m.Keys()
}

// Index returns the i-th visible (price, Value) pair; negative i
// counts from the end.
func (s *Side) Index(i int) (dec.Value, Value, error) {
	return s.m.Index(i)
}

// ToList returns the visible (price, Value) pairs in directional
// order.
func (s *Side) ToList() []sortedmap.Pair[Value] {
	return s.m.ToList()
}

// TruncateNow drops price levels beyond the configured max depth.
func (s *Side) TruncateNow() {
	s.m.TruncateNow()
}

// All returns a fresh range-over-func iterator over (price, Value) in
// directional order.
func (s *Side) All() func(yield func(dec.Value, Value) bool) {
	return s.m.All()
}

// SetOrder records orderID's size at price for a level-3 book. If
// price already holds a level-2 scalar, it is an ErrInvalidValue — a
// price level is either all-scalar or all-orders, never both.
func (s *Side) SetOrder(price dec.Value, orderID string, size dec.Value) error {
	existing, err := s.m.Get(price)
	if err != nil {
		return s.m.Set(price, Orders(map[string]dec.Value{orderID: size}))
	}
	orders, ok := existing.AsOrders()
	if !ok {
		return fmt.Errorf("book: price %s already holds a scalar level: %w", price.String(), errs.ErrInvalidValue)
	}
	orders[orderID] = size
	return nil
}

// DeleteOrder removes orderID from price's order map. Per spec, this
// does not delete the price level itself even if it was the last
// order there — callers that want the level gone call Delete
// explicitly. Returns ErrNotFound if price or orderID is absent.
func (s *Side) DeleteOrder(price dec.Value, orderID string) error {
	existing, err := s.m.Get(price)
	if err != nil {
		return err
	}
	orders, ok := existing.AsOrders()
	if !ok {
		return fmt.Errorf("book: price %s is not a level-3 level: %w", price.String(), errs.ErrInvalidValue)
	}
	if _, ok := orders[orderID]; !ok {
		return fmt.Errorf("book: order %s at price %s: %w", orderID, price.String(), errs.ErrNotFound)
	}
	delete(orders, orderID)
	return nil
}

// ReplaceAll wholesale-replaces every price level with pairs,
// discarding whatever the Side previously held. pairs' order is
// otherwise irrelevant — the underlying SortedMap re-sorts on the
// first read.
func (s *Side) ReplaceAll(pairs []sortedmap.Pair[Value]) error {
	m, err := sortedmap.New[Value](s.m.Direction(), s.m.MaxDepth(), s.m.TruncateMode(), pairs)
	if err != nil {
		return err
	}
	s.m = m
	return nil
}
