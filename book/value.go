package book

import "lobkit/dec"

// Value is the tagged variant a Side stores at one price level: either
// a scalar size (a level-2 book) or a per-order-id size map (a level-3
// book). Exactly one of the two forms is populated.
type Value struct {
	scalar   dec.Value
	orders   map[string]dec.Value
	isOrders bool
}

// Scalar builds a level-2 Value: a single aggregated size at a price.
func Scalar(size dec.Value) Value {
	return Value{scalar: size}
}

// Orders builds a level-3 Value from an order_id -> size mapping. The
// caller's map is taken by reference; construct a fresh one per price
// level.
func Orders(orders map[string]dec.Value) Value {
	return Value{orders: orders, isOrders: true}
}

// IsOrders reports whether this Value is a level-3 per-order mapping
// rather than a level-2 scalar size.
func (v Value) IsOrders() bool {
	return v.isOrders
}

// AsScalar returns the level-2 size and true, or the zero Value and
// false if this Value is a level-3 order mapping.
func (v Value) AsScalar() (dec.Value, bool) {
	if v.isOrders {
		return dec.Value{}, false
	}
	return v.scalar, true
}

// AsOrders returns the level-3 order_id -> size mapping and true, or
// nil and false if this Value is a level-2 scalar.
func (v Value) AsOrders() (map[string]dec.Value, bool) {
	if !v.isOrders {
		return nil, false
	}
	return v.orders, true
}
