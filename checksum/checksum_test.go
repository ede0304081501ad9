package checksum

import (
	"errors"
	"hash/crc32"
	"testing"

	"lobkit/book"
	"lobkit/dec"
	"lobkit/errs"
)

func mustDec(t *testing.T, s string) dec.Value {
	t.Helper()
	v, err := dec.FromString(s)
	if err != nil {
		t.Fatalf("dec.FromString(%q): %v", s, err)
	}
	return v
}

func buildBook(t *testing.T, format book.ChecksumFormat, asks, bids [][2]string) *book.OrderBook {
	t.Helper()
	ob, err := book.New(book.Options{ChecksumFormat: format})
	if err != nil {
		t.Fatalf("book.New: %v", err)
	}
	for _, lvl := range asks {
		if err := ob.Asks().Set(mustDec(t, lvl[0]), mustDec(t, lvl[1])); err != nil {
			t.Fatalf("Asks().Set: %v", err)
		}
	}
	for _, lvl := range bids {
		if err := ob.Bids().Set(mustDec(t, lvl[0]), mustDec(t, lvl[1])); err != nil {
			t.Fatalf("Bids().Set: %v", err)
		}
	}
	return ob
}

// TestKrakenChecksum reproduces the exact test vectors from the
// original project's tests/test_checksums.py, including the Kraken
// documentation example and several recorded-data snapshots.
func TestKrakenChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		asks [][2]string
		bids [][2]string
		want uint32
	}{
		{
			name: "kraken docs example",
			asks: [][2]string{
				{"0.05005", "0.00000500"},
				{"0.05010", "0.00000500"},
				{"0.05015", "0.00000500"},
				{"0.05020", "0.00000500"},
				{"0.05025", "0.00000500"},
				{"0.05030", "0.00000500"},
				{"0.05035", "0.00000500"},
				{"0.05040", "0.00000500"},
				{"0.05045", "0.00000500"},
				{"0.05050", "0.00000500"},
			},
			bids: [][2]string{
				{"0.05000", "0.00000500"},
				{"0.04995", "0.00000500"},
				{"0.04990", "0.00000500"},
				{"0.04980", "0.00000500"},
				{"0.04975", "0.00000500"},
				{"0.04970", "0.00000500"},
				{"0.04965", "0.00000500"},
				{"0.04960", "0.00000500"},
				{"0.04955", "0.00000500"},
				{"0.04950", "0.00000500"},
			},
			want: 974947235,
		},
		{
			name: "recorded snapshot 1",
			asks: [][2]string{
				{"0.620000", "40.00000000"},
				{"0.830000", "380.86649128"},
				{"1.500000", "333.33333333"},
			},
			bids: [][2]string{
				{"0.520300", "3943.09454867"},
				{"0.403200", "454.31671175"},
				{"0.403100", "1522.68122054"},
				{"0.403000", "43.31058726"},
				{"0.353200", "49.38467346"},
				{"0.261600", "66.67686034"},
				{"0.111000", "99.09909910"},
				{"0.110000", "909.09090909"},
				{"0.000600", "3333.33333333"},
				{"0.000400", "5000.00000000"},
				{"0.000100", "1000000.00000000"},
			},
			want: 577149452,
		},
		{
			name: "recorded snapshot 2",
			asks: [][2]string{
				{"0.814900", "297.71298000"},
				{"0.815000", "500.00000000"},
				{"0.815100", "500.00399385"},
				{"0.815200", "42.03000000"},
				{"0.815300", "21.50000000"},
				{"0.815400", "10.75000000"},
				{"0.829900", "1442.34063708"},
				{"0.830000", "380.86649128"},
				{"1.500000", "333.33333333"},
			},
			bids: [][2]string{
				{"0.473400", "1284.67569684"},
				{"0.441000", "40.00415721"},
				{"0.342200", "51.43191116"},
				{"0.261600", "66.92596839"},
				{"0.111000", "99.09909910"},
				{"0.110000", "909.09090909"},
				{"0.000600", "3333.33333333"},
				{"0.000400", "5000.00000000"},
				{"0.000100", "1000000.00000000"},
			},
			want: 2369158246,
		},
		{
			name: "recorded snapshot with scientific-notation-prone volume",
			asks: [][2]string{
				{"0.000017680", "38663.54992198"},
				{"0.000017690", "20623.74841086"},
				{"0.000017700", "103797.62636430"},
				{"0.000017710", "40745.97057228"},
				{"0.000017720", "13296.04740856"},
				{"0.000017730", "42078.86085768"},
				{"0.000017740", "64.38065876"},
				{"0.000017760", "1131.70427847"},
				{"0.000017780", "43891.46024565"},
				{"0.000017790", "43908.00000000"},
				{"0.000017810", "0.00005437"},
			},
			bids: [][2]string{
				{"0.000017670", "0.00000048"},
				{"0.000017660", "50.29884341"},
				{"0.000017650", "16958.37856622"},
				{"0.000017640", "16735.08043085"},
				{"0.000017630", "61895.21671233"},
				{"0.000017620", "86958.66158205"},
				{"0.000017610", "8564.64738216"},
				{"0.000017600", "59539.93801826"},
				{"0.000017580", "52578.63046424"},
				{"0.000017570", "46812.60266777"},
				{"0.000017560", "640.09877588"},
			},
			want: 1611253991,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ob := buildBook(t, book.ChecksumKraken, tt.asks, tt.bids)
			got, err := Compute(ob)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if got != tt.want {
				t.Errorf("Compute() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestKrakenChecksumRequiresMinimumDepth reproduces
// test_minimum_depth_kraken: the gate is on the book's *configured*
// max depth, not on how many levels are currently loaded — an empty
// book configured with max_depth=9 is rejected before a single level
// is ever set.
func TestKrakenChecksumRequiresMinimumDepth(t *testing.T) {
	t.Parallel()
	ob, err := book.New(book.Options{MaxDepth: 9, ChecksumFormat: book.ChecksumKraken})
	if err != nil {
		t.Fatalf("book.New: %v", err)
	}
	if _, err := Compute(ob); !errors.Is(err, errs.ErrInvalidValue) {
		t.Errorf("Compute() error = %v, want ErrInvalidValue", err)
	}
}

// TestKrakenChecksumAllowsShortSidesUnderUnboundedDepth covers the
// situation the short-sided "recorded snapshot" vectors rely on, with a
// one-level-per-side book: an unbounded book (max_depth=0) with fewer
// than 10 levels on a side computes a checksum over whatever is
// available rather than erroring.
func TestKrakenChecksumAllowsShortSidesUnderUnboundedDepth(t *testing.T) {
	t.Parallel()
	ob := buildBook(t, book.ChecksumKraken,
		[][2]string{{"1", "1"}},
		[][2]string{{"1", "1"}},
	)
	if _, err := Compute(ob); err != nil {
		t.Errorf("Compute() error = %v, want nil (max_depth=0 never gates on live level count)", err)
	}
}

func TestOKXAndOKCoinChecksum(t *testing.T) {
	t.Parallel()
	asks := [][2]string{{"3366.8", "9"}, {"3368", "8"}, {"3372", "8"}}
	bids := [][2]string{{"3366.1", "7"}}

	for _, format := range []book.ChecksumFormat{book.ChecksumOKX, book.ChecksumOKCoin} {
		ob := buildBook(t, format, asks, bids)
		got, err := Compute(ob)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if got != 831078360 {
			t.Errorf("Compute() = %d, want 831078360", got)
		}
	}
}

func TestChecksumNoneIsInvalidValue(t *testing.T) {
	t.Parallel()
	ob := buildBook(t, book.ChecksumNone, nil, nil)
	if _, err := Compute(ob); !errors.Is(err, errs.ErrInvalidValue) {
		t.Errorf("Compute() error = %v, want ErrInvalidValue", err)
	}
}

func TestFTXChecksumInterleavesThenAppendsRemainder(t *testing.T) {
	t.Parallel()
	bids := [][2]string{{"100", "1"}, {"99", "2"}, {"98", "3"}}
	asks := [][2]string{{"101", "1"}}

	ob := buildBook(t, book.ChecksumFTX, asks, bids)
	got, err := Compute(ob)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	want := crc32.ChecksumIEEE([]byte("100:1:101:1:99:2:98:3"))
	if got != want {
		t.Errorf("Compute() = %d, want %d", got, want)
	}
}
