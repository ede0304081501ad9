// Package persist saves and restores a level-2 order book snapshot as
// JSON on disk, using the same crash-safe write-then-rename technique
// the teacher bot's internal/store package uses for position files:
// one file per book, written to a .tmp sibling and renamed into place
// so a crash mid-write never leaves a corrupt snapshot behind.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lobkit/book"
	"lobkit/dec"
	"lobkit/sortedmap"
)

// Store persists book snapshots to JSON files in a directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open creates a Store backed by dir, creating it if necessary.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persist: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

type levelDTO struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

type snapshotDTO struct {
	Bid []levelDTO `json:"bid"`
	Ask []levelDTO `json:"ask"`
}

func toDTO(pairs []sortedmap.Pair[book.Value]) []levelDTO {
	out := make([]levelDTO, 0, len(pairs))
	for _, p := range pairs {
		size, ok := p.Value.AsScalar()
		if !ok {
			continue
		}
		out = append(out, levelDTO{Price: p.Key.String(), Size: size.String()})
	}
	return out
}

func fromDTO(levels []levelDTO) ([]sortedmap.Pair[book.Value], error) {
	out := make([]sortedmap.Pair[book.Value], 0, len(levels))
	for _, lvl := range levels {
		price, err := dec.FromString(lvl.Price)
		if err != nil {
			return nil, err
		}
		size, err := dec.FromString(lvl.Size)
		if err != nil {
			return nil, err
		}
		out = append(out, sortedmap.Pair[book.Value]{Key: price, Value: book.Scalar(size)})
	}
	return out, nil
}

// Save writes ob's current level-2 view to book_<name>.json, atomically.
// Level-3 (per-order-id) levels are not persisted — a reload always
// produces a level-2 book, matching the original's to_dict behavior
// for a checksum/snapshot export.
func (s *Store) Save(name string, ob *book.OrderBook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dict := ob.ToDict()
	dto := snapshotDTO{Bid: toDTO(dict.Bid), Ask: toDTO(dict.Ask)}

	data, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("persist: marshal snapshot: %w", err)
	}

	path := s.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("persist: write snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load restores name's snapshot into ob via SetSide, replacing
// whatever ob previously held on both sides. Returns os.ErrNotExist
// (wrapped) if no snapshot has been saved under name yet.
func (s *Store) Load(name string, ob *book.OrderBook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return fmt.Errorf("persist: read snapshot: %w", err)
	}

	var dto snapshotDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("persist: unmarshal snapshot: %w", err)
	}

	bidPairs, err := fromDTO(dto.Bid)
	if err != nil {
		return fmt.Errorf("persist: bid levels: %w", err)
	}
	askPairs, err := fromDTO(dto.Ask)
	if err != nil {
		return fmt.Errorf("persist: ask levels: %w", err)
	}

	if err := ob.SetSide("bids", bidPairs); err != nil {
		return err
	}
	return ob.SetSide("asks", askPairs)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, "book_"+name+".json")
}
