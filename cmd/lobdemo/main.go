// Command lobdemo loads a static order book snapshot from disk and
// prints its top of book and venue checksum. It exercises the
// config -> logging -> book wiring the same way the teacher bot's
// cmd/bot/main.go wires config -> logging -> engine, with a one-shot
// fixture load standing in for the teacher's live exchange feed —
// this module's Non-goals exclude network transport, so there is no
// websocket client here, only the book and checksum engine it feeds.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"lobkit/book"
	"lobkit/checksum"
	"lobkit/config"
	"lobkit/dec"
	"lobkit/logging"
	"lobkit/sortedmap"
)

func main() {
	cfgPath := flag.String("config", "configs/lobdemo.yaml", "path to config file")
	snapshotPath := flag.String("snapshot", "testdata/kraken_snapshot.json", "path to a {\"bids\":[[price,size],...],\"asks\":[...]} snapshot")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "path", *cfgPath)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	opts, err := cfg.Book.Options()
	if err != nil {
		logger.Error("invalid book options", "error", err)
		os.Exit(1)
	}

	ob, err := book.New(opts)
	if err != nil {
		logger.Error("failed to create order book", "error", err)
		os.Exit(1)
	}

	snap, err := loadSnapshot(*snapshotPath)
	if err != nil {
		logger.Error("failed to load snapshot", "error", err, "path", *snapshotPath)
		os.Exit(1)
	}

	if err := applySnapshot(ob, snap); err != nil {
		logger.Error("failed to apply snapshot", "error", err)
		os.Exit(1)
	}

	logger.Info("order book loaded",
		"bids", ob.Bids().Len(),
		"asks", ob.Asks().Len(),
	)

	if price, val, err := ob.Bids().Index(0); err == nil {
		size, _ := val.AsScalar()
		fmt.Printf("best bid: %s @ %s\n", size.String(), price.String())
	}
	if price, val, err := ob.Asks().Index(0); err == nil {
		size, _ := val.AsScalar()
		fmt.Printf("best ask: %s @ %s\n", size.String(), price.String())
	}

	sum, err := checksum.Compute(ob)
	if err != nil {
		logger.Error("checksum unavailable", "error", err)
		os.Exit(1)
	}
	fmt.Printf("checksum (%s): %d\n", cfg.Book.ChecksumFormat, sum)
}

type snapshot struct {
	Bids [][2]string `json:"bids"`
	Asks [][2]string `json:"asks"`
}

func loadSnapshot(path string) (snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot{}, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func applySnapshot(ob *book.OrderBook, snap snapshot) error {
	bidPairs, err := levelPairs(snap.Bids)
	if err != nil {
		return fmt.Errorf("bids: %w", err)
	}
	askPairs, err := levelPairs(snap.Asks)
	if err != nil {
		return fmt.Errorf("asks: %w", err)
	}
	if err := ob.SetSide("bids", bidPairs); err != nil {
		return err
	}
	return ob.SetSide("asks", askPairs)
}

func levelPairs(levels [][2]string) ([]sortedmap.Pair[book.Value], error) {
	pairs := make([]sortedmap.Pair[book.Value], 0, len(levels))
	for _, lvl := range levels {
		price, err := dec.FromString(lvl[0])
		if err != nil {
			return nil, err
		}
		size, err := dec.FromString(lvl[1])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, sortedmap.Pair[book.Value]{Key: price, Value: book.Scalar(size)})
	}
	return pairs, nil
}
