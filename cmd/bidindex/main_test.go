package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaut2172/bidindex/internal/bid"
	"github.com/gaut2172/bidindex/internal/config"
	"github.com/gaut2172/bidindex/internal/datastruct/hashtable"
	"github.com/gaut2172/bidindex/internal/datastruct/tree"
	"github.com/gaut2172/bidindex/internal/ingest"
	"github.com/gaut2172/bidindex/internal/ptr"
	"github.com/gaut2172/bidindex/internal/sorting"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIndex(t *testing.T) {
	tcs := []struct {
		name   string
		kind   config.IndexKindType
		assert func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "ordered",
			kind: config.IndexKindOrdered,
			assert: func(t *testing.T, cfg *config.Config) {
				index := createIndex(cfg)()
				assert.IsType(t, &tree.BinarySearchTree{}, index)
			},
		},
		{
			name: "hashed",
			kind: config.IndexKindHashed,
			assert: func(t *testing.T, cfg *config.Config) {
				index := createIndex(cfg)()
				if assert.IsType(t, &hashtable.HashTable{}, index) {
					assert.Equal(t, 13, index.(*hashtable.HashTable).Capacity())
				}
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Index = &config.IndexOptions{
				Kind:     ptr.FromValue(tc.kind),
				Capacity: ptr.FromValue(uint16(13)),
			}
			tc.assert(t, cfg)
		})
	}
}

func TestCreateIndex_FreshIndexPerCall(t *testing.T) {
	newIndex := createIndex(config.NewConfig())

	first := newIndex()
	first.Insert(bid.Bid{ID: "98109"})

	assert.Equal(t, 0, newIndex().Len())
	assert.Equal(t, 1, first.Len())
}

func TestCreateLoader(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bids.tsv")
	require.NoError(t, os.WriteFile(p, []byte("title\tid\nA\t98109\n"), 0o644))

	cfg := config.NewConfig().Merge(&config.Config{
		Source: &config.SourceOptions{
			Delimiter: ptr.FromValue('\t'),
			Columns: &config.ColumnOptions{
				ID:     ptr.FromValue(uint8(1)),
				Title:  ptr.FromValue(uint8(0)),
				Fund:   ptr.FromValue(uint8(0)),
				Amount: ptr.FromValue(uint8(1)),
			},
		},
	})

	bids, err := createLoader(zerolog.Nop(), cfg).Collect(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, "98109", bids[0].ID)
	assert.Equal(t, "A", bids[0].Title)
}

func TestSortBids(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bids.csv")
	content := "id,title,fund,amount\n" +
		"3,Chair,General,$5\n" +
		"1,Bench,Parks,$7\n" +
		"2,Anvil,General,$9\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	for _, algo := range []sorting.Algorithm{sorting.Quick, sorting.Selection} {
		t.Run(algo.String(), func(t *testing.T) {
			cfg := config.NewConfig().Merge(&config.Config{
				Source: &config.SourceOptions{
					Path:    ptr.FromValue(p),
					Columns: &config.ColumnOptions{
						ID:     ptr.FromValue(uint8(0)),
						Title:  ptr.FromValue(uint8(1)),
						Fund:   ptr.FromValue(uint8(2)),
						Amount: ptr.FromValue(uint8(3)),
					},
				},
				Sort: &config.SortOptions{Algorithm: ptr.FromValue(algo)},
			})

			var out bytes.Buffer
			require.NoError(t, sortBids(context.Background(), &out, zerolog.Nop(), cfg))

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.Len(t, lines, 5)
			assert.True(t, strings.HasPrefix(lines[0], "2: Anvil"))
			assert.True(t, strings.HasPrefix(lines[1], "1: Bench"))
			assert.True(t, strings.HasPrefix(lines[2], "3: Chair"))
			assert.Equal(t, "3 bids sorted with "+algo.String()+" sort", lines[3])
			assert.True(t, strings.HasPrefix(lines[4], "time: "))
		})
	}
}

func TestSortBids_SourceUnavailable(t *testing.T) {
	cfg := config.NewConfig().Merge(&config.Config{
		Source: &config.SourceOptions{
			Path: ptr.FromValue(filepath.Join(t.TempDir(), "missing.csv")),
		},
	})

	err := sortBids(context.Background(), &bytes.Buffer{}, zerolog.Nop(), cfg)
	assert.ErrorIs(t, err, ingest.ErrSourceUnavailable)
}

func TestPrintBanner(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Index.Kind = ptr.FromValue(config.IndexKindHashed)

	var out bytes.Buffer
	printBanner(&out, "~/.config/bidindex/bidindex.toml", cfg)

	assert.Contains(t, out.String(), "INDEX    : hashed")
	assert.Contains(t, out.String(), "CAPACITY : 179")
	assert.Contains(t, out.String(), "CONFIG   : ~/.config/bidindex/bidindex.toml")
}
