package menu

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaut2172/bidindex/internal/datastruct"
	"github.com/gaut2172/bidindex/internal/datastruct/hashtable"
	"github.com/gaut2172/bidindex/internal/datastruct/tree"
	"github.com/gaut2172/bidindex/internal/ingest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,title,fund,amount
98109,A,General Fund,$12.50
98110,B,Enterprise,"$1,000.00"
`

var factories = []struct {
	name     string
	newIndex IndexFactory
}{
	{"ordered", func() datastruct.Index { return tree.NewBinarySearchTree() }},
	{"hashed", func() datastruct.Index { return hashtable.NewHashTable(hashtable.DefaultCapacity) }},
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "bids.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// run feeds input to a fresh menu and returns the output of each command,
// split on the menu prompt.
func run(t *testing.T, newIndex IndexFactory, source, input string) []string {
	t.Helper()

	loader := ingest.NewLoader(
		ingest.Columns{ID: 0, Title: 1, Fund: 2, Amount: 3},
		',',
		zerolog.Nop(),
	)

	var out bytes.Buffer
	m := NewMenu(strings.NewReader(input), &out, loader, newIndex, source, "98109", zerolog.Nop())
	require.NoError(t, m.Run(context.Background()))

	sections := strings.Split(out.String(), menuText)
	require.NotEmpty(t, sections)
	assert.Equal(t, "", sections[0])

	return sections[1:]
}

func TestMenu_EndToEnd(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			source := writeCSV(t, sampleCSV)
			input := strings.Join([]string{
				"1",
				"3", "98109",
				"4", "98109",
				"3", "98109",
				"2",
				"9",
			}, "\n") + "\n"

			out := run(t, f.newIndex, source, input)
			require.Len(t, out, 6)

			assert.Contains(t, out[0], "Loading CSV file "+source)
			assert.Contains(t, out[0], "2 bids read")
			assert.Contains(t, out[0], "time: ")

			assert.Contains(t, out[1], "98109: A | 12.5 | General Fund")
			assert.Contains(t, out[1], "time: ")

			assert.Contains(t, out[2], "Bid Id 98109 removed.")

			assert.Contains(t, out[3], "Bid Id 98109 not found.")

			assert.Contains(t, out[4], "98110")
			assert.Contains(t, out[4], "1000.00")
			assert.NotContains(t, out[4], "98109")

			assert.Equal(t, "Good bye.\n", out[5])
		})
	}
}

func TestMenu_DisplayShowsBucketsForHashedIndex(t *testing.T) {
	source := writeCSV(t, sampleCSV)

	hashed := run(t, factories[1].newIndex, source, "1\n2\n9\n")
	assert.Contains(t, hashed[1], "Bucket")

	ordered := run(t, factories[0].newIndex, source, "1\n2\n9\n")
	assert.NotContains(t, ordered[1], "Bucket")
}

func TestMenu_Messages(t *testing.T) {
	source := writeCSV(t, sampleCSV)

	tcs := []struct {
		name   string
		input  string
		assert func(t *testing.T, out []string)
	}{
		{
			name:  "remove before load",
			input: "4\n98109\n9\n",
			assert: func(t *testing.T, out []string) {
				assert.Contains(t, out[0], msgEmptyIndex)
			},
		},
		{
			name:  "display before load",
			input: "2\n9\n",
			assert: func(t *testing.T, out []string) {
				assert.Contains(t, out[0], "No bids loaded.")
			},
		},
		{
			name:  "find before load",
			input: "3\n98109\n9\n",
			assert: func(t *testing.T, out []string) {
				assert.Contains(t, out[0], "Bid Id 98109 not found.")
			},
		},
		{
			name:  "invalid choice",
			input: "5\nabc\n9\n",
			assert: func(t *testing.T, out []string) {
				require.Len(t, out, 3)
				assert.Equal(t, "Invalid choice.\n", out[0])
				assert.Equal(t, "Invalid choice.\n", out[1])
			},
		},
		{
			name:  "blank id uses the default key",
			input: "1\n3\n\n9\n",
			assert: func(t *testing.T, out []string) {
				assert.Contains(t, out[1], "Enter bid id [98109]: ")
				assert.Contains(t, out[1], "98109: A |")
			},
		},
		{
			name:  "remove miss",
			input: "1\n4\n11111\n9\n",
			assert: func(t *testing.T, out []string) {
				assert.Contains(t, out[1], "Bid Id 11111 not found.")
			},
		},
		{
			name:  "remove everything then remove again",
			input: "1\n4\n98109\n4\n98110\n4\n98110\n2\n9\n",
			assert: func(t *testing.T, out []string) {
				assert.Contains(t, out[3], msgEmptyIndex)
				assert.Contains(t, out[4], "No bids loaded.")
			},
		},
		{
			name:  "reload replaces the index",
			input: "1\n1\n4\n98109\n3\n98109\n9\n",
			assert: func(t *testing.T, out []string) {
				assert.Contains(t, out[1], "2 bids read")
				assert.Contains(t, out[3], "Bid Id 98109 not found.")
			},
		},
		{
			name:  "end of input",
			input: "2\n",
			assert: func(t *testing.T, out []string) {
				require.Len(t, out, 2)
				assert.Contains(t, out[1], "Good bye.")
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			tc.assert(t, run(t, factories[0].newIndex, source, tc.input))
		})
	}
}

func TestMenu_LoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")

	out := run(t, factories[1].newIndex, missing, "1\n2\n9\n")

	assert.Contains(t, out[0], "Failed to load bids")
	assert.Contains(t, out[0], "0 bids read")
	assert.Contains(t, out[1], "No bids loaded.")
}

func TestMenu_PartialLoadIsKept(t *testing.T) {
	source := writeCSV(t, sampleCSV+"98111,C\n")

	out := run(t, factories[0].newIndex, source, "1\n3\n98110\n9\n")

	assert.Contains(t, out[0], "Failed to load bids")
	assert.Contains(t, out[0], "2 bids read")
	assert.Contains(t, out[1], "98110: B |")
}

func TestMenu_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMenu(
		strings.NewReader("9\n"),
		&bytes.Buffer{},
		ingest.NewLoader(ingest.DefaultColumns, ',', zerolog.Nop()),
		factories[0].newIndex,
		"unused.csv",
		"98109",
		zerolog.Nop(),
	)

	assert.ErrorIs(t, m.Run(ctx), context.Canceled)
}
