// Package menu drives an index through an interactive text menu.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/gaut2172/bidindex/internal/appctx"
	"github.com/gaut2172/bidindex/internal/applog"
	"github.com/gaut2172/bidindex/internal/bid"
	"github.com/gaut2172/bidindex/internal/datastruct"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

const menuText = `Menu:
  1. Load Bids
  2. Display All Bids
  3. Find Bid
  4. Remove Bid
  9. Exit
Enter choice: `

const (
	msgGoodBye    = "Good bye."
	msgInvalid    = "Invalid choice."
	msgNoBids     = "No bids loaded."
	msgEmptyIndex = "There are no bids to choose from. Please load bids, then remove."
)

type Loader interface {
	Load(ctx context.Context, path string, sink func(bid.Bid)) (int, error)
}

// IndexFactory builds an empty index for each load.
type IndexFactory func() datastruct.Index

// bucketed is implemented by indexes that can report where each bid lives.
type bucketed interface {
	Entries() iter.Seq2[int, bid.Bid]
}

type Menu struct {
	in         *bufio.Scanner
	out        io.Writer
	loader     Loader
	newIndex   IndexFactory
	source     string
	defaultKey string
	logger     zerolog.Logger

	index datastruct.Index
}

func NewMenu(
	in io.Reader,
	out io.Writer,
	loader Loader,
	newIndex IndexFactory,
	source string,
	defaultKey string,
	logger zerolog.Logger,
) *Menu {
	return &Menu{
		in:         bufio.NewScanner(in),
		out:        out,
		loader:     loader,
		newIndex:   newIndex,
		source:     source,
		defaultKey: defaultKey,
		logger:     logger,
	}
}

// Run serves menu choices until the user exits, the input ends or ctx is
// canceled. The current index is destroyed on return.
func (m *Menu) Run(ctx context.Context) error {
	defer m.reset()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.print(menuText)
		line, ok := m.readLine()
		if !ok {
			m.println("")
			m.println(msgGoodBye)
			return m.in.Err()
		}

		choice := strings.TrimSpace(line)
		cmdCtx := appctx.WithCommand(appctx.WithNewSessionID(ctx), choice)
		m.logger.Debug().Ctx(cmdCtx).Msgf("choice %q", choice)

		switch choice {
		case "1":
			m.loadBids(cmdCtx)
		case "2":
			m.displayAll()
		case "3":
			m.findBid()
		case "4":
			m.removeBid(cmdCtx)
		case "9":
			m.println(msgGoodBye)
			return nil
		default:
			m.println(msgInvalid)
		}
	}
}

func (m *Menu) loadBids(ctx context.Context) {
	m.reset()
	m.index = m.newIndex()

	m.printf("Loading CSV file %s\n", m.source)
	start := time.Now()
	n, err := m.loader.Load(ctx, m.source, m.index.Insert)
	elapsed := time.Since(start)

	if err != nil {
		applog.ErrorUnwrapped(&m.logger, "load failed", err)
		m.printf("Failed to load bids: %s\n", err)
	}

	m.logger.Info().Ctx(ctx).Int("count", n).Dur("elapsed", elapsed).Msg("bids loaded")
	m.printf("%d bids read\n", n)
	m.printElapsed(elapsed)
}

func (m *Menu) displayAll() {
	if m.index == nil || m.index.Len() == 0 {
		m.println(msgNoBids)
		return
	}

	out, err := renderTable(m.index)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to render bids")
		for b := range m.index.All() {
			m.println(b.String())
		}
		return
	}

	m.print(out)
	m.println("")
}

func (m *Menu) findBid() {
	id, ok := m.promptID()
	if !ok {
		return
	}

	var found bid.Bid
	start := time.Now()
	if m.index != nil {
		found = m.index.Search(id)
	}
	elapsed := time.Since(start)

	if found.IsEmpty() {
		m.printf("Bid Id %s not found.\n", id)
	} else {
		m.println(found.String())
	}
	m.printElapsed(elapsed)
}

func (m *Menu) removeBid(ctx context.Context) {
	id, ok := m.promptID()
	if !ok {
		return
	}

	result := datastruct.Empty
	if m.index != nil {
		result = m.index.Remove(id)
	}
	m.logger.Debug().Ctx(ctx).Str("id", id).Stringer("result", result).Msg("remove")

	switch result {
	case datastruct.Removed:
		m.printf("Bid Id %s removed.\n", id)
	case datastruct.NotFound:
		m.printf("Bid Id %s not found.\n", id)
	case datastruct.Empty:
		m.println(msgEmptyIndex)
	}
}

// promptID reads a bid id; a blank answer selects the default key.
func (m *Menu) promptID() (string, bool) {
	m.printf("Enter bid id [%s]: ", m.defaultKey)
	line, ok := m.readLine()
	if !ok {
		m.println("")
		return "", false
	}

	id := strings.TrimSpace(line)
	if id == "" {
		id = m.defaultKey
	}

	return id, true
}

func (m *Menu) reset() {
	if m.index != nil {
		m.index.Destroy()
		m.index = nil
	}
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}

	return m.in.Text(), true
}

func (m *Menu) printElapsed(d time.Duration) {
	m.printf("time: %s\n", d)
}

func (m *Menu) print(s string) {
	_, _ = io.WriteString(m.out, s)
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}

func renderTable(index datastruct.Index) (string, error) {
	header := []string{"ID", "Title", "Amount", "Fund"}
	rows := func(yield func(b bid.Bid, prefix []string) bool) {
		for b := range index.All() {
			if !yield(b, nil) {
				return
			}
		}
	}

	if bi, ok := index.(bucketed); ok {
		header = append([]string{"Bucket"}, header...)
		rows = func(yield func(b bid.Bid, prefix []string) bool) {
			for k, b := range bi.Entries() {
				if !yield(b, []string{fmt.Sprint(k)}) {
					return
				}
			}
		}
	}

	data := pterm.TableData{header}
	for b, prefix := range rows {
		data = append(data, append(prefix, b.ID, b.Title, b.Amount.StringFixed(2), b.Fund))
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
