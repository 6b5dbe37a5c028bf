package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/gaut2172/bidindex/internal/applog"
	"github.com/gaut2172/bidindex/internal/bid"
	"github.com/rs/zerolog"
)

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrMalformedRow      = errors.New("malformed row")
)

// Columns maps bid fields to zero-based CSV column positions.
type Columns struct {
	ID     int
	Title  int
	Fund   int
	Amount int
}

// DefaultColumns matches the monthly eBid sales export.
var DefaultColumns = Columns{ID: 1, Title: 0, Fund: 8, Amount: 4}

func (c Columns) max() int {
	return max(c.ID, c.Title, c.Fund, c.Amount)
}

// Loader reads bids from delimited text with a header row.
type Loader struct {
	columns Columns
	comma   rune
	header  []string
	logger  zerolog.Logger
}

func NewLoader(columns Columns, comma rune, logger zerolog.Logger) *Loader {
	if comma == 0 {
		comma = ','
	}

	return &Loader{
		columns: columns,
		comma:   comma,
		logger:  logger,
	}
}

// Header returns the header row of the most recent load.
func (l *Loader) Header() []string {
	return slices.Clone(l.header)
}

// Load opens path and passes every record to sink in file order.
// It returns the number of records delivered. Records delivered before an
// error are not rolled back.
func (l *Loader) Load(
	ctx context.Context,
	path string,
	sink func(bid.Bid),
) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	n, err := l.Read(ctx, f, sink)
	if err != nil {
		return n, fmt.Errorf("loading %s: %w", path, err)
	}

	return n, nil
}

// Read is Load for an already opened source.
func (l *Loader) Read(
	ctx context.Context,
	r io.Reader,
	sink func(bid.Bid),
) (int, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.comma
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: missing header row", ErrMalformedRow)
		}
		return 0, l.wrapReadErr(err)
	}
	l.header = slices.Clone(header)

	if need := l.columns.max() + 1; len(header) < need {
		return 0, fmt.Errorf(
			"%w: header has %d columns, need at least %d",
			ErrMalformedRow, len(header), need,
		)
	}

	l.logger.Debug().Strs("header", l.header).Msg("header read")

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, l.wrapReadErr(err)
		}

		sink(l.toBid(row, reader))
		count++
	}
}

func (l *Loader) toBid(row []string, reader *csv.Reader) bid.Bid {
	amount, err := bid.ParseAmount(row[l.columns.Amount])
	if err != nil {
		line, _ := reader.FieldPos(l.columns.Amount)
		applog.WarnUnwrapped(&l.logger, fmt.Sprintf("line %d: amount set to zero", line), err)
	}

	return bid.Bid{
		ID:     row[l.columns.ID],
		Title:  row[l.columns.Title],
		Fund:   row[l.columns.Fund],
		Amount: amount,
	}
}

func (l *Loader) wrapReadErr(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %w", ErrMalformedRow, parseErr)
	}

	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}

// Collect loads every record of path into a slice.
func (l *Loader) Collect(ctx context.Context, path string) ([]bid.Bid, error) {
	var bids []bid.Bid
	_, err := l.Load(ctx, path, func(b bid.Bid) {
		bids = append(bids, b)
	})

	return bids, err
}
