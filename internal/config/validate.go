package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gaut2172/bidindex/internal/sorting"
)

func checkUint8(v int) error {
	if v < 0 || math.MaxUint8 < v {
		return fmt.Errorf("out of range[%d-%d]", 0, math.MaxUint8)
	}

	return nil
}

func checkUint16NonZero(v int) error {
	if v < 1 || math.MaxUint16 < v {
		return fmt.Errorf("out of range[%d-%d]", 1, math.MaxUint16)
	}

	return nil
}

func checkNonEmpty(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("must not be empty")
	}

	return nil
}

func checkLogLevel(v string) error {
	if !slices.Contains(availableLogLevels, strings.ToLower(v)) {
		return fmt.Errorf("invalid log level %q, want one of %v", v, availableLogLevels)
	}

	return nil
}

func checkIndexKind(v string) error {
	if !slices.Contains(availableIndexKinds, v) {
		return fmt.Errorf("invalid index kind %q, want one of %v", v, availableIndexKinds)
	}

	return nil
}

func checkSortAlgorithm(v string) error {
	_, err := sorting.ParseAlgorithm(v)
	return err
}

// checkDelimiter mirrors the restrictions of encoding/csv on Reader.Comma.
func checkDelimiter(v string) error {
	if utf8.RuneCountInString(v) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", v)
	}

	r, _ := utf8.DecodeRuneInString(v)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("invalid delimiter %q", v)
	}

	return nil
}

func checkColumns(o *ColumnOptions) error {
	if o == nil {
		return nil
	}

	c := o.Columns()
	fields := []struct {
		name string
		pos  int
	}{
		{"id", c.ID},
		{"title", c.Title},
		{"fund", c.Fund},
		{"amount", c.Amount},
	}

	for i, f := range fields {
		for _, prev := range fields[:i] {
			if prev.pos == f.pos {
				return fmt.Errorf("%s and %s share column %d", prev.name, f.name, f.pos)
			}
		}
	}

	return nil
}
