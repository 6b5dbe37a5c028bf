package config

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gaut2172/bidindex/internal/ingest"
	"github.com/gaut2172/bidindex/internal/ptr"
	"github.com/gaut2172/bidindex/internal/sorting"
	"github.com/rs/zerolog"
)

const (
	DefaultSourcePath = "eBid_Monthly_Sales_Dec_2016.csv"
	DefaultSearchKey  = "98109"
)

// ┌─────────────────┐
// │ GENERAL OPTIONS │
// └─────────────────┘
var _ merger[*GeneralOptions] = (*GeneralOptions)(nil)

var availableLogLevels = []string{"trace", "debug", "info", "warn", "error"}

type GeneralOptions struct {
	LogLevel *zerolog.Level `toml:"log-level"`
	Silent   *bool          `toml:"silent"`
}

func (o *GeneralOptions) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("'general' must be table type")
	}

	o.Silent = findFrom(m, "silent", parseBoolFn(), &err)
	if p := findFrom(m, "log-level", parseStringFn(checkLogLevel), &err); isOk(p, err) {
		o.LogLevel = ptr.FromValue(MustParseLogLevel(*p))
	}

	return err
}

func (o *GeneralOptions) Clone() *GeneralOptions {
	if o == nil {
		return nil
	}

	return &GeneralOptions{
		LogLevel: ptr.Clone(o.LogLevel),
		Silent:   ptr.Clone(o.Silent),
	}
}

func (origin *GeneralOptions) Merge(overrides *GeneralOptions) *GeneralOptions {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &GeneralOptions{
		LogLevel: ptr.CloneOr(overrides.LogLevel, origin.LogLevel),
		Silent:   ptr.CloneOr(overrides.Silent, origin.Silent),
	}
}

// ┌───────────────┐
// │ INDEX OPTIONS │
// └───────────────┘
var _ merger[*IndexOptions] = (*IndexOptions)(nil)

type IndexKindType int

var availableIndexKinds = []string{"ordered", "hashed"}

const (
	IndexKindOrdered IndexKindType = iota
	IndexKindHashed
)

func (k IndexKindType) String() string {
	return availableIndexKinds[k]
}

type IndexOptions struct {
	Kind     *IndexKindType `toml:"kind"`
	Capacity *uint16        `toml:"capacity"`
}

func (o *IndexOptions) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("'index' must be table type")
	}

	if p := findFrom(m, "kind", parseStringFn(checkIndexKind), &err); isOk(p, err) {
		o.Kind = ptr.FromValue(MustParseIndexKind(*p))
	}

	o.Capacity = findFrom(m, "capacity", parseIntFn[uint16](checkUint16NonZero), &err)

	return err
}

func (o *IndexOptions) Clone() *IndexOptions {
	if o == nil {
		return nil
	}

	return &IndexOptions{
		Kind:     ptr.Clone(o.Kind),
		Capacity: ptr.Clone(o.Capacity),
	}
}

func (origin *IndexOptions) Merge(overrides *IndexOptions) *IndexOptions {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &IndexOptions{
		Kind:     ptr.CloneOr(overrides.Kind, origin.Kind),
		Capacity: ptr.CloneOr(overrides.Capacity, origin.Capacity),
	}
}

// ┌────────────────┐
// │ SOURCE OPTIONS │
// └────────────────┘
var _ merger[*SourceOptions] = (*SourceOptions)(nil)

type SourceOptions struct {
	Path      *string        `toml:"path"`
	Key       *string        `toml:"key"`
	Delimiter *rune          `toml:"delimiter"`
	Columns   *ColumnOptions `toml:"columns"`
}

func (o *SourceOptions) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("'source' must be table type")
	}

	o.Path = findFrom(m, "path", parseStringFn(checkNonEmpty), &err)
	o.Key = findFrom(m, "key", parseStringFn(checkNonEmpty), &err)
	if p := findFrom(m, "delimiter", parseStringFn(checkDelimiter), &err); isOk(p, err) {
		o.Delimiter = ptr.FromValue(MustParseDelimiter(*p))
	}

	o.Columns = findStructFrom[ColumnOptions](m, "columns", &err)

	return err
}

func (o *SourceOptions) Clone() *SourceOptions {
	if o == nil {
		return nil
	}

	return &SourceOptions{
		Path:      ptr.Clone(o.Path),
		Key:       ptr.Clone(o.Key),
		Delimiter: ptr.Clone(o.Delimiter),
		Columns:   o.Columns.Clone(),
	}
}

func (origin *SourceOptions) Merge(overrides *SourceOptions) *SourceOptions {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &SourceOptions{
		Path:      ptr.CloneOr(overrides.Path, origin.Path),
		Key:       ptr.CloneOr(overrides.Key, origin.Key),
		Delimiter: ptr.CloneOr(overrides.Delimiter, origin.Delimiter),
		Columns:   origin.Columns.Merge(overrides.Columns),
	}
}

// ┌────────────────┐
// │ COLUMN OPTIONS │
// └────────────────┘
var _ merger[*ColumnOptions] = (*ColumnOptions)(nil)

// ColumnOptions holds zero-based field positions in the source rows.
type ColumnOptions struct {
	ID     *uint8 `toml:"id"`
	Title  *uint8 `toml:"title"`
	Fund   *uint8 `toml:"fund"`
	Amount *uint8 `toml:"amount"`
}

func columnOptionsOf(c ingest.Columns) *ColumnOptions {
	return &ColumnOptions{
		ID:     ptr.FromValue(uint8(c.ID)),
		Title:  ptr.FromValue(uint8(c.Title)),
		Fund:   ptr.FromValue(uint8(c.Fund)),
		Amount: ptr.FromValue(uint8(c.Amount)),
	}
}

func (o *ColumnOptions) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("'columns' must be table type")
	}

	o.ID = findFrom(m, "id", parseIntFn[uint8](checkUint8), &err)
	o.Title = findFrom(m, "title", parseIntFn[uint8](checkUint8), &err)
	o.Fund = findFrom(m, "fund", parseIntFn[uint8](checkUint8), &err)
	o.Amount = findFrom(m, "amount", parseIntFn[uint8](checkUint8), &err)

	return err
}

// Columns resolves the options against the eBid defaults.
func (o *ColumnOptions) Columns() ingest.Columns {
	if o == nil {
		return ingest.DefaultColumns
	}

	d := ingest.DefaultColumns
	return ingest.Columns{
		ID:     int(ptr.FromPtrOr(o.ID, uint8(d.ID))),
		Title:  int(ptr.FromPtrOr(o.Title, uint8(d.Title))),
		Fund:   int(ptr.FromPtrOr(o.Fund, uint8(d.Fund))),
		Amount: int(ptr.FromPtrOr(o.Amount, uint8(d.Amount))),
	}
}

func (o *ColumnOptions) Clone() *ColumnOptions {
	if o == nil {
		return nil
	}

	return &ColumnOptions{
		ID:     ptr.Clone(o.ID),
		Title:  ptr.Clone(o.Title),
		Fund:   ptr.Clone(o.Fund),
		Amount: ptr.Clone(o.Amount),
	}
}

func (origin *ColumnOptions) Merge(overrides *ColumnOptions) *ColumnOptions {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &ColumnOptions{
		ID:     ptr.CloneOr(overrides.ID, origin.ID),
		Title:  ptr.CloneOr(overrides.Title, origin.Title),
		Fund:   ptr.CloneOr(overrides.Fund, origin.Fund),
		Amount: ptr.CloneOr(overrides.Amount, origin.Amount),
	}
}

// ┌──────────────┐
// │ SORT OPTIONS │
// └──────────────┘
var _ merger[*SortOptions] = (*SortOptions)(nil)

type SortOptions struct {
	Algorithm *sorting.Algorithm `toml:"algorithm"`
}

func (o *SortOptions) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("'sort' must be table type")
	}

	if p := findFrom(m, "algorithm", parseStringFn(checkSortAlgorithm), &err); isOk(p, err) {
		o.Algorithm = ptr.FromValue(MustParseSortAlgorithm(*p))
	}

	return err
}

func (o *SortOptions) Clone() *SortOptions {
	if o == nil {
		return nil
	}

	return &SortOptions{Algorithm: ptr.Clone(o.Algorithm)}
}

func (origin *SortOptions) Merge(overrides *SortOptions) *SortOptions {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &SortOptions{
		Algorithm: ptr.CloneOr(overrides.Algorithm, origin.Algorithm),
	}
}

// ┌─────────┐
// │ PARSERS │
// └─────────┘
func MustParseLogLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		panic(fmt.Sprintf("cannot parse %q to zerolog.Level", s))
	}

	return level
}

func MustParseIndexKind(s string) IndexKindType {
	i := slices.Index(availableIndexKinds, s)
	if i < 0 {
		panic(fmt.Sprintf("cannot parse %q to IndexKindType", s))
	}

	return IndexKindType(i)
}

func MustParseSortAlgorithm(s string) sorting.Algorithm {
	algo, err := sorting.ParseAlgorithm(s)
	if err != nil {
		panic(err)
	}

	return algo
}

func MustParseDelimiter(s string) rune {
	if err := checkDelimiter(s); err != nil {
		panic(fmt.Sprintf("cannot parse %q to delimiter: %s", s, err))
	}

	r, _ := utf8.DecodeRuneInString(s)
	return r
}
