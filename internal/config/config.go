package config

import (
	"fmt"

	"github.com/gaut2172/bidindex/internal/datastruct/hashtable"
	"github.com/gaut2172/bidindex/internal/ingest"
	"github.com/gaut2172/bidindex/internal/ptr"
	"github.com/gaut2172/bidindex/internal/sorting"
	"github.com/rs/zerolog"
)

type merger[T any] interface {
	Clone() T
	Merge(overrides T) T
}

var _ merger[*Config] = (*Config)(nil)

type Config struct {
	General *GeneralOptions `toml:"general"`
	Index   *IndexOptions   `toml:"index"`
	Source  *SourceOptions  `toml:"source"`
	Sort    *SortOptions    `toml:"sort"`
}

func (c *Config) UnmarshalTOML(data any) (err error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("non-table type config")
	}

	c.General = findStructFrom[GeneralOptions](m, "general", &err)
	c.Index = findStructFrom[IndexOptions](m, "index", &err)
	c.Source = findStructFrom[SourceOptions](m, "source", &err)
	c.Sort = findStructFrom[SortOptions](m, "sort", &err)

	return err
}

func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	return &Config{
		General: c.General.Clone(),
		Index:   c.Index.Clone(),
		Source:  c.Source.Clone(),
		Sort:    c.Sort.Clone(),
	}
}

func (origin *Config) Merge(overrides *Config) *Config {
	if overrides == nil {
		return origin.Clone()
	}

	if origin == nil {
		return overrides.Clone()
	}

	return &Config{
		General: origin.General.Merge(overrides.General),
		Index:   origin.Index.Merge(overrides.Index),
		Source:  origin.Source.Merge(overrides.Source),
		Sort:    origin.Sort.Merge(overrides.Sort),
	}
}

// Validate checks the rules that span more than one field. Single fields are
// checked while parsing.
func (c *Config) Validate() error {
	if c.Source != nil {
		if err := checkColumns(c.Source.Columns); err != nil {
			return fmt.Errorf("source.columns: %w", err)
		}
	}

	return nil
}

func NewConfig() *Config {
	return &Config{
		General: &GeneralOptions{
			LogLevel: ptr.FromValue(zerolog.InfoLevel),
			Silent:   ptr.FromValue(false),
		},
		Index: &IndexOptions{
			Kind:     ptr.FromValue(IndexKindOrdered),
			Capacity: ptr.FromValue(uint16(hashtable.DefaultCapacity)),
		},
		Source: &SourceOptions{
			Path:      ptr.FromValue(DefaultSourcePath),
			Key:       ptr.FromValue(DefaultSearchKey),
			Delimiter: ptr.FromValue(','),
			Columns:   columnOptionsOf(ingest.DefaultColumns),
		},
		Sort: &SortOptions{
			Algorithm: ptr.FromValue(sorting.Quick),
		},
	}
}
