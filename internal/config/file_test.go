package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gaut2172/bidindex/internal/sorting"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestFromFile(t *testing.T) {
	tcs := []struct {
		name    string
		file    string
		content string
		wantErr bool
		assert  func(t *testing.T, cfg *Config)
	}{
		{
			name: "toml",
			file: "bidindex.toml",
			content: `
[general]
log-level = "warn"
silent = true

[index]
kind = "hashed"
capacity = 31

[source]
path = "/data/bids.csv"
key = "98288"
delimiter = ";"

[source.columns]
id = 0
title = 1

[sort]
algorithm = "selection"
`,
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, zerolog.WarnLevel, *cfg.General.LogLevel)
				assert.True(t, *cfg.General.Silent)
				assert.Equal(t, IndexKindHashed, *cfg.Index.Kind)
				assert.Equal(t, uint16(31), *cfg.Index.Capacity)
				assert.Equal(t, "/data/bids.csv", *cfg.Source.Path)
				assert.Equal(t, "98288", *cfg.Source.Key)
				assert.Equal(t, ';', *cfg.Source.Delimiter)
				assert.Equal(t, uint8(0), *cfg.Source.Columns.ID)
				assert.Equal(t, uint8(1), *cfg.Source.Columns.Title)
				assert.Nil(t, cfg.Source.Columns.Fund)
				assert.Equal(t, sorting.Selection, *cfg.Sort.Algorithm)
			},
		},
		{
			name: "yaml",
			file: "bidindex.yaml",
			content: `
general:
  log-level: error
index:
  kind: ordered
  capacity: 7
source:
  columns:
    amount: 3
`,
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, zerolog.ErrorLevel, *cfg.General.LogLevel)
				assert.Equal(t, IndexKindOrdered, *cfg.Index.Kind)
				assert.Equal(t, uint16(7), *cfg.Index.Capacity)
				assert.Nil(t, cfg.Source.Path)
				assert.Equal(t, uint8(3), *cfg.Source.Columns.Amount)
				assert.Nil(t, cfg.Sort)
			},
		},
		{
			name:    "empty yaml",
			file:    "bidindex.yml",
			content: "",
			assert: func(t *testing.T, cfg *Config) {
				assert.Nil(t, cfg.General)
				assert.Nil(t, cfg.Index)
			},
		},
		{
			name:    "toml syntax error",
			file:    "bidindex.toml",
			content: "[index\nkind = 1",
			wantErr: true,
		},
		{
			name:    "toml capacity out of range",
			file:    "bidindex.toml",
			content: "[index]\ncapacity = 70000\n",
			wantErr: true,
		},
		{
			name:    "yaml wrong type",
			file:    "bidindex.yaml",
			content: "general:\n  silent: \"yes\"\n",
			wantErr: true,
		},
		{
			name:    "multi character delimiter",
			file:    "bidindex.toml",
			content: "[source]\ndelimiter = \";;\"\n",
			wantErr: true,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := fromFile(writeFile(t, tc.file, tc.content))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.assert(t, cfg)
		})
	}
}

func TestSearchConfigFile(t *testing.T) {
	existing := writeFile(t, "bidindex.toml", "")
	missing := filepath.Join(t.TempDir(), "missing.toml")

	tcs := []struct {
		name    string
		custom  string
		lookup  []string
		want    string
		wantErr bool
	}{
		{
			name:   "custom path exists",
			custom: existing,
			want:   existing,
		},
		{
			name:    "custom path missing",
			custom:  missing,
			wantErr: true,
		},
		{
			name:   "first existing lookup path",
			lookup: []string{"", missing, existing},
			want:   existing,
		},
		{
			name:   "nothing found",
			lookup: []string{missing},
			want:   "",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := searchConfigFile(tc.custom, tc.lookup)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
