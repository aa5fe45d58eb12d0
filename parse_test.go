package emdiff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine(t *testing.T) {
	tt := []struct {
		name   string
		args   []string
		expect func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			args: []string{"a.json", "b.json"},
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, TestPermutation, cfg.Test)
				assert.Equal(t, RepresentationControlFlow, cfg.Representation)
				assert.Equal(t, 1000, cfg.DistributionSize)
				assert.Nil(t, cfg.Seed)
			},
		},
		{
			name: "bootstrap with seed",
			args: []string{"-t", "bootstrap", "--seed", "42", "--resample-size", "100", "a.json", "b.json"},
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, TestBootstrap, cfg.Test)
				require.NotNil(t, cfg.Seed)
				assert.Equal(t, uint64(42), *cfg.Seed)
				assert.Equal(t, 100, cfg.ResampleSize)
			},
		},
		{
			name: "timed representation with percentile binner",
			args: []string{"-r", "timed", "--binner", "percentile", "--percentile", "10", "a.json", "b.json"},
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, RepresentationTimed, cfg.Representation)
				assert.Equal(t, BinnerPercentile, cfg.Binner)
				assert.Equal(t, 10.0, cfg.Percentile)
			},
		},
		{
			name: "output and quiet",
			args: []string{"-o", "out.json.gz", "-q", "a.json", "b.json"},
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "out.json.gz", cfg.Out)
				assert.True(t, cfg.Quiet)
			},
		},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			args, opts, err := parse(tc.args, createFlagSet())
			require.NoError(t, err)
			assert.Equal(t, []string{"a.json", "b.json"}, args)

			cfg, errs := NewConfig(opts...)
			require.Empty(t, errs)
			tc.expect(t, cfg)
		})
	}
}

func TestParseInvalidValues(t *testing.T) {
	tt := []struct {
		name string
		args []string
	}{
		{name: "unknown test", args: []string{"-t", "chi-squared", "a.json", "b.json"}},
		{name: "unknown representation", args: []string{"-r", "data-flow", "a.json", "b.json"}},
		{name: "bad seed", args: []string{"--seed", "not-a-number", "a.json", "b.json"}},
		{name: "percentile out of range", args: []string{"--percentile", "150", "a.json", "b.json"}},
		{name: "zero distribution size", args: []string{"--distribution-size", "0", "a.json", "b.json"}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, opts, err := parse(tc.args, createFlagSet())
			if err != nil {
				return
			}
			_, errs := NewConfig(opts...)
			assert.NotEmpty(t, errs)
		})
	}
}

func TestParseFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"test: bootstrap\ndistribution-size: 500\npercentile: 12.5\nquiet: true\n"), 0o644))

	args, opts, err := parse([]string{"-c", path, "a.json", "b.json"}, createFlagSet())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, args)

	cfg, errs := NewConfig(opts...)
	require.Empty(t, errs)
	assert.Equal(t, TestBootstrap, cfg.Test)
	assert.Equal(t, 500, cfg.DistributionSize)
	assert.Equal(t, 12.5, cfg.Percentile)
	assert.True(t, cfg.Quiet)
}

func TestParseFromYAMLFileUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("no-such-option: true\n"), 0o644))

	_, _, err := parse([]string{"-c", path, "a.json", "b.json"}, createFlagSet())
	assert.Error(t, err)
}

func TestNewValidatesArguments(t *testing.T) {
	_, errs := New([]string{"only-one.json"})
	require.Len(t, errs, 1)
	var usage *UsageError
	assert.ErrorAs(t, errs[0], &usage)
}
