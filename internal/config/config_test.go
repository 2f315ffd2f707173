package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// UNIFIED CONFIG TESTS
// =============================================================================

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ESPBOARDS_OUTPUT", "ESPBOARDS_REGISTRY", "TINYUF2_VERSION", "TINYUF2_URL_TEMPLATE", "ESPBOARDS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "0.16.0", cfg.TinyUF2.Version)
	assert.Equal(t, DefaultURLTemplate, cfg.TinyUF2.URLTemplate)
	assert.Equal(t, "variants", cfg.TinyUF2.VariantsDir)
	assert.Len(t, cfg.TinyUF2.Variants, 14)
	assert.Empty(t, cfg.Output)
	assert.Empty(t, cfg.Registry)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "espboards.yaml")

	cfg := DefaultConfig()
	cfg.Output = "boards.txt"
	cfg.TinyUF2.Version = "0.18.2"
	cfg.TinyUF2.Parallelism = 3
	cfg.TinyUF2.Variants = []Variant{{Name: "adafruit_metro_esp32s3"}}
	cfg.Logging.Categories = map[string]bool{"fetch": false}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "espboards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tinyuf2:\n  version: 0.17.0\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.17.0", cfg.TinyUF2.Version)
	assert.Equal(t, DefaultURLTemplate, cfg.TinyUF2.URLTemplate)
	assert.Len(t, cfg.TinyUF2.Variants, 14)
}

func TestLoad_VariantListReplacesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "espboards.yaml")
	data := "tinyuf2:\n  variants:\n    - name: adafruit_qtpy_esp32s3_nopsram\n      download: adafruit_qtpy_esp32s3\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.TinyUF2.Variants, 1)
	assert.Equal(t, "adafruit_qtpy_esp32s3", cfg.TinyUF2.Variants[0].DownloadName())
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "espboards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tinyuf2: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty version", func(c *Config) { c.TinyUF2.Version = " " }, "version not configured"},
		{"template without version", func(c *Config) { c.TinyUF2.URLTemplate = "https://x/{name}.zip" }, "{version}"},
		{"template without name", func(c *Config) { c.TinyUF2.URLTemplate = "https://x/{version}.zip" }, "{name}"},
		{"negative parallelism", func(c *Config) { c.TinyUF2.Parallelism = -1 }, "parallelism"},
		{"unnamed variant", func(c *Config) { c.TinyUF2.Variants = []Variant{{Download: "x"}} }, "no name"},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }, "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	cfg := DefaultConfig()
	cfg.Logging.Level = "WARN"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Getters(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 60*time.Second, cfg.GetFetchTimeout())
	assert.Equal(t, runtime.NumCPU(), cfg.GetParallelism())

	cfg.TinyUF2.Timeout = "5s"
	cfg.TinyUF2.Parallelism = 2
	assert.Equal(t, 5*time.Second, cfg.GetFetchTimeout())
	assert.Equal(t, 2, cfg.GetParallelism())

	cfg.TinyUF2.Timeout = "soon"
	assert.Equal(t, 60*time.Second, cfg.GetFetchTimeout())
}

func TestVariant_DownloadName(t *testing.T) {
	assert.Equal(t, "adafruit_metro_esp32s3", Variant{Name: "adafruit_metro_esp32s3"}.DownloadName())
	assert.Equal(t, "adafruit_magtag_29gray",
		Variant{Name: "adafruit_magtag29_esp32s2", Download: "adafruit_magtag_29gray"}.DownloadName())
}

func TestSelectVariants(t *testing.T) {
	cfg := DefaultConfig()

	all, unknown := cfg.TinyUF2.SelectVariants(nil)
	assert.Len(t, all, 14)
	assert.Empty(t, unknown)

	got, unknown := cfg.TinyUF2.SelectVariants([]string{"adafruit_metro_esp32s3", "nope", "adafruit_feather_esp32s2"})
	require.Len(t, got, 2)
	// configured order, not request order
	assert.Equal(t, "adafruit_feather_esp32s2", got[0].Name)
	assert.Equal(t, "adafruit_metro_esp32s3", got[1].Name)
	assert.Equal(t, []string{"nope"}, unknown)
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	assert.True(t, lc.IsCategoryEnabled("fetch"))

	lc.Categories = map[string]bool{"fetch": false, "watch": true}
	assert.False(t, lc.IsCategoryEnabled("fetch"))
	assert.True(t, lc.IsCategoryEnabled("watch"))
	assert.True(t, lc.IsCategoryEnabled("registry"))
}
