package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"espboards/internal/config"
	"espboards/internal/tinyuf2"

	"github.com/spf13/cobra"
)

var (
	fetchVariants []string
	fetchVersion  string
	fetchDir      string
	fetchJobs     int
)

// fetchCmd downloads TinyUF2 bootloaders into the variant directories
var fetchCmd = &cobra.Command{
	Use:   "fetch-tinyuf2",
	Short: "Download TinyUF2 bootloaders into the variant directories",
	Long: `Downloads the TinyUF2 release archive for each configured variant and
installs bootloader-tinyuf2.bin, tinyuf2.bin and the partition tables into
<variants_dir>/<variant>/. Existing files are overwritten.

A failed variant does not stop the others; the command exits non-zero if
any variant failed.

Examples:
  espboards fetch-tinyuf2
  espboards fetch-tinyuf2 --variant adafruit_metro_esp32s3 --tinyuf2-version 0.18.0`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringSliceVar(&fetchVariants, "variant", nil, "Only fetch these variants (repeatable)")
	fetchCmd.Flags().StringVar(&fetchVersion, "tinyuf2-version", "", "TinyUF2 release (default: config tinyuf2.version)")
	fetchCmd.Flags().StringVar(&fetchDir, "dir", "", "Variants directory (default: config tinyuf2.variants_dir)")
	fetchCmd.Flags().IntVarP(&fetchJobs, "jobs", "j", 0, "Parallel downloads (default: one per CPU)")
}

// fetchSettings applies the command-line overrides to the config section.
func fetchSettings(base config.TinyUF2Config) config.TinyUF2Config {
	s := base
	if fetchVersion != "" {
		s.Version = fetchVersion
	}
	if fetchDir != "" {
		s.VariantsDir = fetchDir
	}
	if fetchJobs > 0 {
		s.Parallelism = fetchJobs
	}
	return s
}

func runFetch(cmd *cobra.Command, args []string) error {
	base := config.DefaultConfig().TinyUF2
	if cfg != nil {
		base = cfg.TinyUF2
	}
	settings := fetchSettings(base)

	variants, unknown := settings.SelectVariants(fetchVariants)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown variant(s): %s", strings.Join(unknown, ", "))
	}
	if len(variants) == 0 {
		return fmt.Errorf("no variants configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := tinyuf2.NewFetcher(settings, &http.Client{})
	fmt.Fprintf(cmd.OutOrStdout(), "TinyUF2 %s: %d variants\n", settings.Version, len(variants))

	results, err := fetcher.FetchAll(ctx, variants)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  FAIL %s: %v\n", r.Variant, r.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  ok   %s (%d files)\n", r.Variant, len(r.Files))
	}
	if err != nil {
		return fmt.Errorf("tinyuf2 fetch failed for %d of %d variants", countFailed(results), len(results))
	}
	return nil
}

func countFailed(results []tinyuf2.Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
