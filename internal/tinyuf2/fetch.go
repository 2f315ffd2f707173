// Package tinyuf2 downloads TinyUF2 bootloader releases and installs their
// binaries and partition tables into per-variant directories.
//
// Each variant is an independent task. Tasks run on a bounded worker pool;
// one variant failing never stops the others, and every failure is reported
// in the aggregated error.
package tinyuf2

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"espboards/internal/config"
	"espboards/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetcher downloads and unpacks TinyUF2 release archives.
type Fetcher struct {
	client      *http.Client
	version     string
	urlTemplate string
	variantsDir string
	parallelism int
	timeout     time.Duration
}

// Result is the outcome of one variant task.
type Result struct {
	Variant string
	URL     string
	Files   []string // installed paths
	Err     error
}

// NewFetcher builds a fetcher from the tinyuf2 config section. A nil client
// uses http.DefaultClient.
func NewFetcher(cfg config.TinyUF2Config, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 60 * time.Second
	}
	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	urlTemplate := cfg.URLTemplate
	if urlTemplate == "" {
		urlTemplate = config.DefaultURLTemplate
	}
	variantsDir := cfg.VariantsDir
	if variantsDir == "" {
		variantsDir = "variants"
	}
	return &Fetcher{
		client:      client,
		version:     cfg.Version,
		urlTemplate: urlTemplate,
		variantsDir: variantsDir,
		parallelism: parallelism,
		timeout:     timeout,
	}
}

// AssetName is the release file name for a download name.
func (f *Fetcher) AssetName(download string) string {
	return fmt.Sprintf("tinyuf2-%s-%s.zip", download, f.version)
}

// URL expands the URL template for a download name.
func (f *Fetcher) URL(download string) string {
	return strings.NewReplacer("{version}", f.version, "{name}", download).Replace(f.urlTemplate)
}

// VariantDir is where a variant's files are installed.
func (f *Fetcher) VariantDir(variant string) string {
	return filepath.Join(f.variantsDir, variant)
}

// FetchAll runs one task per variant, at most parallelism at a time. Results
// come back in input order. The error aggregates every failed variant.
func (f *Fetcher) FetchAll(ctx context.Context, variants []config.Variant) ([]Result, error) {
	runID := uuid.NewString()
	log := logging.Get(logging.CategoryFetch).With(zap.String("run", runID))
	log.Info("fetching TinyUF2 %s for %d variants (%d workers)", f.version, len(variants), f.parallelism)

	results := make([]Result, len(variants))
	var (
		mu   sync.Mutex
		errs error
	)

	var g errgroup.Group
	g.SetLimit(f.parallelism)
	for i, v := range variants {
		i, v := i, v
		g.Go(func() error {
			res := f.Fetch(ctx, v)
			results[i] = res
			if res.Err != nil {
				log.Error("%v", res.Err)
				mu.Lock()
				errs = multierr.Append(errs, res.Err)
				mu.Unlock()
			} else {
				log.Info("installed %d files for %s", len(res.Files), v.Name)
			}
			// siblings keep running
			return nil
		})
	}
	_ = g.Wait()

	log.Info("run finished: %d ok, %d failed", len(variants)-len(multierr.Errors(errs)), len(multierr.Errors(errs)))
	return results, errs
}

// Fetch downloads one variant's archive, installs its members and removes
// the archive.
func (f *Fetcher) Fetch(ctx context.Context, v config.Variant) Result {
	download := v.DownloadName()
	res := Result{Variant: v.Name, URL: f.URL(download)}
	logging.FetchDebug("downloading TinyUF2 for %s from %s", v.Name, res.URL)

	if err := os.MkdirAll(f.variantsDir, 0755); err != nil {
		res.Err = fmt.Errorf("%s: failed to create variants directory: %w", v.Name, err)
		return res
	}
	asset := f.AssetName(download)
	archive, err := f.download(ctx, v.Name, res.URL, asset)
	if err != nil {
		res.Err = err
		return res
	}
	defer os.Remove(archive)

	res.Files, res.Err = extract(v.Name, asset, archive, f.VariantDir(v.Name))
	return res
}

// download saves the archive next to the variant directories and returns
// its path.
func (f *Fetcher) download(ctx context.Context, variant, url, asset string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &NetworkError{Variant: variant, URL: url, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &NetworkError{Variant: variant, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &NetworkError{Variant: variant, URL: url, StatusCode: resp.StatusCode}
	}

	tmp, err := os.CreateTemp(f.variantsDir, asset+".*")
	if err != nil {
		return "", fmt.Errorf("%s: failed to create archive file: %w", variant, err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", &NetworkError{Variant: variant, URL: url, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%s: failed to write archive: %w", variant, err)
	}
	return tmp.Name(), nil
}
