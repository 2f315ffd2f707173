package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"espboards/internal/logging"
	"espboards/internal/registry"

	"github.com/spf13/cobra"
)

var (
	outputPath string
	checkPath  string
	watchMode  bool
)

// generateCmd writes the boards file
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write board definitions for every board in the registry",
	Long: `Composes every registry board in order and writes the result to stdout
or to --output.

Examples:
  espboards generate -o boards.txt
  espboards generate --check boards.txt       # fail if boards.txt is stale
  espboards generate --registry my.yaml -o boards.txt --watch`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout, or config output)")
	generateCmd.Flags().StringVar(&checkPath, "check", "", "Compare against an existing file instead of writing")
	generateCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Regenerate whenever the registry file changes")
	generateCmd.MarkFlagsMutuallyExclusive("check", "watch")
}

// effectiveRegistry prefers the flag over the config file.
func effectiveRegistry() string {
	if registryPath != "" {
		return registryPath
	}
	if cfg != nil {
		return cfg.Registry
	}
	return ""
}

func effectiveOutput() string {
	if outputPath != "" {
		return outputPath
	}
	if cfg != nil {
		return cfg.Output
	}
	return ""
}

func loadRegistry() (*registry.Registry, error) {
	reg, err := registry.LoadOrDefault(effectiveRegistry())
	if err != nil {
		return nil, err
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}
	return reg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	if checkPath != "" {
		return checkBoards(cmd.OutOrStdout(), reg, checkPath)
	}

	if err := writeBoards(cmd.OutOrStdout(), reg, effectiveOutput()); err != nil {
		return err
	}

	if !watchMode {
		return nil
	}
	path := effectiveRegistry()
	if path == "" {
		return fmt.Errorf("--watch needs a registry file (--registry or config registry)")
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchRegistry(ctx, cmd.OutOrStdout(), path, effectiveOutput())
}

// writeBoards streams to stdout when path is empty. Files are only replaced
// once every board has composed.
func writeBoards(stdout io.Writer, reg *registry.Registry, path string) error {
	if path == "" {
		return reg.Generate(stdout)
	}

	var buf bytes.Buffer
	if err := reg.Generate(&buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logging.Generate("wrote %d boards to %s", len(reg.Boards), path)
	return nil
}

// checkBoards regenerates in memory and fails when path differs.
func checkBoards(out io.Writer, reg *registry.Registry, path string) error {
	want, err := reg.Render()
	if err != nil {
		return err
	}
	have, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if line, differs := firstDifference(string(have), want); differs {
		return fmt.Errorf("%s is out of date: first difference at line %d", path, line)
	}
	fmt.Fprintf(out, "%s is up to date (%d boards)\n", path, len(reg.Boards))
	return nil
}

// firstDifference returns the 1-based line where a and b first differ.
func firstDifference(a, b string) (int, bool) {
	sa := bufio.NewScanner(strings.NewReader(a))
	sb := bufio.NewScanner(strings.NewReader(b))
	line := 0
	for {
		line++
		okA, okB := sa.Scan(), sb.Scan()
		if !okA && !okB {
			if a == b {
				return 0, false
			}
			// same lines, different trailing newline
			return line - 1, true
		}
		if okA != okB || sa.Text() != sb.Text() {
			return line, true
		}
	}
}

func watchRegistry(ctx context.Context, out io.Writer, path, output string) error {
	w, err := registry.NewWatcher(path, func(_ context.Context, reg *registry.Registry) {
		if err := writeBoards(out, reg, output); err != nil {
			logging.WatchError("regenerate failed: %v", err)
			return
		}
		logging.Watch("regenerated %d boards", len(reg.Boards))
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintf(os.Stderr, "watching %s (Ctrl+C to stop)\n", path)
	<-ctx.Done()
	return nil
}
