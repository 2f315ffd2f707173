// Package registry holds the ordered list of boards that make up a boards
// file and writes their definitions in that order.
package registry

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"espboards/internal/boarddef"
	"espboards/internal/chip"
	"espboards/internal/logging"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed boards.yaml
var defaultBoards []byte

// Registry is an ordered sequence of boards.
type Registry struct {
	Version int     `yaml:"version"`
	Boards  []Board `yaml:"boards"`
}

// Board is one registry entry as written in YAML.
type Board struct {
	Name       string   `yaml:"name"`
	Chip       string   `yaml:"chip"`
	Variant    string   `yaml:"variant,omitempty"`
	BoardMacro string   `yaml:"board_macro"`
	FlashMB    int      `yaml:"flash_mb"`
	PSRAMMB    int      `yaml:"psram_mb,omitempty"`
	PSRAMType  string   `yaml:"psram_type,omitempty"` // opi/octal or qspi/quad
	NoOTAFirst bool     `yaml:"no_ota_first,omitempty"`
	Vendor     string   `yaml:"vendor"`
	Product    string   `yaml:"product"`
	USBVID     string   `yaml:"usb_vid,omitempty"`
	USBPIDs    []string `yaml:"usb_pids,omitempty"`
}

// Spec converts the entry to the composer's input.
func (b Board) Spec() boarddef.Spec {
	return boarddef.Spec{
		Chip:       b.Chip,
		Name:       b.Name,
		Variant:    b.Variant,
		BoardMacro: b.BoardMacro,
		FlashMB:    b.FlashMB,
		PSRAMMB:    b.PSRAMMB,
		PSRAMType:  boarddef.ParsePSRAMType(b.PSRAMType),
		NoOTAFirst: b.NoOTAFirst,
		Vendor:     b.Vendor,
		Product:    b.Product,
		USBVID:     b.USBVID,
		USBPIDs:    b.USBPIDs,
	}
}

// Default returns the built-in Adafruit board registry.
func Default() (*Registry, error) {
	return Parse(defaultBoards)
}

// Load reads a registry YAML file from disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logging.Registry("loaded %d boards from %s", len(r.Boards), path)
	return r, nil
}

// LoadOrDefault loads path, or the built-in registry when path is empty.
func LoadOrDefault(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes registry YAML.
func Parse(data []byte) (*Registry, error) {
	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse registry YAML: %w", err)
	}
	return &r, nil
}

// Validate checks every board against the chip table and the flash-size
// catalog, and rejects empty or duplicate names. All problems are returned
// together.
func (r *Registry) Validate() error {
	var errs error
	seen := make(map[string]int, len(r.Boards))
	for i, b := range r.Boards {
		if strings.TrimSpace(b.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("board %d: empty name", i))
			continue
		}
		if first, dup := seen[b.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("board %d: duplicate name %q (first at %d)", i, b.Name, first))
		} else {
			seen[b.Name] = i
		}
		if _, err := chip.Lookup(b.Chip); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("board %s: %w", b.Name, err))
		}
		if !slices.Contains(boarddef.SupportedFlashSizes(), b.FlashMB) {
			errs = multierr.Append(errs, fmt.Errorf("board %s: flash size %dMB not one of %v",
				b.Name, b.FlashMB, boarddef.SupportedFlashSizes()))
		}
	}
	if errs != nil {
		logging.RegistryWarn("registry has %d problems", len(multierr.Errors(errs)))
	}
	return errs
}

// Find returns the board with the given internal name.
func (r *Registry) Find(name string) (Board, bool) {
	for _, b := range r.Boards {
		if b.Name == name {
			return b, true
		}
	}
	return Board{}, false
}

// Names returns the internal board names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Boards))
	for i, b := range r.Boards {
		names[i] = b.Name
	}
	return names
}

// Generate composes every board in order and writes it to w. A board that
// fails to compose aborts the run before any of its lines are written.
func (r *Registry) Generate(w io.Writer) error {
	for _, b := range r.Boards {
		lines, err := boarddef.Compose(b.Spec())
		if err != nil {
			logging.GenerateError("aborting at %s: %v", b.Name, err)
			return err
		}
		if err := boarddef.Write(w, lines); err != nil {
			return fmt.Errorf("failed to write board %s: %w", b.Name, err)
		}
		logging.GenerateDebug("wrote %s (%d lines)", b.Name, len(lines))
	}
	logging.Generate("generated %d boards", len(r.Boards))
	return nil
}

// Render returns the whole boards file as a string.
func (r *Registry) Render() (string, error) {
	var sb strings.Builder
	if err := r.Generate(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
