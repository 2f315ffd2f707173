// Package boarddef turns a chip profile plus per-board parameters into the
// ordered key=value lines of a boards file.
//
// Each emitter is a pure function of (chip.Profile, Spec) returning its slice
// of lines; Compose concatenates them in a fixed order. Nothing here holds
// state between boards.
package boarddef

import "strings"

// PSRAMType is the PSRAM wiring as named by the build tool.
type PSRAMType string

const (
	PSRAMQSPI PSRAMType = "qspi"
	PSRAMOPI  PSRAMType = "opi"
)

// ParsePSRAMType accepts "opi"/"octal" for octal wiring; anything else,
// including the empty string, is quad.
func ParsePSRAMType(s string) PSRAMType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opi", "octal":
		return PSRAMOPI
	default:
		return PSRAMQSPI
	}
}

// Spec describes one physical board product.
type Spec struct {
	Chip       string // chip family, looked up in chip.Lookup
	Name       string // internal name, prefix of every property
	Variant    string // defaults to Name
	BoardMacro string
	FlashMB    int // 4, 8 or 16
	PSRAMMB    int // 0 = no PSRAM
	PSRAMType  PSRAMType
	NoOTAFirst bool // list the TinyUF2 no-OTA scheme before the OTA one

	Vendor  string
	Product string
	USBVID  string
	USBPIDs []string // none, one, or {normal, download, double-reset}
}

// VariantName returns the variant directory name.
func (s Spec) VariantName() string {
	if s.Variant == "" {
		return s.Name
	}
	return s.Variant
}

// DisplayName is "<vendor> <product>".
func (s Spec) DisplayName() string {
	return s.Vendor + " " + s.Product
}

func (s Spec) octalPSRAM() bool {
	return ParsePSRAMType(string(s.PSRAMType)) == PSRAMOPI
}
