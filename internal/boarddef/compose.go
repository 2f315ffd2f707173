package boarddef

import (
	"espboards/internal/boarderr"
	"espboards/internal/chip"
)

type emitter func(chip.Profile, Spec) []Line

// emitters run in this order for every board. The partition menu sits
// between psram and cpu frequency and is the only one that can fail.
var (
	leadingEmitters = []emitter{
		headerLines,
		uploadLines,
		buildLines,
		coreMenuLines,
		usbMenuLines,
		psramMenuLines,
	}
	trailingEmitters = []emitter{
		cpuFreqMenuLines,
		flashMenuLines,
		uploadSpeedMenuLines,
		debugMenuLines,
		eraseMenuLines,
		zigbeeMenuLines,
	}
)

// Compose expands one board into its ordered lines. It fails only with a
// *boarderr.ConfigError for an unknown chip family or flash size, in which
// case no lines are returned.
func Compose(s Spec) ([]Line, error) {
	p, err := chip.Lookup(s.Chip)
	if err != nil {
		return nil, boarderr.WithBoard(err, s.Name)
	}

	var lines []Line
	for _, emit := range leadingEmitters {
		lines = append(lines, emit(p, s)...)
	}
	partitions, err := partitionMenuLines(p, s)
	if err != nil {
		return nil, err
	}
	lines = append(lines, partitions...)
	for _, emit := range trailingEmitters {
		lines = append(lines, emit(p, s)...)
	}
	return lines, nil
}

// ComposeBoard is Compose with the board parameters spelled out.
func ComposeBoard(chipFamily, name, variant, boardMacro string, flashMB, psramMB int, psramType string,
	noOTAFirst bool, vendor, product, usbVID string, usbPIDs []string) ([]Line, error) {
	return Compose(Spec{
		Chip:       chipFamily,
		Name:       name,
		Variant:    variant,
		BoardMacro: boardMacro,
		FlashMB:    flashMB,
		PSRAMMB:    psramMB,
		PSRAMType:  ParsePSRAMType(psramType),
		NoOTAFirst: noOTAFirst,
		Vendor:     vendor,
		Product:    product,
		USBVID:     usbVID,
		USBPIDs:    usbPIDs,
	})
}
