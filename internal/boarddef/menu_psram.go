package boarddef

import "espboards/internal/chip"

const (
	psramDefine   = "-DBOARD_HAS_PSRAM"
	psramCacheFix = " -mfix-esp32-psram-cache-issue -mfix-esp32-psram-cache-strategy=memw"
)

// psramMenuLines is a no-op without PSRAM. Octal-capable chips get OPI
// options; when the board is wired quad, all three of enabled/disabled/opi
// are listed together.
func psramMenuLines(p chip.Profile, s Spec) []Line {
	if s.PSRAMMB <= 0 {
		return nil
	}

	enabled := psramDefine
	if p.PSRAMCacheFix {
		enabled += psramCacheFix
	}

	b := newBlock(s.Name)
	m := b.menu("PSRAM")
	switch {
	case p.OctalPSRAM() && s.octalPSRAM():
		m.option("opi", "OPI PSRAM")
		m.set("opi", "build.defines", psramDefine)
		m.set("opi", "build.psram_type", string(PSRAMOPI))
		m.option("disabled", "Disabled")
		m.set("disabled", "build.defines", "")
		m.set("disabled", "build.psram_type", string(PSRAMOPI))
	case p.OctalPSRAM():
		m.option("enabled", "QSPI PSRAM")
		m.set("enabled", "build.defines", enabled)
		m.set("enabled", "build.psram_type", string(PSRAMQSPI))
		m.option("disabled", "Disabled")
		m.set("disabled", "build.defines", "")
		m.set("disabled", "build.psram_type", string(PSRAMQSPI))
		m.option("opi", "OPI PSRAM")
		m.set("opi", "build.defines", psramDefine)
		m.set("opi", "build.psram_type", string(PSRAMOPI))
	default:
		m.option("enabled", "Enabled")
		m.set("enabled", "build.defines", enabled)
		m.option("disabled", "Disabled")
		m.set("disabled", "build.defines", "")
	}
	b.blank()
	return b.lines
}
