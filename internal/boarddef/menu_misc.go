package boarddef

import (
	"strconv"

	"espboards/internal/chip"
)

const topCPUFreq = 240000000

// cpuFreqMenuLines lists the CPU frequency ladder; 240MHz only when the
// chip defaults to it.
func cpuFreqMenuLines(p chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	m := b.menu("CPUFreq")
	steps := []struct {
		mhz   int
		radio bool
	}{{240, true}, {160, true}, {80, true}, {40, false}, {20, false}, {10, false}}

	for _, st := range steps {
		if st.mhz == 240 && p.FCPU != topCPUFreq {
			continue
		}
		key := strconv.Itoa(st.mhz)
		label := key + "MHz"
		if st.radio {
			label += " " + p.RadioLabel
		}
		m.option(key, label)
		m.set(key, "build.f_cpu", strconv.Itoa(st.mhz*1000000)+"L")
	}
	b.blank()
	return b.lines
}

type flashMode struct {
	key, label, flashMode, boot, bootFreq string
}

var highSpeedFlashModes = []flashMode{
	{"qio", "QIO 80MHz", "dio", "qio", "80m"},
	{"qio120", "QIO 120MHz", "dio", "qio", "120m"},
	{"dio", "DIO 80MHz", "dio", "dio", "80m"},
	{"opi", "OPI 80MHz", "dout", "opi", "80m"},
}

// flashMenuLines emits the flash mode (and frequency) menu for the family,
// then the single flash-size option of the board.
func flashMenuLines(p chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	if p.HighSpeedFlash {
		m := b.menu("FlashMode")
		for _, fm := range highSpeedFlashModes {
			m.option(fm.key, fm.label)
			m.set(fm.key, "build.flash_mode", fm.flashMode)
			m.set(fm.key, "build.boot", fm.boot)
			m.set(fm.key, "build.boot_freq", fm.bootFreq)
			m.set(fm.key, "build.flash_freq", "80m")
		}
	} else {
		if p.SPIMode == "qio" {
			m := b.menu("FlashMode")
			m.option("qio", "QIO")
			m.set("qio", "build.flash_mode", "dio")
			m.set("qio", "build.boot", "qio")
			m.option("dio", "DIO")
			m.set("dio", "build.flash_mode", "dio")
			m.set("dio", "build.boot", "dio")
			b.blank()
		}

		f := b.menu("FlashFreq")
		f.option("80", "80MHz")
		f.set("80", "build.flash_freq", "80m")
		f.option("40", "40MHz")
		f.set("40", "build.flash_freq", "40m")
	}
	b.blank()

	size := b.menu("FlashSize")
	key := strconv.Itoa(s.FlashMB) + "M"
	size.option(key, flashSizeLabel(s.FlashMB))
	size.set(key, "build.flash_size", strconv.Itoa(s.FlashMB)+"MB")
	b.blank()
	return b.lines
}

// flashSizeLabel renders "4MB (32Mb)".
func flashSizeLabel(mb int) string {
	return strconv.Itoa(mb) + "MB (" + strconv.Itoa(mb*8) + "Mb)"
}

// uploadSpeedMenuLines is the same for every board, including the
// OS-specific label variants.
func uploadSpeedMenuLines(_ chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	m := b.menu("UploadSpeed")
	m.option("921600", "921600")
	m.set("921600", "upload.speed", "921600")
	m.option("115200", "115200")
	m.set("115200", "upload.speed", "115200")
	m.set("256000", "windows", "256000")
	m.set("256000", "upload.speed", "256000")
	m.set("230400", "windows.upload.speed", "256000")
	m.option("230400", "230400")
	m.set("230400", "upload.speed", "230400")
	m.set("460800", "linux", "460800")
	m.set("460800", "macosx", "460800")
	m.set("460800", "upload.speed", "460800")
	m.set("512000", "windows", "512000")
	m.set("512000", "upload.speed", "512000")
	b.blank()
	return b.lines
}

var debugLevels = []struct{ key, label string }{
	{"none", "None"},
	{"error", "Error"},
	{"warn", "Warn"},
	{"info", "Info"},
	{"debug", "Debug"},
	{"verbose", "Verbose"},
}

func debugMenuLines(_ chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	m := b.menu("DebugLevel")
	for i, lvl := range debugLevels {
		m.option(lvl.key, lvl.label)
		m.set(lvl.key, "build.code_debug", strconv.Itoa(i))
	}
	b.blank()
	return b.lines
}

func eraseMenuLines(_ chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	m := b.menu("EraseFlash")
	m.option("none", "Disabled")
	m.set("none", "upload.erase_cmd", "")
	m.option("all", "Enabled")
	m.set("all", "upload.erase_cmd", "-e")
	b.blank()
	return b.lines
}

const zigbeeCoordinatorLibs = "-lesp_zb_api_zczr -lesp_zb_cli_command -lzboss_stack.zczr.trace -lzboss_stack.zczr -lzboss_port"

// zigbeeMenuLines is the radio-mode toggle: disabled or coordinator/router.
func zigbeeMenuLines(_ chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	m := b.menu("ZigbeeMode")
	m.option("default", "Disabled")
	m.set("default", "build.zigbee_mode", "")
	m.set("default", "build.zigbee_libs", "")
	m.option("zczr", "Zigbee ZCZR (coordinator)")
	m.set("zczr", "build.zigbee_mode", "-DZIGBEE_MODE_ZCZR")
	m.set("zczr", "build.zigbee_libs", zigbeeCoordinatorLibs)
	b.blank()
	return b.lines
}
