// Package chip holds the fixed hardware attributes of each supported chip family.
// The table is built once at package init and never mutated; Lookup returns copies.
package chip

import (
	"sort"

	"espboards/internal/boarderr"
)

// Family identifies a chip family (the build tool's "mcu" value).
type Family string

const (
	ESP32   Family = "esp32"
	ESP32S2 Family = "esp32s2"
	ESP32S3 Family = "esp32s3"
	ESP32C3 Family = "esp32c3"
)

// CDCOnBoot is the tri-state CDC-on-boot capability.
type CDCOnBoot int

const (
	CDCUnsupported CDCOnBoot = -1
	CDCDisabled    CDCOnBoot = 0
	CDCEnabled     CDCOnBoot = 1
)

// Supported reports whether the chip can enable CDC at boot at all.
func (c CDCOnBoot) Supported() bool { return c >= 0 }

// PSRAMClass is the widest PSRAM bus the chip can drive.
type PSRAMClass int

const (
	PSRAMNone PSRAMClass = iota
	PSRAMQuad
	PSRAMOctal
)

func (c PSRAMClass) String() string {
	switch c {
	case PSRAMQuad:
		return "quad"
	case PSRAMOctal:
		return "octal"
	default:
		return "none"
	}
}

// Profile is the per-family hardware description consumed by the emitters.
type Profile struct {
	Family         Family
	Arch           string // build.tarch
	Target         string // build.target
	DualCore       bool
	BootloaderAddr string
	FCPU           int    // Hz
	MaxDataSize    int    // upload.maximum_data_size
	Touch1200      string // "", "true" or "false"; empty means hardware reset lines
	USBOTGMode     bool   // has the USB-OTG / HW-CDC mode selector
	NativeUSB      bool
	CDCOnBoot      CDCOnBoot
	SPIMode        string // default build.boot
	PSRAM          PSRAMClass
	PSRAMCacheFix  bool   // append the -mfix-esp32-psram-cache flags when PSRAM is on
	HighSpeedFlash bool   // QIO 120MHz / OPI flash mode menu
	RadioLabel     string // CPU frequency label suffix
}

// OctalPSRAM reports whether the chip supports octal (OPI) PSRAM.
func (p Profile) OctalPSRAM() bool { return p.PSRAM == PSRAMOctal }

var profiles = map[Family]Profile{
	ESP32: {
		Family:         ESP32,
		Arch:           "xtensa",
		Target:         "esp32",
		DualCore:       true,
		BootloaderAddr: "0x1000",
		FCPU:           240000000,
		MaxDataSize:    327680,
		Touch1200:      "",
		CDCOnBoot:      CDCUnsupported,
		SPIMode:        "dio",
		PSRAM:          PSRAMQuad,
		PSRAMCacheFix:  true,
		RadioLabel:     "(WiFi/BT)",
	},
	ESP32S2: {
		Family:         ESP32S2,
		Arch:           "xtensa",
		Target:         "esp32s2",
		BootloaderAddr: "0x1000",
		FCPU:           240000000,
		MaxDataSize:    327680,
		Touch1200:      "true",
		NativeUSB:      true,
		CDCOnBoot:      CDCEnabled,
		SPIMode:        "qio",
		PSRAM:          PSRAMQuad,
		RadioLabel:     "(WiFi)",
	},
	ESP32S3: {
		Family:         ESP32S3,
		Arch:           "xtensa",
		Target:         "esp32s3",
		DualCore:       true,
		BootloaderAddr: "0x0",
		FCPU:           240000000,
		MaxDataSize:    327680,
		Touch1200:      "true",
		USBOTGMode:     true,
		NativeUSB:      true,
		CDCOnBoot:      CDCEnabled,
		SPIMode:        "qio",
		PSRAM:          PSRAMOctal,
		HighSpeedFlash: true,
		RadioLabel:     "(WiFi)",
	},
	ESP32C3: {
		Family:         ESP32C3,
		Arch:           "riscv32",
		Target:         "esp",
		BootloaderAddr: "0x0",
		FCPU:           160000000,
		MaxDataSize:    327680,
		Touch1200:      "false",
		CDCOnBoot:      CDCEnabled,
		SPIMode:        "qio",
		PSRAM:          PSRAMNone,
		RadioLabel:     "(WiFi)",
	},
}

// Lookup returns the profile for family or a ConfigError wrapping
// boarderr.ErrUnknownChip.
func Lookup(family string) (Profile, error) {
	p, ok := profiles[Family(family)]
	if !ok {
		return Profile{}, boarderr.UnknownChip(family)
	}
	return p, nil
}

// Families lists every known family, sorted.
func Families() []Family {
	out := make([]Family, 0, len(profiles))
	for f := range profiles {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
