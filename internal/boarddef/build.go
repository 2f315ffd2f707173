package boarddef

import (
	"strconv"

	"espboards/internal/chip"
)

// buildLines emits the build.* defaults. Menus override most of them.
func buildLines(p chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	b.set("build.tarch", p.Arch)
	b.set("build.bootloader_addr", p.BootloaderAddr)
	b.set("build.target", p.Target)
	b.set("build.mcu", string(p.Family))
	b.set("build.core", "esp32")
	b.set("build.variant", s.VariantName())
	b.set("build.board", s.BoardMacro)
	b.blank()

	if p.USBOTGMode {
		b.set("build.usb_mode", "0")
	}
	if p.CDCOnBoot.Supported() {
		b.set("build.cdc_on_boot", strconv.Itoa(int(p.CDCOnBoot)))
	}
	if p.NativeUSB {
		b.set("build.msc_on_boot", "0")
		b.set("build.dfu_on_boot", "0")
	}
	b.setf("build.f_cpu", "%dL", p.FCPU)
	b.setf("build.flash_size", "%dMB", s.FlashMB)
	b.set("build.flash_freq", "80m")
	b.set("build.flash_mode", "dio")
	b.set("build.boot", p.SPIMode)
	b.set("build.partitions", "default")
	b.set("build.defines", "")

	if p.DualCore {
		b.set("build.loop_core", "")
		b.set("build.event_core", "")
	}

	if p.OctalPSRAM() {
		b.set("build.flash_type", "qio")
		if s.octalPSRAM() {
			b.set("build.psram_type", string(PSRAMOPI))
		} else {
			b.set("build.psram_type", string(PSRAMQSPI))
		}
		// resolved by the build tool, not here
		b.set("build.memory_type", "{build.flash_type}_{build.psram_type}")
	}
	b.blank()
	return b.lines
}

// coreMenuLines lets dual-core chips pin the loop and event tasks.
func coreMenuLines(p chip.Profile, s Spec) []Line {
	if !p.DualCore {
		return nil
	}
	b := newBlock(s.Name)
	loop := b.menu("LoopCore")
	for _, core := range []string{"1", "0"} {
		loop.option(core, "Core "+core)
		loop.set(core, "build.loop_core", "-DARDUINO_RUNNING_CORE="+core)
	}
	b.blank()

	events := b.menu("EventsCore")
	for _, core := range []string{"1", "0"} {
		events.option(core, "Core "+core)
		events.set(core, "build.event_core", "-DARDUINO_EVENT_RUNNING_CORE="+core)
	}
	b.blank()
	return b.lines
}
