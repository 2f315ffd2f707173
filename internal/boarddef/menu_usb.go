package boarddef

import "espboards/internal/chip"

// usbLabels are the option labels that change when the chip has the
// USB-OTG / hardware CDC mode selector.
type usbLabels struct {
	requireOTG string
	uploadCDC  string
	uploadUART string
}

func labelsFor(p chip.Profile) usbLabels {
	if p.USBOTGMode {
		return usbLabels{
			requireOTG: " (Requires USB-OTG Mode)",
			uploadCDC:  "USB-OTG CDC (TinyUSB)",
			uploadUART: "UART0 / Hardware CDC",
		}
	}
	return usbLabels{uploadCDC: "Internal USB", uploadUART: "UART0"}
}

// usbMenuLines emits up to three independent groups: the USB mode selector,
// CDC on boot, and the native-USB menus (MSC, DFU, upload mode).
func usbMenuLines(p chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	labels := labelsFor(p)

	if p.USBOTGMode {
		m := b.menu("USBMode")
		m.option("default", "USB-OTG (TinyUSB)")
		m.set("default", "build.usb_mode", "0")
		m.option("hwcdc", "Hardware CDC and JTAG")
		m.set("hwcdc", "build.usb_mode", "1")
		b.blank()
	}

	if p.CDCOnBoot.Supported() {
		m := b.menu("CDCOnBoot")
		m.option("cdc", "Enabled")
		m.set("cdc", "build.cdc_on_boot", "1")
		m.option("default", "Disabled")
		m.set("default", "build.cdc_on_boot", "0")
		b.blank()
	}

	if p.NativeUSB {
		msc := b.menu("MSCOnBoot")
		msc.option("default", "Disabled")
		msc.set("default", "build.msc_on_boot", "0")
		msc.option("msc", "Enabled"+labels.requireOTG)
		msc.set("msc", "build.msc_on_boot", "1")
		b.blank()

		dfu := b.menu("DFUOnBoot")
		dfu.option("default", "Disabled")
		dfu.set("default", "build.dfu_on_boot", "0")
		dfu.option("dfu", "Enabled"+labels.requireOTG)
		dfu.set("dfu", "build.dfu_on_boot", "1")
		b.blank()

		up := b.menu("UploadMode")
		up.option("cdc", labels.uploadCDC)
		up.set("cdc", "upload.use_1200bps_touch", "true")
		up.set("cdc", "upload.wait_for_upload_port", "true")
		up.option("default", labels.uploadUART)
		up.set("default", "upload.use_1200bps_touch", "false")
		up.set("default", "upload.wait_for_upload_port", "false")
		b.blank()
	}
	return b.lines
}
