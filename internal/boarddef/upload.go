package boarddef

import (
	"strconv"

	"espboards/internal/chip"
)

// uploadLines declares the upload tools and the reset policy of the family.
func uploadLines(p chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	b.set("bootloader.tool", uploadTool)
	b.set("bootloader.tool.default", uploadTool)
	b.blank()

	b.set("upload.tool", uploadTool)
	b.set("upload.tool.default", uploadTool)
	b.set("upload.tool.network", networkUploadTool)
	b.blank()

	b.set("upload.maximum_size", strconv.Itoa(maxImageSize))
	b.set("upload.maximum_data_size", strconv.Itoa(p.MaxDataSize))
	b.set("upload.flags", "")
	b.set("upload.extra_flags", "")

	if p.Touch1200 != "" {
		b.set("upload.use_1200bps_touch", p.Touch1200)
		b.set("upload.wait_for_upload_port", p.Touch1200)
		b.blank()
		b.set("serial.disableDTR", "false")
		b.set("serial.disableRTS", "false")
	} else {
		b.blank()
		b.set("serial.disableDTR", "true")
		b.set("serial.disableRTS", "true")
	}
	b.blank()
	return b.lines
}

const (
	uploadTool        = "esptool_py"
	networkUploadTool = "esp_ota"
	// platform-wide app image ceiling, independent of flash size
	maxImageSize = 1310720
)
