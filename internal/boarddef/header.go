package boarddef

import (
	"strconv"

	"espboards/internal/chip"
)

// headerLines emits the banner, the display name and one vid/pid pair per
// USB product ID. The vendor ID repeats for every index.
func headerLines(_ chip.Profile, s Spec) []Line {
	b := newBlock(s.Name)
	b.rule()
	b.comment(s.DisplayName())
	b.blank()
	b.set("name", s.DisplayName())
	for i, pid := range s.USBPIDs {
		idx := strconv.Itoa(i)
		b.set("vid."+idx, s.USBVID)
		b.set("pid."+idx, pid)
	}
	b.blank()
	return b.lines
}
