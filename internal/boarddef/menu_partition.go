package boarddef

import (
	"strconv"

	"espboards/internal/boarderr"
	"espboards/internal/chip"
)

type partitionScheme struct {
	key     string
	label   string
	table   string
	maxSize int // upload.maximum_size override, 0 = none
}

// tinyUF2Pair is the OTA / no-OTA pair of TinyUF2 layouts for one flash size.
type tinyUF2Pair struct {
	ota    partitionScheme
	noOTA  partitionScheme
	offset string // where tinyuf2.bin is written
}

const (
	tinyUF2Bootloader = "bootloader-tinyuf2"
	tinyUF2Image      = `"{runtime.platform.path}/variants/{build.variant}/tinyuf2.bin"`
)

var tinyUF2Schemes = map[int]tinyUF2Pair{
	4: {
		ota:    partitionScheme{"tinyuf2", "TinyUF2 4MB (1.3MB APP/960KB FATFS)", "tinyuf2-partitions-4MB", 1441792},
		noOTA:  partitionScheme{"tinyuf2_noota", "TinyUF2 4MB No OTA (2.7MB APP/960KB FATFS)", "tinyuf2-partitions-4MB-noota", 2883584},
		offset: "0x2d0000",
	},
	8: {
		ota:    partitionScheme{"tinyuf2", "TinyUF2 8MB (2MB APP/3.7MB FATFS)", "tinyuf2-partitions-8MB", 2097152},
		noOTA:  partitionScheme{"tinyuf2_noota", "TinyUF2 8MB No OTA (4MB APP/3.7MB FATFS)", "tinyuf2-partitions-8MB-noota", 4194304},
		offset: "0x410000",
	},
	16: {
		ota:    partitionScheme{"tinyuf2", "TinyUF2 16MB (2MB APP/11.6MB FATFS)", "tinyuf2-partitions-16MB", 2097152},
		noOTA:  partitionScheme{"tinyuf2_noota", "TinyUF2 16MB No OTA(4MB APP/11.6MB FATFS)", "tinyuf2-partitions-16MB-noota", 4194304},
		offset: "0x410000",
	},
}

var partitionCatalog = map[int][]partitionScheme{
	4: {
		{"default", "Default 4MB with spiffs (1.2MB APP/1.5MB SPIFFS)", "default", 0},
		{"defaultffat", "Default 4MB with ffat (1.2MB APP/1.5MB FATFS)", "default_ffat", 0},
		{"minimal", "Minimal (1.3MB APP/700KB SPIFFS)", "minimal", 0},
		{"no_ota", "No OTA (2MB APP/2MB SPIFFS)", "no_ota", 2097152},
		{"noota_3g", "No OTA (1MB APP/3MB SPIFFS)", "noota_3g", 1048576},
		{"noota_ffat", "No OTA (2MB APP/2MB FATFS)", "noota_ffat", 2097152},
		{"noota_3gffat", "No OTA (1MB APP/3MB FATFS)", "noota_3gffat", 1048576},
		{"huge_app", "Huge APP (3MB No OTA/1MB SPIFFS)", "huge_app", 3145728},
		{"min_spiffs", "Minimal SPIFFS (1.9MB APP with OTA/190KB SPIFFS)", "min_spiffs", 1966080},
	},
	8: {
		{"default_8MB", "Default (3MB APP/1.5MB SPIFFS)", "default_8MB", 3342336},
	},
	16: {
		{"default_16MB", "Default (6.25MB APP/3.43MB SPIFFS)", "default_16MB", 6553600},
		{"large_spiffs", "Large SPIFFS (4.5MB APP/6.93MB SPIFFS)", "large_spiffs_16MB", 4718592},
		{"app3M_fat9M_16MB", "16M Flash (3MB APP/9MB FATFS)", "app3M_fat9M_16MB", 3145728},
		{"fatflash", "16M Flash (2MB APP/12.5MB FAT)", "ffat", 2097152},
	},
}

// SupportedFlashSizes lists the flash sizes with a partition catalog.
func SupportedFlashSizes() []int { return []int{4, 8, 16} }

// partitionMenuLines emits the flash-size catalog, preceded on native-USB
// chips by the two TinyUF2 schemes in the order the board asks for.
func partitionMenuLines(p chip.Profile, s Spec) ([]Line, error) {
	catalog, ok := partitionCatalog[s.FlashMB]
	if !ok {
		return nil, boarderr.UnsupportedFlashSize(s.Name, s.FlashMB)
	}

	b := newBlock(s.Name)
	m := b.menu("PartitionScheme")

	if p.NativeUSB {
		pair := tinyUF2Schemes[s.FlashMB]
		first, second := pair.ota, pair.noOTA
		if s.NoOTAFirst {
			first, second = second, first
		}
		for _, sc := range []partitionScheme{first, second} {
			m.option(sc.key, sc.label)
			m.set(sc.key, "build.custom_bootloader", tinyUF2Bootloader)
			m.set(sc.key, "build.partitions", sc.table)
			m.set(sc.key, "upload.maximum_size", strconv.Itoa(sc.maxSize))
			m.set(sc.key, "upload.extra_flags", pair.offset+" "+tinyUF2Image)
		}
	}

	for _, sc := range catalog {
		m.option(sc.key, sc.label)
		m.set(sc.key, "build.partitions", sc.table)
		if sc.maxSize > 0 {
			m.set(sc.key, "upload.maximum_size", strconv.Itoa(sc.maxSize))
		}
	}
	b.blank()
	return b.lines, nil
}
