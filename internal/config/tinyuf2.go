package config

// DefaultURLTemplate is the TinyUF2 release asset location.
const DefaultURLTemplate = "https://github.com/adafruit/tinyuf2/releases/download/{version}/tinyuf2-{name}-{version}.zip"

// TinyUF2Config configures the bootloader asset fetch.
type TinyUF2Config struct {
	Version     string    `yaml:"version"`
	URLTemplate string    `yaml:"url_template"`
	VariantsDir string    `yaml:"variants_dir"`
	Parallelism int       `yaml:"parallelism"` // 0 = one worker per CPU
	Timeout     string    `yaml:"timeout"`
	Variants    []Variant `yaml:"variants"`
}

// Variant is one board variant directory and the name its TinyUF2 release
// is published under, when that differs.
type Variant struct {
	Name     string `yaml:"name"`
	Download string `yaml:"download,omitempty"`
}

// DownloadName returns the release asset name for the variant.
func (v Variant) DownloadName() string {
	if v.Download != "" {
		return v.Download
	}
	return v.Name
}

// DefaultVariants returns the TinyUF2 capable boards.
func DefaultVariants() []Variant {
	return []Variant{
		// Feather
		{Name: "adafruit_feather_esp32s2"},
		{Name: "adafruit_feather_esp32s2_reversetft", Download: "adafruit_feather_esp32s2_reverse_tft"},
		{Name: "adafruit_feather_esp32s2_tft"},
		{Name: "adafruit_feather_esp32s3"},
		{Name: "adafruit_feather_esp32s3_nopsram"},
		{Name: "adafruit_feather_esp32s3_reversetft", Download: "adafruit_feather_esp32s3_reverse_tft"},
		{Name: "adafruit_feather_esp32s3_tft"},
		// Funhouse, magtag, metro
		{Name: "adafruit_funhouse_esp32s2"},
		{Name: "adafruit_magtag29_esp32s2", Download: "adafruit_magtag_29gray"},
		{Name: "adafruit_metro_esp32s2"},
		{Name: "adafruit_metro_esp32s3"},
		// QT Py
		{Name: "adafruit_qtpy_esp32s2"},
		{Name: "adafruit_qtpy_esp32s3_nopsram", Download: "adafruit_qtpy_esp32s3"},
		{Name: "adafruit_qtpy_esp32s3_n4r2"},
	}
}

// SelectVariants narrows the configured variants to the named ones, in
// configured order. Names not configured are returned as unknown.
func (c *TinyUF2Config) SelectVariants(names []string) (selected []Variant, unknown []string) {
	if len(names) == 0 {
		return c.Variants, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for _, v := range c.Variants {
		if want[v.Name] {
			selected = append(selected, v)
			delete(want, v.Name)
		}
	}
	for _, n := range names {
		if want[n] {
			unknown = append(unknown, n)
			delete(want, n)
		}
	}
	return selected, unknown
}
