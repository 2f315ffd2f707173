package registry

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"espboards/internal/boarddef"
	"espboards/internal/boarderr"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/multierr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefaultRegistry(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)
	require.Len(t, r.Boards, 22)
	assert.NoError(t, r.Validate())

	names := r.Names()
	assert.Equal(t, "adafruit_metro_esp32s2", names[0])
	assert.Equal(t, "adafruit_qualia_s3_rgb666", names[len(names)-1])
}

func TestDefaultRegistryMatchesGolden(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	want, err := os.ReadFile(filepath.Join("testdata", "adafruit_boards.golden"))
	require.NoError(t, err)
	if diff := cmp.Diff(strings.Split(string(want), "\n"), strings.Split(buf.String(), "\n")); diff != "" {
		t.Errorf("generated boards file mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEqualsGenerate(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out, err := r.Render()
	require.NoError(t, err)
	assert.Equal(t, buf.String(), out)
}

func TestFind(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	b, ok := r.Find("adafruit_camera_esp32s3")
	require.True(t, ok)
	assert.True(t, b.NoOTAFirst)
	assert.Equal(t, []string{"0x0117", "0x8117", "0x8118"}, b.USBPIDs)

	b, ok = r.Find("featheresp32")
	require.True(t, ok)
	assert.Equal(t, "feather_esp32", b.Spec().VariantName())
	assert.Empty(t, b.USBVID)

	_, ok = r.Find("adafruit_feather_m4")
	assert.False(t, ok)
}

func TestBoardSpec(t *testing.T) {
	b := Board{
		Name: "x", Chip: "esp32s3", BoardMacro: "X", FlashMB: 16,
		PSRAMMB: 8, PSRAMType: "octal", Vendor: "V", Product: "P",
	}
	s := b.Spec()
	assert.Equal(t, boarddef.PSRAMOPI, s.PSRAMType)
	assert.Equal(t, "x", s.VariantName())
	assert.Equal(t, "V P", s.DisplayName())

	b.PSRAMType = ""
	assert.Equal(t, boarddef.PSRAMQSPI, b.Spec().PSRAMType)
}

const twoBoards = `version: 1
boards:
  - name: good
    chip: esp32c3
    board_macro: GOOD
    flash_mb: 4
    vendor: Acme
    product: Good
  - name: bad
    chip: esp32p4
    board_macro: BAD
    flash_mb: 4
    vendor: Acme
    product: Bad
`

func TestGenerateAbortsBeforeFailingBoard(t *testing.T) {
	r, err := Parse([]byte(twoBoards))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Generate(&buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boarderr.ErrUnknownChip))

	var ce *boarderr.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "bad", ce.Board)

	out := buf.String()
	assert.Contains(t, out, "good.name=Acme Good")
	assert.NotContains(t, out, "bad.")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	r := &Registry{Boards: []Board{
		{Name: "a", Chip: "esp32", FlashMB: 4},
		{Name: "a", Chip: "esp32", FlashMB: 4},
		{Name: "b", Chip: "esp8266", FlashMB: 2},
		{Name: " ", Chip: "esp32", FlashMB: 4},
	}}
	err := r.Validate()
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0].Error(), "duplicate name")
	assert.True(t, errors.Is(errs[1], boarderr.ErrUnknownChip))
	assert.Contains(t, errs[2].Error(), "flash size 2MB")
	assert.Contains(t, errs[3].Error(), "empty name")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoBoards), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"good", "bad"}, r.Names())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read registry")

	r, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Len(t, r.Boards, 22)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("boards: {name: [}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse registry YAML")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestGenerateWriteError(t *testing.T) {
	r, err := Parse([]byte(twoBoards))
	require.NoError(t, err)
	err = r.Generate(failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write board good")
	assert.False(t, boarderr.IsConfigError(err))
}
