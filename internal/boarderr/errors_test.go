package boarderr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownChip(t *testing.T) {
	err := UnknownChip("esp8266")
	assert.True(t, errors.Is(err, ErrUnknownChip))
	assert.False(t, errors.Is(err, ErrUnsupportedFlashSize))
	assert.Equal(t, `chip "esp8266": unknown chip family`, err.Error())
}

func TestUnsupportedFlashSize(t *testing.T) {
	err := UnsupportedFlashSize("featheresp32", 2)
	assert.True(t, errors.Is(err, ErrUnsupportedFlashSize))
	assert.Equal(t, `board featheresp32: flash_size "2MB": unsupported flash size`, err.Error())
}

func TestWithBoard(t *testing.T) {
	t.Run("annotates a bare config error", func(t *testing.T) {
		err := WithBoard(UnknownChip("esp32h2"), "some_board")
		var ce *ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "some_board", ce.Board)
		assert.True(t, errors.Is(err, ErrUnknownChip))
	})

	t.Run("keeps an existing board name", func(t *testing.T) {
		err := WithBoard(UnsupportedFlashSize("first", 32), "second")
		var ce *ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "first", ce.Board)
	})

	t.Run("passes other errors through", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, WithBoard(plain, "x"))
	})
}

func TestIsConfigError(t *testing.T) {
	wrapped := fmt.Errorf("generate: %w", UnknownChip("nope"))
	assert.True(t, IsConfigError(wrapped))
	assert.False(t, IsConfigError(errors.New("other")))
	assert.False(t, IsConfigError(nil))
}
