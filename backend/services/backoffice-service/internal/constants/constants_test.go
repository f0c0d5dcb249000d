package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteColor(t *testing.T) {
	assert.Equal(t, "#d32f2f", PaletteColor(ColorRed).Primary)
	assert.Equal(t, Palette[ColorPurple], PaletteColor(""))
	assert.Equal(t, Palette[ColorPurple], PaletteColor("teal"))
}
