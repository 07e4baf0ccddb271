package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/markbot/internal/session"
	"github.com/m3rciful/markbot/internal/watermark"
)

func sampleSnapshot() session.Snapshot {
	return session.Snapshot{
		Darkness: 60,
		Corner:   watermark.CornerBottomLeft,
	}
}

func TestGreetingText(t *testing.T) {
	text := greetingText("Watermark Bot", "Alice", sampleSnapshot())
	assert.Contains(t, text, "Alice")
	assert.Contains(t, text, "Watermark Bot")
	assert.Contains(t, text, "Darkness: 60%")
	assert.Contains(t, text, "bottom left")
	assert.Contains(t, text, "Logo: default")

	anon := greetingText("Watermark Bot", "", sampleSnapshot())
	assert.NotContains(t, anon, ", ")
}

func TestSettingsLinesReflectSnapshot(t *testing.T) {
	s := session.Snapshot{
		Darkness:      80,
		Corner:        watermark.CornerTopRight,
		HasCustomLogo: true,
	}
	lines := settingsLines(s)
	assert.Contains(t, lines, "Darkness: 80%")
	assert.Contains(t, lines, "top right")
	assert.Contains(t, lines, "Logo: custom")
}

func TestCornerTitleFallsBack(t *testing.T) {
	assert.Equal(t, "bottom left", cornerTitle(watermark.Corner("weird")))
}

func TestDarknessMenuLayout(t *testing.T) {
	markup := darknessMenu()
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Len(t, markup.InlineKeyboard[0], 3)
	assert.Len(t, markup.InlineKeyboard[1], 3)
	assert.Len(t, markup.InlineKeyboard[2], 1)
	assert.Equal(t, "30%", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "80%", markup.InlineKeyboard[1][2].Text)
}

func TestCornerMenuCoversAllAnchors(t *testing.T) {
	markup := cornerMenu()
	require.Len(t, markup.InlineKeyboard, 3)

	var labels []string
	for _, row := range markup.InlineKeyboard[:2] {
		for _, btn := range row {
			labels = append(labels, btn.Text)
		}
	}
	assert.Len(t, labels, len(watermark.Corners()))
	for _, corner := range watermark.Corners() {
		assert.Contains(t, labels, cornerLabels[corner])
	}
}

func TestMainMenuButtons(t *testing.T) {
	markup := mainMenu()
	total := 0
	for _, row := range markup.InlineKeyboard {
		total += len(row)
	}
	assert.Equal(t, 3, total)
}
