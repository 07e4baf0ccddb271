package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/markbot/core/telegram/keyboard"
	"github.com/m3rciful/markbot/internal/watermark"
)

// Callback uniques. The payload (after '|') carries the selected value for
// the set-* actions.
const (
	cbBackToMain   = "wm_main"
	cbLogoMenu     = "wm_logo_menu"
	cbDarknessMenu = "wm_darkness_menu"
	cbCornerMenu   = "wm_corner_menu"
	cbSetDarkness  = "wm_darkness"
	cbSetCorner    = "wm_corner"
	cbUploadLogo   = "wm_logo_upload"
	cbCancelUpload = "wm_logo_cancel"
	cbResetLogo    = "wm_logo_reset"
)

// darknessChoices is the fixed menu range; anything outside would be
// clamped by the store, but the keyboard never produces such values.
var darknessChoices = []int{30, 40, 50, 60, 70, 80}

var cornerLabels = map[watermark.Corner]string{
	watermark.CornerTopLeft:     "↖️ Top left",
	watermark.CornerTopRight:    "↗️ Top right",
	watermark.CornerBottomLeft:  "↙️ Bottom left",
	watermark.CornerBottomRight: "↘️ Bottom right",
}

func backButton() keyboard.InlineBtn {
	return keyboard.InlineBtn{Text: "« Back", Unique: cbBackToMain}
}

func mainMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🖼️ Logo", Unique: cbLogoMenu},
		{Text: "⚫ Darkness", Unique: cbDarknessMenu},
		{Text: "📍 Placement", Unique: cbCornerMenu},
	})
}

// settingsMenu is attached to processed photos: quick access to the two
// settings that trigger recomposition.
func settingsMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "⚫ Darkness", Unique: cbDarknessMenu},
		{Text: "📍 Placement", Unique: cbCornerMenu},
	})
}

func darknessMenu() *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(darknessChoices))
	for _, pct := range darknessChoices {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%d%%", pct),
			Unique: cbSetDarkness,
			Data:   fmt.Sprintf("%d", pct),
		})
	}
	rows := [][]keyboard.InlineBtn{buttons[:3], buttons[3:], {backButton()}}
	return keyboard.InlineButtonsRows(rows...)
}

func cornerMenu() *tele.ReplyMarkup {
	corners := watermark.Corners()
	buttons := make([]keyboard.InlineBtn, 0, len(corners))
	for _, corner := range corners {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   cornerLabels[corner],
			Unique: cbSetCorner,
			Data:   string(corner),
		})
	}
	rows := [][]keyboard.InlineBtn{buttons[:2], buttons[2:], {backButton()}}
	return keyboard.InlineButtonsRows(rows...)
}

func logoMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "⬆️ Upload custom logo", Unique: cbUploadLogo},
		{Text: "♻️ Use default logo", Unique: cbResetLogo},
		backButton(),
	})
}

func cancelUploadMenu() *tele.ReplyMarkup {
	return keyboard.SingleCancelMarkup(cbCancelUpload)
}
