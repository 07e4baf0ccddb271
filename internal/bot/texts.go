package bot

import (
	"fmt"
	"strings"

	"github.com/m3rciful/markbot/internal/session"
	"github.com/m3rciful/markbot/internal/watermark"
)

func cornerTitle(c watermark.Corner) string {
	switch watermark.ParseCorner(string(c)) {
	case watermark.CornerTopLeft:
		return "top left"
	case watermark.CornerTopRight:
		return "top right"
	case watermark.CornerBottomRight:
		return "bottom right"
	default:
		return "bottom left"
	}
}

func logoTitle(s session.Snapshot) string {
	if s.HasCustomLogo {
		return "custom"
	}
	return "default"
}

func settingsLines(s session.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Darkness: %d%%\n", s.Darkness)
	fmt.Fprintf(&b, "Placement: %s\n", cornerTitle(s.Corner))
	fmt.Fprintf(&b, "Logo: %s", logoTitle(s))
	return b.String()
}

func greetingText(botName, userName string, s session.Snapshot) string {
	hello := "👋 Welcome"
	if userName != "" {
		hello = fmt.Sprintf("👋 Welcome, %s", userName)
	}
	return fmt.Sprintf(
		"%s to *%s*!\n\n"+
			"Send me any picture and I will darken it and stamp a logo on it.\n\n"+
			"*Current settings:*\n%s\n\n"+
			"Use the buttons below to adjust 👇",
		hello, botName, settingsLines(s),
	)
}

func settingsText(s session.Snapshot) string {
	return fmt.Sprintf("*Current settings:*\n%s\n\nPick an option:", settingsLines(s))
}

func processedCaption(s session.Snapshot) string {
	return fmt.Sprintf("✅ Done!\nDarkness: %d%%\nPlacement: %s", s.Darkness, cornerTitle(s.Corner))
}

func darknessChangedCaption(s session.Snapshot) string {
	return fmt.Sprintf("✅ Darkness set to %d%%\nPlacement: %s", s.Darkness, cornerTitle(s.Corner))
}

func cornerChangedCaption(s session.Snapshot) string {
	return fmt.Sprintf("✅ Placement set to %s\nDarkness: %d%%", cornerTitle(s.Corner), s.Darkness)
}

func darknessAckText(s session.Snapshot) string {
	return fmt.Sprintf(
		"✅ Darkness set to %d%%\n\n*Current settings:*\n%s\n\nSend a photo to process!",
		s.Darkness, settingsLines(s),
	)
}

func cornerAckText(s session.Snapshot) string {
	return fmt.Sprintf(
		"✅ Placement set to %s\n\n*Current settings:*\n%s\n\nSend a photo to process!",
		cornerTitle(s.Corner), settingsLines(s),
	)
}

func darknessMenuText(s session.Snapshot) string {
	return fmt.Sprintf("⚫ Pick a darkness percentage:\n\n*Current:* %d%%", s.Darkness)
}

func cornerMenuText(s session.Snapshot) string {
	return fmt.Sprintf("📍 Pick the logo placement:\n\n*Current:* %s", cornerTitle(s.Corner))
}

func logoMenuText(s session.Snapshot) string {
	return fmt.Sprintf(
		"🖼️ *Logo*\n\nCurrent logo: %s.\n\nUpload your own image to use it as the logo, or switch back to the default.",
		logoTitle(s),
	)
}

const (
	uploadLogoText     = "⬆️ Send me the image to use as your logo.\n\nIt will replace the logo on every photo you process."
	logoSavedCaption   = "✅ New logo saved! Send a photo to see it in action."
	logoKeptCaption    = "Upload cancelled. This logo stays in effect."
	logoResetCaption   = "♻️ Back to the default logo."
	awaitingLogoHint   = "I'm waiting for a logo image. Send a picture, or cancel below."
	unknownTextReply   = "Send me a picture to process, or use /settings."
	documentHint       = "Please send the image as a compressed photo, not as a file."
	errDecodeReply     = "❌ I couldn't read that image. Try a different picture."
	errLogoReply       = "❌ The logo is unavailable right now. Try again later."
	errProcessingReply = "❌ Processing failed. Try sending the photo again."
)
