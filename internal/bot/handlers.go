package bot

import (
	"errors"
	"fmt"
	"io"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/markbot/core/buildinfo"
	"github.com/m3rciful/markbot/core/telegram/callbacks"
	"github.com/m3rciful/markbot/core/telegram/format"
	tghelpers "github.com/m3rciful/markbot/core/telegram/helpers"
	"github.com/m3rciful/markbot/internal/session"
	"github.com/m3rciful/markbot/internal/watermark"
)

func (a *App) handleStart(c tele.Context) error {
	var name string
	if u := c.Sender(); u != nil {
		name = format.EscapeV1(u.FirstName)
	}
	s := a.ctrl.Settings(c.Sender().ID)
	return tghelpers.SendMD(c, greetingText(a.cfg.Branding.Name, name, s), mainMenu())
}

func (a *App) handleSettings(c tele.Context) error {
	s := a.ctrl.Settings(c.Sender().ID)
	return tghelpers.SendMD(c, settingsText(s), mainMenu())
}

func (a *App) handleStats(c tele.Context) error {
	var sendErrs uint64
	if a.dispatcher != nil {
		sendErrs = a.dispatcher.ErrorCount()
	}
	text := fmt.Sprintf(
		"Sessions: %d\nSend errors: %d\nUptime: %s\nVersion: %s",
		a.ctrl.SessionCount(),
		sendErrs,
		time.Since(a.startedAt).Round(time.Second),
		buildinfo.Version,
	)
	return tghelpers.SendText(c, text)
}

// handlePhoto is the single entry point for incoming photos: while idle the
// photo is watermarked, while awaiting a logo it becomes the custom logo.
func (a *App) handlePhoto(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	data, err := a.downloadFile(c, &msg.Photo.File)
	if err != nil {
		return tghelpers.SendText(c, errProcessingReply)
	}

	res, err := a.ctrl.Photo(ctx, c.Sender().ID, data)
	if err != nil {
		return a.replyError(c, err)
	}
	switch res.Kind {
	case session.ResultImage:
		return tghelpers.SendPhoto(c, res.Image, processedCaption(res.Settings), settingsMenu())
	case session.ResultLogoPreview:
		return tghelpers.SendPhoto(c, res.Image, logoSavedCaption, mainMenu())
	}
	return nil
}

func (a *App) downloadFile(c tele.Context, file *tele.File) ([]byte, error) {
	rc, err := c.Bot().File(file)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (a *App) replyError(c tele.Context, err error) error {
	switch {
	case errors.Is(err, watermark.ErrDecode):
		return tghelpers.SendText(c, errDecodeReply)
	case errors.Is(err, watermark.ErrLogoMissing):
		return tghelpers.SendText(c, errLogoReply)
	default:
		return tghelpers.SendText(c, errProcessingReply)
	}
}

func (a *App) callbackHandlers() map[string]tele.HandlerFunc {
	return map[string]tele.HandlerFunc{
		cbBackToMain:   a.cbShowMain,
		cbLogoMenu:     a.cbShowLogoMenu,
		cbDarknessMenu: a.cbShowDarknessMenu,
		cbCornerMenu:   a.cbShowCornerMenu,
		cbSetDarkness:  a.cbSetDarkness,
		cbSetCorner:    a.cbSetCorner,
		cbUploadLogo:   a.cbUploadLogo,
		cbCancelUpload: a.cbCancelUpload,
		cbResetLogo:    a.cbResetLogo,
	}
}

func (a *App) cbShowMain(c tele.Context) error {
	s := a.ctrl.Settings(c.Sender().ID)
	return tghelpers.EditOrSendMD(c, settingsText(s), mainMenu())
}

func (a *App) cbShowLogoMenu(c tele.Context) error {
	s := a.ctrl.Settings(c.Sender().ID)
	return tghelpers.EditOrSendMD(c, logoMenuText(s), logoMenu())
}

func (a *App) cbShowDarknessMenu(c tele.Context) error {
	s := a.ctrl.Settings(c.Sender().ID)
	return tghelpers.EditOrSendMD(c, darknessMenuText(s), darknessMenu())
}

func (a *App) cbShowCornerMenu(c tele.Context) error {
	s := a.ctrl.Settings(c.Sender().ID)
	return tghelpers.EditOrSendMD(c, cornerMenuText(s), cornerMenu())
}

func (a *App) cbSetDarkness(c tele.Context) error {
	pct, err := callbacks.PayloadInt(c)
	if err != nil {
		// Stale or hand-crafted payload; just re-open the menu.
		return a.cbShowDarknessMenu(c)
	}
	ctx := tghelpers.BuildContext(c)
	res, err := a.ctrl.SetDarkness(ctx, c.Sender().ID, pct)
	if err != nil {
		return a.replyError(c, err)
	}
	if res.Kind == session.ResultImage {
		return tghelpers.SendPhoto(c, res.Image, darknessChangedCaption(res.Settings), settingsMenu())
	}
	return tghelpers.EditOrSendMD(c, darknessAckText(res.Settings), mainMenu())
}

func (a *App) cbSetCorner(c tele.Context) error {
	corner := callbacks.CallbackPayload(c)
	ctx := tghelpers.BuildContext(c)
	res, err := a.ctrl.SetCorner(ctx, c.Sender().ID, corner)
	if err != nil {
		return a.replyError(c, err)
	}
	if res.Kind == session.ResultImage {
		return tghelpers.SendPhoto(c, res.Image, cornerChangedCaption(res.Settings), settingsMenu())
	}
	return tghelpers.EditOrSendMD(c, cornerAckText(res.Settings), mainMenu())
}

func (a *App) cbUploadLogo(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	a.ctrl.RequestLogoUpload(ctx, c.Sender().ID)
	return tghelpers.EditOrSendMD(c, uploadLogoText, cancelUploadMenu())
}

func (a *App) cbCancelUpload(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	res := a.ctrl.CancelUpload(ctx, c.Sender().ID)
	return tghelpers.SendPhoto(c, res.Image, logoKeptCaption, logoMenu())
}

func (a *App) cbResetLogo(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	res := a.ctrl.ResetLogo(ctx, c.Sender().ID)
	return tghelpers.SendPhoto(c, res.Image, logoResetCaption, logoMenu())
}

// UnknownText implements ui.FallbackProvider.
func (a *App) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendMD(c, unknownTextReply, mainMenu())
	}
}

// UnknownDocument implements ui.FallbackProvider.
func (a *App) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, documentHint)
	}
}

// UnknownCallback implements ui.FallbackProvider.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		_ = c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		return nil
	}
}
