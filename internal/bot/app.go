// Package bot wires the watermarking service to the Telegram transport:
// command and callback handlers, menus, and the run options consumed by
// core/telegram.
package bot

import (
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/markbot/core/bootstrap"
	coretelegram "github.com/m3rciful/markbot/core/telegram"
	"github.com/m3rciful/markbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/markbot/core/telegram/helpers"
	"github.com/m3rciful/markbot/core/telegram/router"
	tgsender "github.com/m3rciful/markbot/core/telegram/sender"
	"github.com/m3rciful/markbot/internal/session"
	"github.com/m3rciful/markbot/internal/watermark"
)

// App owns the session store and controller and exposes the Telegram wiring.
type App struct {
	cfg        *Config
	store      *session.Store
	ctrl       *session.Controller
	dispatcher *tgsender.Dispatcher
	startedAt  time.Time
}

// New assembles the application from configuration and bootstrap results.
func New(cfg *Config, boot *bootstrap.Result) *App {
	store := session.NewStore(session.Defaults{
		Darkness: cfg.Watermark.DefaultDarkness,
		Corner:   cfg.Watermark.DefaultCorner,
	})
	ctrl := session.NewController(session.ControllerOptions{
		Store:       store,
		Compositor:  watermark.Compositor{JPEGQuality: cfg.Watermark.JPEGQuality},
		DefaultLogo: boot.DefaultLogo,
	})
	return &App{
		cfg:       cfg,
		store:     store,
		ctrl:      ctrl,
		startedAt: time.Now(),
	}
}

// uploadGate routes text and document updates to an upload hint while the
// user is awaiting a logo, instead of command lookup.
type uploadGate struct {
	ctrl *session.Controller
}

func (g uploadGate) InProgress(userID int64) bool {
	return g.ctrl.Settings(userID).AwaitingLogo
}

func (g uploadGate) Intercept(c tele.Context) error {
	return tghelpers.SendMD(c, awaitingLogoHint, cancelUploadMenu())
}

// TelegramRunOptions builds the registry, routes, and middleware chain.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Main menu and current settings",
	})
	reg.RegisterCommand("/settings", commands.Command{
		Handler:     a.handleSettings,
		Description: "Show watermark settings",
		Aliases:     []string{"menu"},
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "Service statistics",
		AdminOnly:   true,
		Hidden:      true,
	})

	for key, h := range a.callbackHandlers() {
		if err := reg.RegisterCallback(key, h); err != nil {
			return coretelegram.RunOptions{}, err
		}
	}
	reg.SetCallbackNotFound(a.UnknownCallback())
	reg.SetTextFallback(a.UnknownText())

	cfg := a.cfg.CoreConfig()
	gate := uploadGate{ctrl: a.ctrl}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(gate, reg, router.TextOptions{
		UnknownText:     a.UnknownText(),
		UnknownDocument: a.UnknownDocument(),
	})...)
	routes = append(routes, router.PhotoRoute(a.handlePhoto))

	a.dispatcher = tgsender.NewDispatcher(tgsender.Options{})

	return coretelegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Dispatcher:  a.dispatcher,
		Middlewares: coretelegram.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
	}, nil
}
