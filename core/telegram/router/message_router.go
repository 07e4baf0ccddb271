package router

import (
	"time"

	tg "github.com/m3rciful/markbot/core/telegram"
	"github.com/m3rciful/markbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Interceptor lets an application claim text/document updates for a user who
// is in the middle of a conversational flow (for example, awaiting a logo
// upload) before command lookup happens.
type Interceptor interface {
	InProgress(userID int64) bool
	Intercept(c tele.Context) error
}

// TextOptions controls fallback behaviour for text/document updates.
type TextOptions struct {
	UnknownText     tele.HandlerFunc
	UnknownDocument tele.HandlerFunc
}

// TextRoutes builds handlers for text and document routing: interceptor
// first, then registered commands, then fallbacks.
func TextRoutes(ic Interceptor, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if ic != nil && ic.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "intercept", start, "", "", func() error {
				return ic.Intercept(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	docHandler := func(c tele.Context) error {
		start := time.Now()
		if ic != nil && ic.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "intercept_document", start, "", "", func() error {
				return ic.Intercept(c)
			})
		}
		if opts.UnknownDocument != nil {
			return handleWithSummary(c, "unexpected_document", start, "", "", func() error {
				return opts.UnknownDocument(c)
			})
		}
		logHandlerSummary(c, "unexpected_document", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
		{
			Endpoint: tele.OnDocument,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(docHandler)),
		},
	}
}
