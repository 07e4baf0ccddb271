package router

import (
	"time"

	tg "github.com/m3rciful/markbot/core/telegram"
	"github.com/m3rciful/markbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// PhotoRoute wraps the application photo handler with the shared middleware
// chain and summary logging.
func PhotoRoute(handler tele.HandlerFunc) tg.Route {
	h := func(c tele.Context) error {
		start := time.Now()
		return handleWithSummary(c, "photo", start, "", "", func() error {
			return handler(c)
		})
	}
	return tg.Route{
		Endpoint: tele.OnPhoto,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(h)),
	}
}
