package bot

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"leadbot/internal/config"
	"leadbot/internal/notify"
	"leadbot/internal/service"
	tg "leadbot/internal/telegram"
	"leadbot/internal/telegram/middleware"
	"leadbot/internal/telegram/router"
	"leadbot/internal/telegram/state"
)

// Wire assembles the command registry, routes, and middleware chain for the
// lead intake bot.
func Wire(cfg *config.Config, svc *service.Intake, sessions state.Manager, recipients notify.Recipients) tg.RunOptions {
	h := NewHandlers(svc)

	reg := tg.NewRegistry()
	reg.RegisterCommand("/start", tg.Command{
		Handler:     h.Start,
		Description: "Начать оформление заявки",
	})
	reg.RegisterCommand("/list", tg.Command{
		Handler:     h.List,
		Description: "Последние заявки",
		AdminOnly:   true,
	})

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		Allowed:       recipients,
		OnAdminReject: h.Denied,
	})
	routes = append(routes, router.TextRoute(router.TextOptions{
		Registry: reg,
		Labels: map[string]tele.HandlerFunc{
			ButtonLeaveRequest: h.LeaveRequest,
		},
		FSM:          sessions,
		StateHandler: h.FormInput,
		Access: middleware.AccessOptions{
			Allowed:  recipients,
			OnReject: h.Denied,
		},
	}))

	return tg.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(cfg),
		Routes:      routes,
	}
}

// NotifySender adapts the bot's raw send capability to the notifier contract.
func NotifySender(b *tele.Bot) notify.SendFunc {
	return func(_ context.Context, chatID int64, text string) error {
		_, err := b.Send(tele.ChatID(chatID), text)
		return err
	}
}
