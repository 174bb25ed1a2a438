package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "leadbot/internal/telegram"
	"leadbot/internal/telegram/middleware"
)

// FSM is the minimal interface required from the session manager.
type FSM interface {
	InProgress(userID int64) bool
}

// TextOptions wires the text route: the command registry, literal button
// labels, and the handler invoked for users with an active conversation.
type TextOptions struct {
	Registry     *tg.Registry
	Labels       map[string]tele.HandlerFunc
	FSM          FSM
	StateHandler tele.HandlerFunc
	// Access guards AdminOnly commands dispatched from this route the same
	// way CommandRoutes guards the command endpoints.
	Access middleware.AccessOptions
}

// TextRoute builds the tele.OnText handler implementing the dispatch
// precedence. At most one handler fires per update; unmatched text is dropped
// without a reply.
func TextRoute(opts TextOptions) tg.Route {
	isCommand := func(text string) bool {
		if opts.Registry == nil {
			return false
		}
		_, cmd, ok := opts.Registry.LookupCommand(text)
		return ok && cmd.Handler != nil
	}
	isLabel := func(text string) bool {
		_, ok := opts.Labels[text]
		return ok
	}

	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		inProgress := opts.FSM != nil && opts.FSM.InProgress(c.Sender().ID) && opts.StateHandler != nil

		switch Resolve(text, isCommand, isLabel, inProgress) {
		case DecisionCommand:
			key, cmd, _ := opts.Registry.LookupCommand(text)
			h := cmd.Handler
			if cmd.AdminOnly {
				h = middleware.RecipientOnly(opts.Access)(h)
			}
			return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
				return h(c)
			})
		case DecisionLabel:
			return handleWithSummary(c, "label."+normalizeHandlerName(text), start, func() error {
				return opts.Labels[text](c)
			})
		case DecisionState:
			return handleWithSummary(c, "form_input", start, func() error {
				return opts.StateHandler(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
