// Package bot contains the lead form handlers and their wiring into the
// Telegram transport.
package bot

import (
	tele "gopkg.in/telebot.v4"

	"leadbot/internal/service"
	tghelpers "leadbot/internal/telegram/helpers"
	"leadbot/internal/telegram/keyboard"
	"leadbot/internal/telegram/state"
)

// recentLeadsLimit caps the admin listing.
const recentLeadsLimit = 10

// Handlers implements the bot's conversation endpoints over the intake service.
type Handlers struct {
	svc *service.Intake
}

// NewHandlers builds the handler set.
func NewHandlers(svc *service.Intake) *Handlers {
	return &Handlers{svc: svc}
}

// Start greets the user and unconditionally resets any conversation in
// progress. Works identically from every state.
func (h *Handlers) Start(c tele.Context) error {
	h.svc.Reset(c.Sender().ID)
	return tghelpers.SendKeyboard(c, TextGreeting, keyboard.ReplyButtons([]string{ButtonLeaveRequest}))
}

// LeaveRequest opens a fresh form and asks for the name.
func (h *Handlers) LeaveRequest(c tele.Context) error {
	h.svc.Begin(c.Sender().ID)
	return tghelpers.SendText(c, TextAskName)
}

// FormInput handles free text for a user with an active form, dispatching on
// the current conversation state. Input is stored verbatim; nothing is
// validated or rejected.
func (h *Handlers) FormInput(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()

	switch h.svc.State(userID) {
	case state.StateAwaitingName:
		h.svc.SetName(userID, text)
		return tghelpers.SendText(c, TextAskPhone)
	case state.StateAwaitingPhone:
		h.svc.SetPhone(userID, text)
		return tghelpers.SendText(c, TextAskNote)
	case state.StateAwaitingComment:
		ctx := tghelpers.BuildContext(c)
		if _, err := h.svc.Complete(ctx, userID, text); err != nil {
			// No thank-you on a failed persist: acknowledging would
			// silently lose the lead. The draft is kept for a retry.
			_ = tghelpers.SendText(c, TextSaveFailed)
			return err
		}
		return tghelpers.SendText(c, TextThankYou)
	}
	return nil
}

// List replies with the most recent leads. Access is enforced by the
// recipient-gate middleware; by the time this runs the sender is an operator.
func (h *Handlers) List(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	leads, err := h.svc.Recent(ctx, recentLeadsLimit)
	if err != nil {
		return err
	}
	if len(leads) == 0 {
		return tghelpers.SendText(c, TextNoLeads)
	}
	return tghelpers.SendText(c, RenderLeads(leads))
}

// Denied is the static reply for non-operators invoking admin commands.
func (h *Handlers) Denied(c tele.Context) error {
	return tghelpers.SendText(c, TextListDenied)
}
