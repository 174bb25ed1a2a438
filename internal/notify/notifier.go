package notify

import (
	"context"

	"log/slog"

	"leadbot/internal/logger"
)

// SendFunc delivers a text message to a single chat identity.
type SendFunc func(ctx context.Context, chatID int64, text string) error

// Result captures the outcome of one delivery attempt.
type Result struct {
	ChatID int64
	Err    error
}

// Summary aggregates a fan-out: every recipient gets exactly one attempt.
type Summary struct {
	Attempted int
	Succeeded int
	Failed    int
	Results   []Result
}

// Notifier fans a message out to the recipient set. Individual delivery
// failures are logged and recorded in the summary but never propagated, so a
// broadcast as a whole cannot fail.
type Notifier struct {
	send       SendFunc
	recipients Recipients
}

// New builds a Notifier over the given send capability and recipient set.
func New(send SendFunc, recipients Recipients) *Notifier {
	return &Notifier{send: send, recipients: recipients}
}

// Recipients exposes the configured recipient set.
func (n *Notifier) Recipients() Recipients {
	return n.recipients
}

// Broadcast attempts exactly one delivery of text per recipient.
func (n *Notifier) Broadcast(ctx context.Context, text string) Summary {
	s := Summary{Results: make([]Result, 0, len(n.recipients))}
	for _, chatID := range n.recipients {
		err := n.send(ctx, chatID, text)
		s.Attempted++
		if err != nil {
			s.Failed++
			logger.LogEvent(ctx, logger.Notify, slog.LevelWarn, "deliver.fail",
				slog.Int64("chat_id", chatID),
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
		} else {
			s.Succeeded++
		}
		s.Results = append(s.Results, Result{ChatID: chatID, Err: err})
	}
	return s
}
