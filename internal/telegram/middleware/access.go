package middleware

import (
	tele "gopkg.in/telebot.v4"

	"leadbot/internal/notify"
)

// AccessOptions defines how recipient-gated checks behave.
type AccessOptions struct {
	Allowed  notify.Recipients
	OnReject tele.HandlerFunc
}

// RecipientOnly ensures only members of the recipient set reach downstream
// handlers. An empty set rejects everyone: with both operator ids disabled
// there is nobody the leads belong to.
func RecipientOnly(opts AccessOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !opts.Allowed.Contains(c.Sender().ID) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
