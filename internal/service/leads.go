// Package service implements the lead intake flow: form transitions, the
// terminal persist-and-notify action, and the admin listing.
package service

import (
	"context"
	"fmt"

	"log/slog"

	"leadbot/internal/domain"
	"leadbot/internal/logger"
	"leadbot/internal/notify"
	"leadbot/internal/telegram/state"
)

// RenderNotifyFunc formats the operator notification for a stored lead.
type RenderNotifyFunc func(domain.Lead) string

// Intake drives the lead form conversation. All transitions go through it so
// the terminal action runs exactly once per completed form, and only with a
// fully collected draft.
type Intake struct {
	repo         domain.LeadRepository
	notifier     *notify.Notifier
	sessions     state.Manager
	renderNotify RenderNotifyFunc
}

// NewIntake wires the intake service.
func NewIntake(repo domain.LeadRepository, notifier *notify.Notifier, sessions state.Manager, renderNotify RenderNotifyFunc) *Intake {
	return &Intake{
		repo:         repo,
		notifier:     notifier,
		sessions:     sessions,
		renderNotify: renderNotify,
	}
}

// Reset unconditionally returns the user to idle with an empty draft.
// Issued by the start command from any state.
func (s *Intake) Reset(userID int64) {
	s.sessions.Clear(userID)
}

// Begin opens a fresh form: clears any leftover draft and awaits the name.
func (s *Intake) Begin(userID int64) {
	s.sessions.Clear(userID)
	s.sessions.SetState(userID, state.StateAwaitingName)
}

// SetName stores the name verbatim and advances to the phone step.
func (s *Intake) SetName(userID int64, text string) {
	s.sessions.UpdateDraft(userID, func(d *state.LeadDraft) { d.Name = text })
	s.sessions.SetState(userID, state.StateAwaitingPhone)
}

// SetPhone stores the phone verbatim and advances to the comment step.
func (s *Intake) SetPhone(userID int64, text string) {
	s.sessions.UpdateDraft(userID, func(d *state.LeadDraft) { d.Phone = text })
	s.sessions.SetState(userID, state.StateAwaitingComment)
}

// State returns the user's current conversation state.
func (s *Intake) State(userID int64) state.State {
	return s.sessions.GetState(userID)
}

// InProgress reports whether the user has an active form.
func (s *Intake) InProgress(userID int64) bool {
	return s.sessions.InProgress(userID)
}

// Complete runs the terminal transition: persist the lead built from the draft
// plus the comment, then notify the recipients. If the insert fails, the
// session is left untouched (state and draft kept) so the user's next message
// retries the step, and no notification goes out.
func (s *Intake) Complete(ctx context.Context, userID int64, comment string) (domain.Lead, error) {
	draft := s.sessions.Draft(userID)
	lead := domain.Lead{
		Name:    draft.Name,
		Phone:   draft.Phone,
		Comment: comment,
	}

	id, err := s.repo.Insert(ctx, lead)
	if err != nil {
		logger.SVCLeads.Error("lead submit failed",
			slog.String("event", "lead.submit"),
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return domain.Lead{}, fmt.Errorf("complete lead form: %w", err)
	}
	lead.ID = id

	summary := s.notifier.Broadcast(ctx, s.renderNotify(lead))
	logger.SVCLeads.Info("lead submitted",
		slog.String("event", "lead.submit"),
		slog.String("status", "ok"),
		slog.Int64("lead_id", id),
		slog.Int64("user_id", userID),
		slog.Int("notify_attempted", summary.Attempted),
		slog.Int("notify_succeeded", summary.Succeeded),
		slog.Int("notify_failed", summary.Failed),
	)

	s.sessions.Clear(userID)
	return lead, nil
}

// Recent returns up to limit most recent leads for the admin listing.
func (s *Intake) Recent(ctx context.Context, limit int) ([]domain.Lead, error) {
	leads, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent leads: %w", err)
	}
	return leads, nil
}
