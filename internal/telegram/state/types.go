// Package state holds per-user conversation sessions for the lead intake form.
package state

// State identifies a step of the lead form conversation.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
	// StateAwaitingName means the next message is stored as the lead name.
	StateAwaitingName State = "awaiting_name"
	// StateAwaitingPhone means the next message is stored as the lead phone.
	StateAwaitingPhone State = "awaiting_phone"
	// StateAwaitingComment means the next message completes the form.
	StateAwaitingComment State = "awaiting_comment"
)

// LeadDraft accumulates form fields as the conversation advances. A fixed
// struct instead of a loose map: the terminal transition reads exactly these
// fields and nothing else.
type LeadDraft struct {
	Name  string
	Phone string
}

// Session stores the conversation state and the draft collected so far.
type Session struct {
	State State
	Draft LeadDraft
}

// Manager orchestrates user sessions and state transitions. One session per
// user id; concurrent events for the same user are last-write-wins.
type Manager interface {
	GetState(userID int64) State
	SetState(userID int64, st State)
	Draft(userID int64) LeadDraft
	UpdateDraft(userID int64, fn func(*LeadDraft))
	InProgress(userID int64) bool
	Clear(userID int64)
}
