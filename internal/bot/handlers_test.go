package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"leadbot/internal/config"
	"leadbot/internal/domain"
	"leadbot/internal/notify"
	"leadbot/internal/service"
	"leadbot/internal/telegram/state"
)

// fakeContext implements the slice of tele.Context the handlers touch.
// Unused methods come from the embedded interface and panic if reached.
type fakeContext struct {
	tele.Context
	sender *tele.User
	store  map[string]any
	sent   []string
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID},
		store:  map[string]any{"text": text},
	}
}

func (c *fakeContext) Sender() *tele.User  { return c.sender }
func (c *fakeContext) Chat() *tele.Chat    { return &tele.Chat{ID: c.sender.ID} }
func (c *fakeContext) Update() tele.Update { return tele.Update{ID: 1} }
func (c *fakeContext) Text() string        { s, _ := c.store["text"].(string); return s }
func (c *fakeContext) Set(k string, v any) { c.store[k] = v }
func (c *fakeContext) Get(k string) any    { return c.store[k] }

func (c *fakeContext) Send(what any, _ ...any) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return nil
}

type memRepo struct {
	leads   []domain.Lead
	queries int
}

func (r *memRepo) Insert(_ context.Context, lead domain.Lead) (int64, error) {
	lead.ID = int64(len(r.leads) + 1)
	r.leads = append(r.leads, lead)
	return lead.ID, nil
}

func (r *memRepo) ListRecent(_ context.Context, limit int) ([]domain.Lead, error) {
	r.queries++
	out := []domain.Lead{}
	for i := len(r.leads) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.leads[i])
	}
	return out, nil
}

type testBot struct {
	repo     *memRepo
	sessions state.Manager
	notified []int64
	routes   map[any]tele.HandlerFunc
}

func newTestBot(t *testing.T, adminID, creatorID int64) *testBot {
	t.Helper()

	tb := &testBot{
		repo:     &memRepo{},
		sessions: state.NewMemoryManager(),
		routes:   map[any]tele.HandlerFunc{},
	}

	recipients := notify.NewRecipients(adminID, creatorID)
	notifier := notify.New(func(_ context.Context, chatID int64, _ string) error {
		tb.notified = append(tb.notified, chatID)
		return nil
	}, recipients)
	svc := service.NewIntake(tb.repo, notifier, tb.sessions, RenderNotification)

	cfg := &config.Config{}
	cfg.Telegram.Token = "123:test"
	require.NoError(t, config.Normalize(cfg))

	opts := Wire(cfg, svc, tb.sessions, recipients)
	for _, r := range opts.Routes {
		tb.routes[r.Endpoint] = r.Handler
	}
	require.Contains(t, tb.routes, "/start")
	require.Contains(t, tb.routes, "/list")
	require.Contains(t, tb.routes, tele.OnText)
	return tb
}

// send routes a message the way telebot would: registered command endpoints
// first, everything else through the text route.
func (tb *testBot) send(t *testing.T, userID int64, text string) []string {
	t.Helper()

	c := newFakeContext(userID, text)
	h, ok := tb.routes[text]
	if !ok {
		h = tb.routes[tele.OnText]
	}
	require.NoError(t, h(c))
	return c.sent
}

func TestEndToEndHappyPath(t *testing.T) {
	tb := newTestBot(t, 100, 200)
	const user = int64(1)

	replies := tb.send(t, user, "/start")
	require.Equal(t, []string{TextGreeting}, replies)

	replies = tb.send(t, user, ButtonLeaveRequest)
	require.Equal(t, []string{TextAskName}, replies)

	replies = tb.send(t, user, "Alice")
	require.Equal(t, []string{TextAskPhone}, replies)

	replies = tb.send(t, user, "555-0100")
	require.Equal(t, []string{TextAskNote}, replies)

	replies = tb.send(t, user, "call after 5pm")
	require.Equal(t, []string{TextThankYou}, replies)

	require.Len(t, tb.repo.leads, 1)
	lead := tb.repo.leads[0]
	assert.Equal(t, "Alice", lead.Name)
	assert.Equal(t, "555-0100", lead.Phone)
	assert.Equal(t, "call after 5pm", lead.Comment)

	assert.Equal(t, []int64{100, 200}, tb.notified)
	assert.Equal(t, state.StateIdle, tb.sessions.GetState(user))
}

func TestStartMidFormResets(t *testing.T) {
	tb := newTestBot(t, 100, 0)
	const user = int64(1)

	tb.send(t, user, ButtonLeaveRequest)
	tb.send(t, user, "Alice")

	replies := tb.send(t, user, "/start")
	require.Equal(t, []string{TextGreeting}, replies)
	assert.Equal(t, state.StateIdle, tb.sessions.GetState(user))
	assert.Equal(t, state.LeadDraft{}, tb.sessions.Draft(user))
	assert.Empty(t, tb.repo.leads)
}

func TestIdleFreeTextSilentlyDropped(t *testing.T) {
	tb := newTestBot(t, 100, 0)

	replies := tb.send(t, 1, "hello there")
	assert.Empty(t, replies)
	assert.Empty(t, tb.repo.leads)
}

func TestListDeniedForOutsider(t *testing.T) {
	tb := newTestBot(t, 100, 200)

	replies := tb.send(t, 999, "/list")
	require.Equal(t, []string{TextListDenied}, replies)
	assert.Zero(t, tb.repo.queries, "denied sender must not trigger a store query")
}

func TestListEmptyStore(t *testing.T) {
	tb := newTestBot(t, 100, 0)

	replies := tb.send(t, 100, "/list")
	require.Equal(t, []string{TextNoLeads}, replies)
	assert.Equal(t, 1, tb.repo.queries)
}

func TestListRendersLeadsForCreator(t *testing.T) {
	tb := newTestBot(t, 100, 200)
	const user = int64(1)

	tb.send(t, user, ButtonLeaveRequest)
	tb.send(t, user, "Alice")
	tb.send(t, user, "555-0100")
	tb.send(t, user, "")

	replies := tb.send(t, 200, "/list")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], TextListHeader)
	assert.Contains(t, replies[0], "Имя: Alice")
	assert.Contains(t, replies[0], "Телефон: 555-0100")
}

func TestDistinctUsersFillIndependentForms(t *testing.T) {
	tb := newTestBot(t, 100, 0)

	tb.send(t, 1, ButtonLeaveRequest)
	tb.send(t, 2, ButtonLeaveRequest)
	tb.send(t, 1, "Alice")
	tb.send(t, 2, "Bob")
	tb.send(t, 1, "111")
	tb.send(t, 2, "222")
	tb.send(t, 1, "from alice")
	tb.send(t, 2, "from bob")

	require.Len(t, tb.repo.leads, 2)
	names := []string{tb.repo.leads[0].Name, tb.repo.leads[1].Name}
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, names)
}

func TestDuplicateRecipientNotifiedOnce(t *testing.T) {
	tb := newTestBot(t, 100, 100)
	const user = int64(1)

	tb.send(t, user, ButtonLeaveRequest)
	tb.send(t, user, "Alice")
	tb.send(t, user, "1")
	tb.send(t, user, "")

	assert.Equal(t, []int64{100}, tb.notified)
}

func TestBareCommandWordIsNotACommand(t *testing.T) {
	tb := newTestBot(t, 100, 200)

	// Without the slash prefix "list" is ordinary text: for an idle outsider
	// it is dropped, no listing runs, and the store stays untouched.
	replies := tb.send(t, 999, "list")
	assert.Empty(t, replies)
	assert.Zero(t, tb.repo.queries)

	replies = tb.send(t, 999, "start")
	assert.Empty(t, replies)
}

func TestTextRouteGatesAdminCommands(t *testing.T) {
	tb := newTestBot(t, 100, 0)

	// A slash command arriving on the text route is gated the same way as
	// its command endpoint.
	c := newFakeContext(999, "/list")
	require.NoError(t, tb.routes[tele.OnText](c))
	require.Equal(t, []string{TextListDenied}, c.sent)
	assert.Zero(t, tb.repo.queries)

	c = newFakeContext(100, "/list")
	require.NoError(t, tb.routes[tele.OnText](c))
	require.Equal(t, []string{TextNoLeads}, c.sent)
	assert.Equal(t, 1, tb.repo.queries)
}

func TestCommandWordsStoredVerbatimMidForm(t *testing.T) {
	tb := newTestBot(t, 100, 0)
	const user = int64(1)

	tb.send(t, user, ButtonLeaveRequest)

	replies := tb.send(t, user, "start")
	require.Equal(t, []string{TextAskPhone}, replies, "bare command word is a form answer")

	replies = tb.send(t, user, "list")
	require.Equal(t, []string{TextAskNote}, replies)
	assert.Zero(t, tb.repo.queries)

	tb.send(t, user, "done")
	require.Len(t, tb.repo.leads, 1)
	assert.Equal(t, "start", tb.repo.leads[0].Name)
	assert.Equal(t, "list", tb.repo.leads[0].Phone)
}

func TestLabelRestartsFormMidway(t *testing.T) {
	tb := newTestBot(t, 100, 0)
	const user = int64(1)

	tb.send(t, user, ButtonLeaveRequest)
	tb.send(t, user, "Alice")

	// The literal label outranks state-bound input, so it reopens the form
	// instead of being stored as the phone.
	replies := tb.send(t, user, ButtonLeaveRequest)
	require.Equal(t, []string{TextAskName}, replies)
	assert.Equal(t, state.StateAwaitingName, tb.sessions.GetState(user))
	assert.Equal(t, state.LeadDraft{}, tb.sessions.Draft(user), "draft cleared on restart")

	tb.send(t, user, "Bob")
	tb.send(t, user, "2")
	tb.send(t, user, "done")
	require.Len(t, tb.repo.leads, 1)
	assert.Equal(t, "Bob", tb.repo.leads[0].Name)
}
