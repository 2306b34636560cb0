package demand

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

type memoryStates struct {
	mu      sync.Mutex
	states  map[string]domain.AlertState
	loadErr error
}

func newMemoryStates() *memoryStates {
	return &memoryStates{states: map[string]domain.AlertState{}}
}

func (m *memoryStates) GetAlertState(_ context.Context, guildID, serverID string) (*domain.AlertState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	s, ok := m.states[guildID+"/"+serverID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memoryStates) SaveAlertState(_ context.Context, s domain.AlertState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[s.GuildID+"/"+s.ServerID] = s
	return nil
}

type memoryCooldowns struct {
	mu    sync.Mutex
	times map[string]time.Time
}

func (m *memoryCooldowns) GetLastCooldown(_ context.Context, scopeID, action string) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.times[scopeID+action]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memoryCooldowns) UpdateCooldown(_ context.Context, scopeID, action string, ts time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.times[scopeID+action] = ts
	return nil
}

func (m *memoryCooldowns) DeleteCooldown(_ context.Context, scopeID, action string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.times, scopeID+action)
	return nil
}

// recordingNotifier captures deliveries and fails for configured users
type recordingNotifier struct {
	mu        sync.Mutex
	posts     []string
	dms       []string
	failUsers map[string]bool
	postErr   error
}

func (r *recordingNotifier) PostChannel(_ context.Context, channelID string, _ Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.postErr != nil {
		return r.postErr
	}
	r.posts = append(r.posts, channelID)
	return nil
}

func (r *recordingNotifier) SendDM(_ context.Context, userID string, _ Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUsers[userID] {
		return errors.New("cannot send messages to this user")
	}
	r.dms = append(r.dms, userID)
	return nil
}

func newTestTracker(states *memoryStates, notifier *recordingNotifier) *Tracker {
	cds := cooldown.NewService(&memoryCooldowns{times: map[string]time.Time{}}, nil, cooldown.Config{})
	return NewTracker(states, cds, notifier, 0)
}

func events(crops ...string) []domain.DemandEvent {
	out := make([]domain.DemandEvent, 0, len(crops))
	for _, c := range crops {
		out = append(out, domain.DemandEvent{Crop: c, DurationHours: 12, Multiplier: 1.4, BonusPercent: 40})
	}
	return out
}

func TestEvaluate_ReplacesNotUnion(t *testing.T) {
	ctx := context.Background()
	states := newMemoryStates()
	tr := newTestTracker(states, &recordingNotifier{})

	_, err := tr.Evaluate(ctx, "g", "s", events("A", "B"))
	require.NoError(t, err)

	eval, err := tr.Evaluate(ctx, "g", "s", events("B", "C"))
	require.NoError(t, err)

	assert.Equal(t, []string{"C"}, domain.Crops(eval.New))
	assert.Equal(t, []string{"A", "B"}, eval.Previous)

	stored, err := states.GetAlertState(ctx, "g", "s")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, stored.Crops)
}

func TestEvaluate_FirstObservationAllNew(t *testing.T) {
	tr := newTestTracker(newMemoryStates(), &recordingNotifier{})

	eval, err := tr.Evaluate(context.Background(), "g", "s", events("WHEAT", "CANOLA"))
	require.NoError(t, err)

	assert.True(t, eval.FirstObservation)
	assert.Equal(t, []string{"WHEAT", "CANOLA"}, domain.Crops(eval.New))
}

func TestEvaluate_EmptySetStoredAndReappearanceIsNew(t *testing.T) {
	ctx := context.Background()
	states := newMemoryStates()
	tr := newTestTracker(states, &recordingNotifier{})

	_, err := tr.Evaluate(ctx, "g", "s", events("WHEAT"))
	require.NoError(t, err)

	eval, err := tr.Evaluate(ctx, "g", "s", nil)
	require.NoError(t, err)
	assert.Empty(t, eval.New)
	stored, _ := states.GetAlertState(ctx, "g", "s")
	assert.Empty(t, stored.Crops)
	assert.True(t, stored.Seen)

	eval, err = tr.Evaluate(ctx, "g", "s", events("WHEAT"))
	require.NoError(t, err)
	assert.Equal(t, []string{"WHEAT"}, domain.Crops(eval.New))
	assert.False(t, eval.FirstObservation)
}

func TestEvaluate_IdentityIsCropOnly(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(newMemoryStates(), &recordingNotifier{})

	_, err := tr.Evaluate(ctx, "g", "s", []domain.DemandEvent{{Crop: "WHEAT", Multiplier: 1.2, DurationHours: 5}})
	require.NoError(t, err)

	eval, err := tr.Evaluate(ctx, "g", "s", []domain.DemandEvent{
		{Crop: "WHEAT", Multiplier: 1.8, DurationHours: 2},
		{Crop: "WHEAT", Multiplier: 1.9, DurationHours: 1},
	})
	require.NoError(t, err)
	assert.Empty(t, eval.New)
	assert.Equal(t, []string{"WHEAT"}, eval.Current, "duplicates collapse by crop")
}

func TestEvaluate_ScopedPerGuildAndServer(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(newMemoryStates(), &recordingNotifier{})

	_, err := tr.Evaluate(ctx, "g1", "s", events("WHEAT"))
	require.NoError(t, err)

	eval, err := tr.Evaluate(ctx, "g2", "s", events("WHEAT"))
	require.NoError(t, err)
	assert.Len(t, eval.New, 1)

	eval, err = tr.Evaluate(ctx, "g1", "other", events("WHEAT"))
	require.NoError(t, err)
	assert.Len(t, eval.New, 1)
}

func TestEvaluate_LoadErrorLeavesStateAlone(t *testing.T) {
	states := newMemoryStates()
	states.loadErr = errors.New("read failed")
	tr := newTestTracker(states, &recordingNotifier{})

	_, err := tr.Evaluate(context.Background(), "g", "s", events("A"))
	require.Error(t, err)
	assert.ErrorIs(t, err, states.loadErr)
	assert.Empty(t, states.states)
}

func TestNotify_CooldownOnePostDMsUnaffected(t *testing.T) {
	ctx := context.Background()
	states := newMemoryStates()
	notifier := &recordingNotifier{}
	tr := newTestTracker(states, notifier)
	alerts := domain.AlertConfig{
		Enabled:     true,
		ChannelID:   "chan",
		Cooldown:    time.Hour,
		Subscribers: []string{"u1", "u2"},
	}

	first := tr.Notify(ctx, alerts, Notification{GuildID: "g", ServerID: "s", ServerName: "Main", Events: events("A")})
	second := tr.Notify(ctx, alerts, Notification{GuildID: "g", ServerID: "s", ServerName: "Main", Events: events("B")})

	assert.Equal(t, BroadcastSent, first.Broadcast)
	assert.Equal(t, BroadcastSuppressed, second.Broadcast)
	assert.Greater(t, second.CooldownRemaining, time.Duration(0))
	assert.Equal(t, []string{"chan"}, notifier.posts, "exactly one channel post")
	assert.Equal(t, []string{"u1", "u2", "u1", "u2"}, notifier.dms, "direct messages ignore the cooldown")
	assert.Equal(t, 2, second.DMSucceeded)
}

func TestNotify_DMFailuresIsolated(t *testing.T) {
	notifier := &recordingNotifier{failUsers: map[string]bool{"blocked": true}}
	tr := newTestTracker(newMemoryStates(), notifier)
	alerts := domain.AlertConfig{Subscribers: []string{"a", "blocked", "b"}}

	report := tr.Notify(context.Background(), alerts, Notification{GuildID: "g", Events: events("A")})

	assert.Equal(t, BroadcastSkipped, report.Broadcast, "no alert channel configured")
	assert.Equal(t, 2, report.DMSucceeded)
	assert.Equal(t, 1, report.DMFailed)
	assert.Equal(t, []string{"a", "b"}, notifier.dms)
}

func TestNotify_FailedPostDoesNotStartCooldown(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{postErr: errors.New("missing access")}
	tr := newTestTracker(newMemoryStates(), notifier)
	alerts := domain.AlertConfig{Enabled: true, ChannelID: "chan", Cooldown: time.Hour}
	n := Notification{GuildID: "g", Events: events("A")}

	report := tr.Notify(ctx, alerts, n)
	assert.Equal(t, BroadcastFailed, report.Broadcast)
	require.Error(t, report.BroadcastErr)

	notifier.postErr = nil
	report = tr.Notify(ctx, alerts, n)
	assert.Equal(t, BroadcastSent, report.Broadcast)
}

func TestNotify_StampsLastNotified(t *testing.T) {
	ctx := context.Background()
	states := newMemoryStates()
	tr := newTestTracker(states, &recordingNotifier{})

	_, err := tr.Evaluate(ctx, "g", "s", events("A"))
	require.NoError(t, err)

	at := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	tr.Notify(ctx, domain.AlertConfig{Enabled: true, ChannelID: "c"}, Notification{GuildID: "g", ServerID: "s", Events: events("A"), ObservedAt: at})

	stored, err := states.GetAlertState(ctx, "g", "s")
	require.NoError(t, err)
	require.NotNil(t, stored.LastNotified)
	assert.Equal(t, at, *stored.LastNotified)

	_, err = tr.Evaluate(ctx, "g", "s", events("A", "B"))
	require.NoError(t, err)
	stored, _ = states.GetAlertState(ctx, "g", "s")
	require.NotNil(t, stored.LastNotified, "evaluation keeps the broadcast stamp")
}

func TestNotify_NoEventsNoop(t *testing.T) {
	notifier := &recordingNotifier{}
	tr := newTestTracker(newMemoryStates(), notifier)

	report := tr.Notify(context.Background(), domain.AlertConfig{Enabled: true, ChannelID: "c", Subscribers: []string{"u"}}, Notification{GuildID: "g"})

	assert.Equal(t, BroadcastSkipped, report.Broadcast)
	assert.Empty(t, notifier.posts)
	assert.Empty(t, notifier.dms)
}

func TestNotify_DMPacingHonorsContext(t *testing.T) {
	notifier := &recordingNotifier{}
	cds := cooldown.NewService(&memoryCooldowns{times: map[string]time.Time{}}, nil, cooldown.Config{})
	tr := NewTracker(newMemoryStates(), cds, notifier, 0.001)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	report := tr.Notify(ctx, domain.AlertConfig{Subscribers: []string{"u1", "u2", "u3"}}, Notification{GuildID: "g", Events: events("A")})

	assert.Equal(t, 1, report.DMSucceeded, "burst of one, then the limiter would wait far past the deadline")
	assert.Equal(t, 2, report.DMFailed)
}

func TestNotify_DMPacingIsPerGuild(t *testing.T) {
	notifier := &recordingNotifier{}
	cds := cooldown.NewService(&memoryCooldowns{times: map[string]time.Time{}}, nil, cooldown.Config{})
	tr := NewTracker(newMemoryStates(), cds, notifier, 0.001)

	notify := func(guildID string) NotifyReport {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		return tr.Notify(ctx, domain.AlertConfig{Subscribers: []string{guildID + "-u1", guildID + "-u2"}},
			Notification{GuildID: guildID, Events: events("A")})
	}

	first := notify("g1")
	assert.Equal(t, 1, first.DMSucceeded)
	assert.Equal(t, 1, first.DMFailed)

	other := notify("g2")
	assert.Equal(t, 1, other.DMSucceeded, "another guild's backlog does not delay this one")

	again := notify("g1")
	assert.Equal(t, 0, again.DMSucceeded)
	assert.Equal(t, 2, again.DMFailed)

	assert.ElementsMatch(t, []string{"g1-u1", "g2-u1"}, notifier.dms)
}

func TestNotification_Text(t *testing.T) {
	n := Notification{ServerName: "Main", Events: []domain.DemandEvent{{Crop: "WHEAT", DurationHours: 11.6, BonusPercent: 40}}}
	assert.Equal(t, "New great demand on Main\n• Wheat: +40% for 12 h", n.Text())
}
