package usecase

import (
	"context"
	"testing"
	"time"

	"syndl/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gateFixture struct {
	gates   GateService
	grants  GrantService
	catalog CatalogService
	clock   *fakeClock
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	local := newMemLocal()
	clock := newFakeClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	repo := &repository.Repository{Local: local}

	catalog := NewCatalogService(repo, clock, zap.NewNop())
	catalog.Initialize(context.Background(), func() {})

	grants := NewGrantService(local, clock, 24*time.Hour, zap.NewNop())
	gates := NewGateService(catalog, grants, clock, GateConfig{
		PreviewSeconds: 60,
		PollChecks:     60,
		PollInterval:   time.Second,
		SessionTTL:     time.Hour,
	}, zap.NewNop())

	return &gateFixture{gates: gates, grants: grants, catalog: catalog, clock: clock}
}

func (f *gateFixture) lockedGate(t *testing.T) *Gate {
	t.Helper()
	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", false)
	require.NoError(t, err)
	require.NoError(t, gate.Start())
	gate.Position(60)
	require.Equal(t, StateLocked, gate.State())
	return gate
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msg)
}

func TestGateUnknownMovie(t *testing.T) {
	f := newGateFixture(t)

	_, err := f.gates.CreateSession(context.Background(), "nope", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGateFreshSessionIsIdle(t *testing.T) {
	f := newGateFixture(t)

	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", false)
	require.NoError(t, err)

	assert.Equal(t, StateIdle, gate.State())

	desc := gate.Describe()
	assert.NotEmpty(t, desc.PreviewURL)
	assert.Empty(t, desc.FullMovieURL, "full URL must stay hidden while gated")
	assert.Empty(t, desc.LockerURL)
}

func TestGateUnlockAssertionAtEntry(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	gate, err := f.gates.CreateSession(ctx, "avatar-fire-and-ash", true)
	require.NoError(t, err)

	assert.Equal(t, StateUnlocked, gate.State())
	assert.True(t, f.grants.HasValidGrant(ctx, "avatar-fire-and-ash"), "entry assertion issues a grant")
	assert.NotEmpty(t, gate.Describe().FullMovieURL)
}

func TestGateValidGrantSkipsPreview(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	f.grants.IssueGrant(ctx, "avatar-fire-and-ash")

	gate, err := f.gates.CreateSession(ctx, "avatar-fire-and-ash", false)
	require.NoError(t, err)
	assert.Equal(t, StateUnlocked, gate.State())
}

func TestGateExpiredGrantStartsIdle(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	f.grants.IssueGrant(ctx, "avatar-fire-and-ash")
	f.clock.Advance(25 * time.Hour)

	gate, err := f.gates.CreateSession(ctx, "avatar-fire-and-ash", false)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, gate.State())
}

func TestGateStart(t *testing.T) {
	f := newGateFixture(t)

	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", false)
	require.NoError(t, err)

	require.NoError(t, gate.Start())
	assert.Equal(t, StatePreviewing, gate.State())

	err = gate.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition")
}

func TestGateLocksAtThreshold(t *testing.T) {
	f := newGateFixture(t)

	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", false)
	require.NoError(t, err)
	require.NoError(t, gate.Start())

	gate.Position(45)
	assert.Equal(t, StatePreviewing, gate.State())
	assert.Equal(t, 75.0, gate.Describe().Progress)

	gate.Position(60)
	assert.Equal(t, StateLocked, gate.State())
	assert.Equal(t, 100.0, gate.Describe().Progress)
}

func TestGateProgressCappedAt100(t *testing.T) {
	f := newGateFixture(t)

	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", false)
	require.NoError(t, err)
	require.NoError(t, gate.Start())

	gate.Position(90)
	desc := gate.Describe()
	assert.Equal(t, 100.0, desc.Progress)
	assert.Equal(t, 60.0, desc.Position, "position display clamps to the preview window")
}

func TestGatePreviewEndedLocks(t *testing.T) {
	f := newGateFixture(t)

	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", false)
	require.NoError(t, err)
	require.NoError(t, gate.Start())

	gate.PreviewEnded()
	assert.Equal(t, StateLocked, gate.State())
}

func TestGateSeekClampsWhileGated(t *testing.T) {
	f := newGateFixture(t)

	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", false)
	require.NoError(t, err)
	require.NoError(t, gate.Start())

	assert.Equal(t, 60.0, gate.Seek(90))
	assert.Equal(t, 30.0, gate.Seek(30))
}

func TestGateSeekUnclampedOnceUnlocked(t *testing.T) {
	f := newGateFixture(t)

	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", true)
	require.NoError(t, err)

	assert.Equal(t, 3600.0, gate.Seek(3600))
}

func TestGateUnlockRequiresLockedState(t *testing.T) {
	f := newGateFixture(t)

	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", false)
	require.NoError(t, err)

	_, err = gate.Unlock()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition")
}

func TestGateUnlockStartsVerification(t *testing.T) {
	f := newGateFixture(t)
	gate := f.lockedGate(t)

	lockerURL, err := gate.Unlock()
	require.NoError(t, err)
	assert.NotEmpty(t, lockerURL)
	assert.Equal(t, StateAwaitingVerification, gate.State())

	desc := gate.Describe()
	assert.Equal(t, lockerURL, desc.LockerURL)
	assert.Empty(t, desc.FullMovieURL)
}

func TestGateCallbackObservedAtNextCheck(t *testing.T) {
	f := newGateFixture(t)
	gate := f.lockedGate(t)

	_, err := gate.Unlock()
	require.NoError(t, err)

	gate.Callback()
	assert.Equal(t, StateAwaitingVerification, gate.State(), "assertion alone does not transition")

	f.clock.Tick()
	eventually(t, func() bool { return gate.State() == StateUnlocked }, "poll must observe the assertion")

	assert.True(t, f.grants.HasValidGrant(context.Background(), "avatar-fire-and-ash"))
	assert.NotEmpty(t, gate.Describe().FullMovieURL)
}

func TestGateTickRightAfterUnlockIsCounted(t *testing.T) {
	f := newGateFixture(t)
	gate := f.lockedGate(t)

	_, err := gate.Unlock()
	require.NoError(t, err)

	// The poll ticker must exist by the time Unlock returns, so a tick fired
	// immediately afterwards is never lost.
	f.clock.Tick()
	eventually(t, func() bool { return gate.Checks() == 1 }, "first tick must run a check")
	assert.Equal(t, StateAwaitingVerification, gate.State())
}

func TestGatePollExhaustsAfterConfiguredChecks(t *testing.T) {
	f := newGateFixture(t)
	gate := f.lockedGate(t)

	_, err := gate.Unlock()
	require.NoError(t, err)

	for i := 0; i < 59; i++ {
		f.clock.Tick()
	}
	eventually(t, func() bool { return gate.Checks() == 59 }, "59 checks must run")
	assert.Equal(t, StateAwaitingVerification, gate.State(), "poll must not give up early")

	f.clock.Tick()
	eventually(t, func() bool { return gate.State() == StateRetryOffered }, "poll must stop at the bound")
	assert.Equal(t, 60, gate.Checks())
}

func TestGateRetryRestartsVerification(t *testing.T) {
	f := newGateFixture(t)
	gate := f.lockedGate(t)

	_, err := gate.Unlock()
	require.NoError(t, err)
	for i := 0; i < 60; i++ {
		f.clock.Tick()
	}
	eventually(t, func() bool { return gate.State() == StateRetryOffered }, "poll must exhaust")

	lockerURL, err := gate.Retry()
	require.NoError(t, err)
	assert.NotEmpty(t, lockerURL)
	assert.Equal(t, StateAwaitingVerification, gate.State())
	assert.Equal(t, 0, gate.Checks(), "retry restarts the check count")

	gate.Callback()
	f.clock.Tick()
	eventually(t, func() bool { return gate.State() == StateUnlocked }, "retry poll must observe the assertion")
}

func TestGateCancelRetryReturnsToLocked(t *testing.T) {
	f := newGateFixture(t)
	gate := f.lockedGate(t)

	_, err := gate.Unlock()
	require.NoError(t, err)
	for i := 0; i < 60; i++ {
		f.clock.Tick()
	}
	eventually(t, func() bool { return gate.State() == StateRetryOffered }, "poll must exhaust")

	require.NoError(t, gate.CancelRetry())
	assert.Equal(t, StateLocked, gate.State())

	err = gate.CancelRetry()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition")
}

func TestGateIdleSessionsSwept(t *testing.T) {
	f := newGateFixture(t)
	ctx := context.Background()

	stale, err := f.gates.CreateSession(ctx, "avatar-fire-and-ash", false)
	require.NoError(t, err)

	f.clock.Advance(30 * time.Minute)

	active, err := f.gates.CreateSession(ctx, "captain-america-brave-new-world", false)
	require.NoError(t, err)
	require.NoError(t, active.Start())

	// Past the TTL for the stale session, not for the recently touched one.
	f.clock.Advance(45 * time.Minute)

	_, err = f.gates.CreateSession(ctx, "avatar-fire-and-ash", false)
	require.NoError(t, err)

	_, found := f.gates.Session(stale.ID())
	assert.False(t, found, "untouched session must be swept")

	_, found = f.gates.Session(active.ID())
	assert.True(t, found, "recently touched session must survive")
}

func TestGateCloseSession(t *testing.T) {
	f := newGateFixture(t)

	gate, err := f.gates.CreateSession(context.Background(), "avatar-fire-and-ash", false)
	require.NoError(t, err)

	_, found := f.gates.Session(gate.ID())
	require.True(t, found)

	f.gates.CloseSession(gate.ID())
	_, found = f.gates.Session(gate.ID())
	assert.False(t, found)
}
