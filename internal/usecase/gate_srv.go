package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"syndl/internal/data/entity"
	"syndl/internal/dto/response"
	"syndl/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GateState is the playback-gate state machine position.
type GateState string

const (
	StateIdle                 GateState = "idle"
	StatePreviewing           GateState = "previewing"
	StateLocked               GateState = "locked"
	StateAwaitingVerification GateState = "awaiting_verification"
	StateRetryOffered         GateState = "retry_offered"
	StateUnlocked             GateState = "unlocked"
)

// GateConfig carries the externally observable gate numbers: the preview
// threshold, and the verification poll bound (60 checks at 1-second spacing).
// SessionTTL bounds how long an untouched session is kept; zero disables the
// sweep.
type GateConfig struct {
	PreviewSeconds int
	PollChecks     int
	PollInterval   time.Duration
	SessionTTL     time.Duration
}

// GateService manages one playback gate per viewing session.
type GateService interface {
	CreateSession(ctx context.Context, movieID string, unlockAsserted bool) (*Gate, error)
	Session(sessionID string) (*Gate, bool)
	CloseSession(sessionID string)
}

type gateService struct {
	catalog CatalogService
	grants  GrantService
	clock   Clock
	cfg     GateConfig
	log     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Gate
}

func NewGateService(catalog CatalogService, grants GrantService, clock Clock, cfg GateConfig, log *zap.Logger) GateService {
	return &gateService{
		catalog:  catalog,
		grants:   grants,
		clock:    clock,
		cfg:      cfg,
		log:      log.With(zap.String("service", "gate")),
		sessions: make(map[string]*Gate),
	}
}

func (s *gateService) CreateSession(ctx context.Context, movieID string, unlockAsserted bool) (*Gate, error) {
	movie, ok := s.catalog.GetByID(movieID)
	if !ok {
		return nil, fmt.Errorf("movie not found: %s", movieID)
	}

	gate := newGate(ctx, uuid.NewString(), movie, unlockAsserted, s.cfg, s.clock, s.grants, s.log)

	s.mu.Lock()
	s.sweepLocked()
	s.sessions[gate.ID()] = gate
	s.mu.Unlock()

	s.log.Info("Gate session created",
		zap.String("session_id", gate.ID()),
		zap.String("movie_id", movieID),
		zap.String("state", string(gate.State())),
	)
	return gate, nil
}

func (s *gateService) Session(sessionID string) (*Gate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gate, ok := s.sessions[sessionID]
	return gate, ok
}

// sweepLocked drops sessions whose last activity is older than the TTL.
// Clients that navigate away without closing their session land here.
func (s *gateService) sweepLocked() {
	if s.cfg.SessionTTL <= 0 {
		return
	}

	cutoff := s.clock.Now().Add(-s.cfg.SessionTTL)
	for id, gate := range s.sessions {
		if gate.lastTouched().Before(cutoff) {
			gate.teardown()
			delete(s.sessions, id)
			s.log.Info("Idle gate session swept", zap.String("session_id", id))
		}
	}
}

func (s *gateService) CloseSession(sessionID string) {
	s.mu.Lock()
	gate, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if ok {
		gate.teardown()
	}
}

// Gate is one session's playback gate. It plays a bounded preview, locks at
// the threshold, hands the locker URL to the consumer on unlock and polls for
// the returning unlock assertion with a bounded retry count.
type Gate struct {
	id     string
	movie  entity.Movie
	cfg    GateConfig
	clock  Clock
	grants GrantService
	log    *zap.Logger

	mu       sync.Mutex
	state    GateState
	position float64
	checks   int
	asserted bool
	touched  time.Time
	cancel   chan struct{}
}

func newGate(ctx context.Context, id string, movie entity.Movie, unlockAsserted bool, cfg GateConfig, clock Clock, grants GrantService, log *zap.Logger) *Gate {
	g := &Gate{
		id:      id,
		movie:   movie,
		cfg:     cfg,
		clock:   clock,
		grants:  grants,
		log:     log,
		state:   StateIdle,
		touched: clock.Now(),
	}

	// Entry condition, checked once before any transition: an incoming unlock
	// assertion or a still-valid grant skips the preview path entirely.
	switch {
	case unlockAsserted:
		g.state = StateUnlocked
		grants.IssueGrant(ctx, movie.ID)
	case grants.HasValidGrant(ctx, movie.ID):
		g.state = StateUnlocked
	}

	return g
}

func (g *Gate) ID() string {
	return g.id
}

func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gate) lastTouched() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.touched
}

func (g *Gate) touchLocked() {
	g.touched = g.clock.Now()
}

// Start begins preview playback.
func (g *Gate) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.state != StateIdle {
		return fmt.Errorf("invalid transition: cannot start preview from %s", g.state)
	}
	g.state = StatePreviewing
	return nil
}

// Position records a playback position sample. Reaching the preview threshold
// pauses playback and locks, one-way for the session.
func (g *Gate) Position(seconds float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.state == StateUnlocked {
		g.position = seconds
		return
	}

	threshold := float64(g.cfg.PreviewSeconds)
	if seconds > threshold {
		seconds = threshold
	}
	g.position = seconds

	if g.state == StatePreviewing && seconds >= threshold {
		g.state = StateLocked
	}
}

// PreviewEnded locks when the preview resource reaches its natural end before
// the threshold does.
func (g *Gate) PreviewEnded() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.state == StatePreviewing {
		g.state = StateLocked
	}
}

// Seek moves playback and returns the effective position: while content is
// gated, requests beyond the preview threshold are clamped to the threshold.
func (g *Gate) Seek(seconds float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.state != StateUnlocked {
		if threshold := float64(g.cfg.PreviewSeconds); seconds > threshold {
			seconds = threshold
		}
	}
	g.position = seconds
	return seconds
}

// Unlock starts the external verification round trip: the caller opens the
// returned locker URL and the gate polls for the unlock assertion.
func (g *Gate) Unlock() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.state != StateLocked {
		return "", fmt.Errorf("invalid transition: cannot unlock from %s", g.state)
	}
	g.state = StateAwaitingVerification
	g.checks = 0
	g.beginPollLocked()
	return g.movie.LockerURL, nil
}

// Retry re-opens verification after an exhausted poll.
func (g *Gate) Retry() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.state != StateRetryOffered {
		return "", fmt.Errorf("invalid transition: cannot retry from %s", g.state)
	}
	g.state = StateAwaitingVerification
	g.checks = 0
	g.beginPollLocked()
	return g.movie.LockerURL, nil
}

// CancelRetry returns to the locked prompt without re-opening verification.
func (g *Gate) CancelRetry() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.state != StateRetryOffered {
		return fmt.Errorf("invalid transition: cannot cancel from %s", g.state)
	}
	g.state = StateLocked
	return nil
}

// Callback records the unlock assertion delivered by the locker's redirect.
// The poll loop observes it on its next check; the assertion itself does not
// transition the gate.
func (g *Gate) Callback() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()
	g.asserted = true
}

// Describe snapshots the session for the API. Progress is computed against
// the preview threshold, never the movie's real length, and is capped at 100.
func (g *Gate) Describe() response.GateSessionResponse {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	resp := response.GateSessionResponse{
		SessionID:   g.id,
		MovieID:     g.movie.ID,
		State:       string(g.state),
		Position:    g.position,
		Progress:    g.progressLocked(),
		CurrentTime: utils.FormatTime(g.position),
		Duration:    utils.FormatTime(float64(g.movie.DurationSeconds)),
	}

	switch g.state {
	case StateUnlocked:
		resp.FullMovieURL = g.movie.FullMovieURL
	case StateAwaitingVerification, StateRetryOffered:
		resp.Checks = g.checks
		resp.LockerURL = g.movie.LockerURL
		resp.PreviewURL = g.movie.PreviewURL
	default:
		resp.PreviewURL = g.movie.PreviewURL
	}
	return resp
}

func (g *Gate) progressLocked() float64 {
	if g.state == StateUnlocked {
		return 100
	}
	threshold := float64(g.cfg.PreviewSeconds)
	if threshold <= 0 {
		return 0
	}
	pct := g.position / threshold * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// beginPollLocked creates the ticker before spawning the goroutine, so the
// poll is ready to observe ticks as soon as the triggering call returns.
func (g *Gate) beginPollLocked() {
	if g.cancel != nil {
		close(g.cancel)
	}
	stop := make(chan struct{})
	g.cancel = stop
	go g.poll(g.clock.NewTicker(g.cfg.PollInterval), stop)
}

// poll checks once per interval whether the unlock assertion has arrived,
// bounded to the configured number of checks.
func (g *Gate) poll(ticker Ticker, stop chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			done, unlocked := g.step()
			if !done {
				continue
			}
			if unlocked {
				g.grants.IssueGrant(context.Background(), g.movie.ID)
				g.log.Info("Gate unlocked",
					zap.String("session_id", g.id),
					zap.String("movie_id", g.movie.ID),
				)
			}
			return
		}
	}
}

// step advances the poll by one check. It reports whether the poll is over
// and whether it ended in an unlock.
func (g *Gate) step() (done, unlocked bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touchLocked()

	if g.state != StateAwaitingVerification {
		return true, false
	}

	g.checks++
	if g.asserted {
		g.state = StateUnlocked
		return true, true
	}
	if g.checks >= g.cfg.PollChecks {
		g.state = StateRetryOffered
		return true, false
	}
	return false, false
}

// Checks reports how many verification checks the current poll has run.
func (g *Gate) Checks() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.checks
}

func (g *Gate) teardown() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		close(g.cancel)
		g.cancel = nil
	}
}
