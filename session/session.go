package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/binstack/cellpack/internal/anchor"
	"github.com/binstack/cellpack/internal/constraint"
	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/packer"
	"github.com/binstack/cellpack/internal/scoring"
)

// ErrCorrupt marks a session that hit an internal inconsistency (a
// commit or surface update that should never fail given a feasible
// placement). Once set, the session must be reset via Start before any
// further decision is accepted.
var ErrCorrupt = errors.New("session: corrupt, must be reset")

// ErrNoSession is returned by operations that require an active cage
// when none has been started.
var ErrNoSession = errors.New("session: no active session")

// State is the process-wide session's lifecycle position. It tracks
// only whether a cage exists, not the per-decision outcome — a failed
// decision leaves the session Active so the caller can retry with a
// different candidate window, except when the failure is an internal
// inconsistency, which marks the session Stuck.
type State int

const (
	Idle State = iota
	Active
	Stuck
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Stuck:
		return "stuck"
	default:
		return "unknown"
	}
}

// Session is the single process-wide mutable packing session. It is
// guarded by one mutex held for the full duration of Decide, and
// persists across decisions rather than being reconstructed per
// request.
type Session struct {
	mu sync.Mutex

	state State
	cage  *entity.Cage

	params  constraint.Params
	weights scoring.Weights
}

// New creates an Idle session with the feasibility and scoring
// parameters every decision on it will use.
func New(params constraint.Params, weights scoring.Weights) *Session {
	return &Session{state: Idle, params: params, weights: weights}
}

// Start replaces any in-flight session with a fresh, empty cage and
// moves the session to Active.
func (s *Session) Start(id string, dims entity.Dims, weightLimit float64) *entity.Cage {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cage = entity.NewCage(id, dims, weightLimit)
	s.state = Active
	return s.cage
}

// State reports the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cage returns the session's current cage (Active or Stuck), or
// ErrNoSession if no cage has been started.
func (s *Session) Cage() (*entity.Cage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Idle {
		return nil, ErrNoSession
	}
	return s.cage, nil
}

// resolveAnchors maps a strategy name to its registered anchor.Generator.
func resolveAnchors(strategy string) (anchor.Generator, error) {
	gen := anchor.Get(strategy)
	if gen == nil {
		return nil, fmt.Errorf("session: unknown anchor strategy %q", strategy)
	}
	return gen, nil
}

// resolvePacker constructs the packer named by algorithm, tuned by
// numSimu when algorithm selects MCTS.
func (s *Session) resolvePacker(algorithm string, gen anchor.Generator, numSimu int, seed uint64) (packer.Packer, error) {
	switch algorithm {
	case "heuristic":
		return packer.NewHeuristic(gen, s.params, s.weights), nil
	case "mcts":
		cfg := packer.MCTSConfig{
			NumSimulations: numSimu,
			RolloutDepth:   8,
			UCTConst:       1.4,
			Workers:        1,
		}
		if cfg.NumSimulations <= 0 {
			cfg.NumSimulations = 200
		}
		return packer.NewMCTS(gen, s.params, s.weights, cfg, seed), nil
	default:
		return nil, fmt.Errorf("session: unknown packing algorithm %q", algorithm)
	}
}

// Decide resolves strategy/algorithm to a concrete anchor generator and
// packer, then runs one packing decision against the session's cage.
// It holds the session mutex for the full duration of the decision,
// including the packer's internal commit and support-surface update.
//
// A nil *packer.Placement with a nil error means no feasible placement
// existed for any candidate; the session remains Active so the driver
// may retry with a different candidate window. packer.ErrEmptyCandidates
// is input validation and also leaves the session Active. Any other
// non-nil error from Pack is an internal inconsistency: it marks the
// session Stuck and wraps ErrCorrupt.
func (s *Session) Decide(strategy, algorithm string, numSimu int, seed uint64, candidates []entity.Item) (*packer.Placement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Active {
		return nil, ErrNoSession
	}

	gen, err := resolveAnchors(strategy)
	if err != nil {
		return nil, err
	}
	p, err := s.resolvePacker(algorithm, gen, numSimu, seed)
	if err != nil {
		return nil, err
	}

	placement, err := p.Pack(s.cage, candidates)
	if errors.Is(err, packer.ErrEmptyCandidates) {
		return nil, err
	}
	if err != nil {
		s.state = Stuck
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return placement, nil
}
