package board

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// RollInput is the slice of player state the engine needs to resolve a roll.
type RollInput struct {
	Position        int
	HasStarted      bool
	RollsUntilStart int
}

type RollResult struct {
	DiceValue int
	FromPos   int
	ToPos     int
	// Entered is true when this roll put the token on the board.
	Entered         bool
	HasStarted      bool
	Completed       bool
	RollsUntilStart int
}

// Engine resolves dice rolls against the board configuration. It holds its
// own RNG so tests can inject a deterministic source; callers must not share
// one engine between rooms without going through the room's serialized loop.
type Engine struct {
	cfg Config
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(cfg Config) *Engine {
	return NewEngineWithRand(cfg, rand.New(rand.NewSource(cryptoSeed())))
}

func NewEngineWithRand(cfg Config, rng *rand.Rand) *Engine {
	return &Engine{cfg: cfg, rng: rng}
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) rollDie() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(6) + 1
}

// Roll produces a die value and applies the movement rules: the start
// threshold while the token is off the board, then ordinary movement clamped
// at the final house with the jump table applied to the landing candidate.
func (e *Engine) Roll(in RollInput) RollResult {
	return e.Resolve(in, e.rollDie())
}

// Resolve applies the movement rules for a known die value. Split from Roll
// so the outcome of every face is testable without touching the RNG.
func (e *Engine) Resolve(in RollInput, dice int) RollResult {
	res := RollResult{
		DiceValue:       dice,
		FromPos:         in.Position,
		HasStarted:      in.HasStarted,
		RollsUntilStart: in.RollsUntilStart,
	}

	if !in.HasStarted {
		if dice == e.cfg.StartRollValue || in.RollsUntilStart <= 0 {
			res.Entered = true
			res.HasStarted = true
			res.ToPos = e.applyJump(dice)
			res.Completed = res.ToPos == e.cfg.FinalHouse
			return res
		}
		res.RollsUntilStart = in.RollsUntilStart - 1
		res.ToPos = 0
		return res
	}

	candidate := in.Position + dice
	if candidate > e.cfg.FinalHouse {
		candidate = e.cfg.FinalHouse
	}
	candidate = e.applyJump(candidate)

	res.ToPos = candidate
	res.Completed = candidate == e.cfg.FinalHouse
	return res
}

func (e *Engine) applyJump(house int) int {
	if to, ok := e.cfg.Jumps[house]; ok {
		return to
	}
	return house
}

func cryptoSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
