package dash

// Cue identifies a fire-and-forget sound event.
type Cue int

const (
	CueJump Cue = iota
	CueDash
	CueDeath
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueDash:
		return "dash"
	case CueDeath:
		return "death"
	default:
		return "unknown"
	}
}

// CueSink receives sound cues. Implementations must not block.
type CueSink interface {
	Cue(c Cue)
}

// BestKeeper stores the best integer score across runs.
type BestKeeper interface {
	LoadBest() (int, error)
	SaveBest(score int) error
}

type nopCues struct{}

func (nopCues) Cue(Cue) {}

type memoryBest struct{ best int }

func (m *memoryBest) LoadBest() (int, error) { return m.best, nil }

func (m *memoryBest) SaveBest(score int) error {
	if score > m.best {
		m.best = score
	}
	return nil
}

// Option configures a Sim.
type Option func(*Sim)

// WithCues routes sound cues to sink.
func WithCues(sink CueSink) Option {
	return func(s *Sim) {
		if sink != nil {
			s.cues = sink
		}
	}
}

// WithBestKeeper persists the best score through k.
func WithBestKeeper(k BestKeeper) Option {
	return func(s *Sim) {
		if k != nil {
			s.keeper = k
		}
	}
}

// WithSeed seeds the spawn and particle RNG.
func WithSeed(seed int64) Option {
	return func(s *Sim) {
		s.seed = seed
	}
}

// WithViewport sets the initial viewport in world units.
func WithViewport(w, h float64) Option {
	return func(s *Sim) {
		s.viewW, s.viewH = w, h
	}
}
