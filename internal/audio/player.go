package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/games/dash"
)

const (
	bufferDuration = 20 * time.Millisecond
	bytesPerFrame  = 4 // s16le stereo
	queueSize      = 16
)

// Nop is the silent cue sink.
type Nop struct{}

// Cue implements dash.CueSink.
func (Nop) Cue(dash.Cue) {}

var (
	_ dash.CueSink = Nop{}
	_ dash.CueSink = (*Player)(nil)
)

// voice is a cue being played.
type voice struct {
	buf [][2]float64
	pos int
}

// Player mixes cues and writes PCM to a backend. Cue never blocks: when the
// queue is full the cue is dropped.
type Player struct {
	rate   beep.SampleRate
	tones  map[dash.Cue][][2]float64
	logger *log.Logger

	queue    chan dash.Cue
	stopChan chan struct{}
	stopped  atomic.Bool
	silent   atomic.Bool
	wg       sync.WaitGroup

	cmd *exec.Cmd
	out io.Writer

	// Accessed only by the mix goroutine
	active []voice

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewPlayer pre-renders every cue. The player is silent until started.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.Default()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	p := &Player{
		rate:     rate,
		tones:    make(map[dash.Cue][][2]float64, 3),
		logger:   logger,
		queue:    make(chan dash.Cue, queueSize),
		stopChan: make(chan struct{}),
		active:   make([]voice, 0, 4),
	}
	p.silent.Store(true)

	for cue, tone := range map[dash.Cue]config.CueTone{
		dash.CueJump:  cfg.Jump,
		dash.CueDash:  cfg.Dash,
		dash.CueDeath: cfg.Death,
	} {
		s, err := NewTone(tone, cfg.Master, rate)
		if err != nil {
			return nil, fmt.Errorf("audio: %s cue: %w", cue, err)
		}
		p.tones[cue] = Render(s)
	}
	return p, nil
}

// Start launches the detected backend. A missing backend leaves the player
// silent and is not an error.
func (p *Player) Start() error {
	backend, err := DetectBackend(int(p.rate))
	if err != nil {
		p.logger.Warn("audio disabled", "err", err)
		return nil
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		p.logger.Warn("audio disabled", "backend", backend.Name, "err", err)
		return nil
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		p.logger.Warn("audio disabled", "backend", backend.Name, "err", err)
		return nil
	}

	p.cmd = cmd
	p.logger.Info("audio started", "backend", backend.Name, "rate", int(p.rate))
	return p.StartWriter(stdin)
}

// StartWriter mixes into w instead of a backend process.
func (p *Player) StartWriter(w io.Writer) error {
	if p.out != nil {
		return fmt.Errorf("audio: player already started")
	}
	p.out = w
	p.silent.Store(false)
	p.wg.Add(1)
	go p.loop()
	return nil
}

// Cue implements dash.CueSink.
func (p *Player) Cue(c dash.Cue) {
	if p.silent.Load() || p.stopped.Load() {
		return
	}
	select {
	case p.queue <- c:
	default:
		p.dropped.Add(1)
	}
}

// Silent reports whether cues are being discarded.
func (p *Player) Silent() bool {
	return p.silent.Load()
}

// Stats returns played and dropped counts.
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

// Close stops mixing and shuts the backend down.
func (p *Player) Close() error {
	if !p.stopped.CompareAndSwap(false, true) {
		return nil
	}
	close(p.stopChan)
	p.wg.Wait()
	p.silent.Store(true)

	if c, ok := p.out.(io.Closer); ok {
		c.Close()
	}
	if p.cmd != nil {
		if err := p.cmd.Wait(); err != nil {
			return fmt.Errorf("audio: backend exit: %w", err)
		}
	}
	return nil
}

func (p *Player) loop() {
	defer p.wg.Done()

	ticker := time.NewTicker(bufferDuration)
	defer ticker.Stop()

	samples := p.rate.N(bufferDuration)
	mix := make([][2]float64, samples)
	out := make([]byte, samples*bytesPerFrame)

	for {
		select {
		case <-p.stopChan:
			return

		case c := <-p.queue:
			p.enqueue(c)

		case <-ticker.C:
			for i := range mix {
				mix[i] = [2]float64{}
			}
			p.mixActive(mix)
			floatToBytes(mix, out)

			// Silence is written too, to keep the pipe alive.
			if _, err := p.out.Write(out); err != nil {
				p.silent.Store(true)
				p.logger.Warn("audio stopped", "err", fmt.Errorf("%w: %v", ErrPipeClosed, err))
				return
			}
		}
	}
}

func (p *Player) enqueue(c dash.Cue) {
	if buf := p.tones[c]; len(buf) > 0 {
		p.active = append(p.active, voice{buf: buf})
		p.played.Add(1)
	}
}

// mixActive adds every active voice into buf and drops finished ones.
func (p *Player) mixActive(buf [][2]float64) {
	remaining := p.active[:0]
	for _, v := range p.active {
		for j := 0; j < len(buf) && v.pos < len(v.buf); j++ {
			buf[j][0] += v.buf[v.pos][0]
			buf[j][1] += v.buf[v.pos][1]
			v.pos++
		}
		if v.pos < len(v.buf) {
			remaining = append(remaining, v)
		}
	}
	p.active = remaining
}

// floatToBytes converts stereo samples to interleaved int16 LE bytes with a
// hard clip.
func floatToBytes(in [][2]float64, out []byte) {
	for i, s := range in {
		for ch := 0; ch < 2; ch++ {
			v := s[ch]
			if v > 1.0 {
				v = 1.0
			} else if v < -1.0 {
				v = -1.0
			}
			binary.LittleEndian.PutUint16(out[i*bytesPerFrame+ch*2:], uint16(int16(v*32767)))
		}
	}
}
