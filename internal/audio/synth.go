package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/blockdash/internal/config"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSquare
	WaveSaw
)

// ParseWave maps a config name onto a wave shape.
func ParseWave(name string) (WaveType, error) {
	switch name {
	case "sine", "":
		return WaveSine, nil
	case "triangle":
		return WaveTriangle, nil
	case "square":
		return WaveSquare, nil
	case "saw", "sawtooth":
		return WaveSaw, nil
	default:
		return WaveSine, fmt.Errorf("audio: unknown wave %q", name)
	}
}

// oscillator generates a fixed-length periodic wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer that plays freq for duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// release fades the last samples of a stream to silence to avoid a click.
type release struct {
	streamer beep.Streamer
	position int
	start    int
	total    int
}

func newRelease(s beep.Streamer, duration, fade time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &release{streamer: s, start: max(0, total-rate.N(fade)), total: total}
}

func (r *release) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if r.position >= r.start && r.total > r.start {
			vol := float64(r.total-r.position) / float64(r.total-r.start)
			vol = math.Max(0, vol)
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		r.position++
	}
	return n, ok
}

func (r *release) Err() error { return r.streamer.Err() }

// newVolume wraps s with a linear gain. effects.Volume is logarithmic, so
// zero gain maps to silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

const releaseTime = 10 * time.Millisecond

// NewTone builds the streamer for one cue.
func NewTone(tone config.CueTone, master float64, rate beep.SampleRate) (beep.Streamer, error) {
	wave, err := ParseWave(tone.Wave)
	if err != nil {
		return nil, err
	}
	osc := NewOscillator(tone.Frequency, tone.Duration, wave, rate)
	shaped := newRelease(osc, tone.Duration, min(releaseTime, tone.Duration/2), rate)
	return newVolume(shaped, tone.Volume*master), nil
}

// Render drains a streamer into a sample buffer.
func Render(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		out = append(out, chunk[:n]...)
		if !ok || n == 0 {
			return out
		}
	}
}
