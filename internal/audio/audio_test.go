package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"os/exec"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/games/dash"
)

func TestParseWave(t *testing.T) {
	tests := []struct {
		name    string
		want    WaveType
		wantErr bool
	}{
		{"sine", WaveSine, false},
		{"", WaveSine, false},
		{"triangle", WaveTriangle, false},
		{"square", WaveSquare, false},
		{"saw", WaveSaw, false},
		{"sawtooth", WaveSaw, false},
		{"noise", WaveSine, true},
	}

	for _, tc := range tests {
		got, err := ParseWave(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseWave(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseWave(%q) = %v, expected %v", tc.name, got, tc.want)
		}
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)

	for _, wave := range []WaveType{WaveSine, WaveTriangle, WaveSquare, WaveSaw} {
		buf := Render(NewOscillator(440, 100*time.Millisecond, wave, rate))
		if len(buf) != 4410 {
			t.Errorf("wave %d: rendered %d samples, expected 4410", wave, len(buf))
		}
		for i, s := range buf {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d sample %d = %v", wave, i, s)
			}
		}
	}

	sq := Render(NewOscillator(220, 10*time.Millisecond, WaveSquare, rate))
	for i, s := range sq {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("square sample %d = %f", i, s[0])
		}
	}

	tri := Render(NewOscillator(440, 10*time.Millisecond, WaveTriangle, rate))
	if tri[0][0] != -1 {
		t.Errorf("triangle should start at -1, got %f", tri[0][0])
	}
}

func TestNewToneShape(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := config.CueTone{Frequency: 1400, Duration: 90 * time.Millisecond, Wave: "square", Volume: 0.06}

	s, err := NewTone(tone, 1.0, rate)
	if err != nil {
		t.Fatal(err)
	}
	buf := Render(s)

	if len(buf) != rate.N(90*time.Millisecond) {
		t.Errorf("tone length = %d samples", len(buf))
	}
	if peak := math.Abs(buf[0][0]); math.Abs(peak-0.06) > 1e-9 {
		t.Errorf("tone level = %f, expected 0.06", peak)
	}
	if last := math.Abs(buf[len(buf)-1][0]); last > 0.001 {
		t.Errorf("tone should fade out, last sample %f", last)
	}

	muted, err := NewTone(tone, 0, rate)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range Render(muted) {
		if s[0] != 0 {
			t.Fatal("zero master volume should be silent")
		}
	}

	if _, err := NewTone(config.CueTone{Wave: "noise"}, 1, rate); err == nil {
		t.Error("unknown wave should fail")
	}
}

func TestDetectBackend(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	if _, err := DetectBackend(44100); !errors.Is(err, ErrNoAudioBackend) {
		t.Errorf("expected ErrNoAudioBackend, got %v", err)
	}

	lookPath = func(name string) (string, error) {
		if name == "aplay" {
			return "/usr/bin/aplay", nil
		}
		return "", exec.ErrNotFound
	}
	b, err := DetectBackend(48000)
	if err != nil {
		t.Fatal(err)
	}
	if b.Type != BackendALSA || b.Path != "/usr/bin/aplay" || !slices.Contains(b.Args, "48000") {
		t.Errorf("unexpected backend %+v", b)
	}

	lookPath = func(name string) (string, error) { return "/bin/" + name, nil }
	if b, _ := DetectBackend(44100); b.Name != "pacat" {
		t.Errorf("pacat should win, got %s", b.Name)
	}
}

func TestFloatToBytes(t *testing.T) {
	out := make([]byte, 3*bytesPerFrame)
	floatToBytes([][2]float64{{2, -2}, {0, 0.5}, {-1, 1}}, out)

	read := func(i int) int16 { return int16(binary.LittleEndian.Uint16(out[i*2:])) }
	want := []int16{32767, -32767, 0, 16383, -32767, 32767}
	for i, w := range want {
		if got := read(i); got != w {
			t.Errorf("value %d = %d, expected %d", i, got, w)
		}
	}
}

// pcmSink records PCM written by the mixer.
type pcmSink struct {
	mu      sync.Mutex
	written int
	loud    bool
}

func (s *pcmSink) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written += len(b)
	for i := 0; i+1 < len(b); i += 2 {
		if binary.LittleEndian.Uint16(b[i:]) != 0 {
			s.loud = true
			break
		}
	}
	return len(b), nil
}

func (s *pcmSink) state() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written, s.loud
}

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	p, err := NewPlayer(config.DefaultDashConfig().Audio, nil)
	if err != nil {
		t.Fatalf("NewPlayer() failed: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestPlayerMixesCues(t *testing.T) {
	p := newTestPlayer(t)
	sink := &pcmSink{}
	if err := p.StartWriter(sink); err != nil {
		t.Fatal(err)
	}
	if p.Silent() {
		t.Fatal("started player should not be silent")
	}

	p.Cue(dash.CueJump)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, loud := sink.state(); loud {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	written, loud := sink.state()
	if !loud {
		t.Fatalf("no audible PCM after a cue (%d bytes written)", written)
	}
	if written%bytesPerFrame != 0 {
		t.Errorf("partial frame written: %d bytes", written)
	}
	if played, _ := p.Stats(); played != 1 {
		t.Errorf("played = %d, expected 1", played)
	}

	if err := p.StartWriter(sink); err == nil {
		t.Error("second start should fail")
	}
}

func TestPlayerSilentUntilStarted(t *testing.T) {
	p := newTestPlayer(t)
	if !p.Silent() {
		t.Error("new player should be silent")
	}

	p.Cue(dash.CueDeath)
	if played, dropped := p.Stats(); played != 0 || dropped != 0 {
		t.Errorf("silent player counted cues: %d/%d", played, dropped)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() on idle player: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close(): %v", err)
	}
}

func TestPlayerRendersAllCues(t *testing.T) {
	p := newTestPlayer(t)
	rate := beep.SampleRate(44100)

	for cue, d := range map[dash.Cue]time.Duration{
		dash.CueJump:  80 * time.Millisecond,
		dash.CueDash:  90 * time.Millisecond,
		dash.CueDeath: 500 * time.Millisecond,
	} {
		if got := len(p.tones[cue]); got != rate.N(d) {
			t.Errorf("%s cue has %d samples, expected %d", cue, got, rate.N(d))
		}
	}
}

func TestNewPlayerRejectsBadWave(t *testing.T) {
	cfg := config.DefaultDashConfig().Audio
	cfg.Dash.Wave = "noise"
	if _, err := NewPlayer(cfg, nil); err == nil {
		t.Error("expected an error for an unknown wave")
	}
}
