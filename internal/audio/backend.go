// Package audio synthesizes Block Dash's sound cues with beep streamers and
// pipes them as raw PCM to a command-line audio player.
package audio

import (
	"errors"
	"os/exec"
	"strconv"
)

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("audio: no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio: pipe closed")
)

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
)

// Backend describes a CLI audio player that reads s16le stereo PCM on stdin.
type Backend struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// DetectBackend searches for an available player.
// Priority: pacat > pw-cat > aplay
func DetectBackend(sampleRate int) (*Backend, error) {
	rate := strconv.Itoa(sampleRate)

	if path, err := lookPath("pacat"); err == nil {
		return &Backend{
			Type: BackendPulse,
			Name: "pacat",
			Path: path,
			Args: []string{
				"--raw",
				"--format=s16le",
				"--rate=" + rate,
				"--channels=2",
				"--latency-msec=50",
				"--playback",
			},
		}, nil
	}

	if path, err := lookPath("pw-cat"); err == nil {
		return &Backend{
			Type: BackendPipeWire,
			Name: "pw-cat",
			Path: path,
			Args: []string{
				"--playback",
				"--format=s16",
				"--rate=" + rate,
				"--channels=2",
				"--latency=50ms",
				"-",
			},
		}, nil
	}

	if path, err := lookPath("aplay"); err == nil {
		return &Backend{
			Type: BackendALSA,
			Name: "aplay",
			Path: path,
			Args: []string{
				"-t", "raw",
				"-f", "S16_LE",
				"-r", rate,
				"-c", "2",
				"-q",
			},
		}, nil
	}

	return nil, ErrNoAudioBackend
}
