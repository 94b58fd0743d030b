// Package audio covers the voice edges of a conversation: capturing
// microphone frames into WAV, transcribing speech to text, and
// synthesizing spoken replies.
package audio

import (
	"context"
	"io"
	"strings"
)

// Capture format: 16 kHz mono signed 16-bit PCM.
const (
	SampleRate = 16000
	Channels   = 1
)

// FrameSource produces raw PCM frames from a capture device. ReadFrame
// blocks until a frame is available and returns io.EOF when the device
// closes.
type FrameSource interface {
	ReadFrame() ([]int16, error)
	Close() error
}

// Transcriber converts recorded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, wav io.Reader) (string, error)
}

// Synthesizer converts text to playable audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player plays synthesized audio to an output device.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// CleanForSpeech strips markup that reads badly when spoken aloud.
func CleanForSpeech(text string) string {
	return strings.ReplaceAll(text, "**", "")
}
