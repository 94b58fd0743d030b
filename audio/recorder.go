package audio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Recorder accumulates frames from a FrameSource between Start and
// Stop. The read loop runs on its own goroutine; Stop signals it,
// waits for the handoff, and returns everything captured as WAV.
type Recorder struct {
	source FrameSource

	mu        sync.Mutex
	recording bool
	stop      atomic.Bool
	done      sync.WaitGroup
	samples   []int16
	readErr   error
}

// NewRecorder creates a recorder over the given source.
func NewRecorder(source FrameSource) *Recorder {
	return &Recorder{source: source}
}

// Start begins capturing frames. Calling Start while already recording
// is an error.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return fmt.Errorf("recorder already started")
	}
	r.recording = true
	r.stop.Store(false)
	r.samples = nil
	r.readErr = nil

	r.done.Add(1)
	go r.capture()
	return nil
}

func (r *Recorder) capture() {
	defer r.done.Done()
	for !r.stop.Load() {
		frame, err := r.source.ReadFrame()
		if err != nil {
			if err != io.EOF {
				r.mu.Lock()
				r.readErr = err
				r.mu.Unlock()
			}
			return
		}
		r.mu.Lock()
		r.samples = append(r.samples, frame...)
		r.mu.Unlock()
	}
}

// Stop ends the capture and returns the recording as WAV bytes.
func (r *Recorder) Stop() ([]byte, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, fmt.Errorf("recorder not started")
	}
	r.mu.Unlock()

	r.stop.Store(true)
	r.done.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	if r.readErr != nil {
		return nil, fmt.Errorf("capture: %w", r.readErr)
	}
	if len(r.samples) == 0 {
		return nil, fmt.Errorf("no audio captured")
	}
	return EncodeWAV(r.samples), nil
}
