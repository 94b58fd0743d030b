package audio

import (
	"errors"
	"io"
	"testing"
)

// fakeSource hands out queued frames and then blocks the recorder by
// returning io.EOF.
type fakeSource struct {
	frames [][]int16
	err    error
	closed bool
}

func (f *fakeSource) ReadFrame() ([]int16, error) {
	if len(f.frames) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		return nil, io.EOF
	}
	frame := f.frames[0]
	f.frames = f.frames[1:]
	return frame, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func TestRecorderCapturesFrames(t *testing.T) {
	source := &fakeSource{frames: [][]int16{{1, 2, 3}, {4, 5}}}
	rec := NewRecorder(source)

	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	wav, err := rec.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}

	// 44-byte header plus five 16-bit samples.
	if len(wav) != 44+10 {
		t.Errorf("wav length = %d, want 54", len(wav))
	}
	if string(wav[:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Errorf("missing RIFF/WAVE header: % x", wav[:12])
	}
}

func TestRecorderDoubleStart(t *testing.T) {
	rec := NewRecorder(&fakeSource{frames: [][]int16{{1}}})
	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := rec.Start(); err == nil {
		t.Error("second Start should fail")
	}
	if _, err := rec.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestRecorderStopWithoutStart(t *testing.T) {
	rec := NewRecorder(&fakeSource{})
	if _, err := rec.Stop(); err == nil {
		t.Error("Stop before Start should fail")
	}
}

func TestRecorderEmptyCapture(t *testing.T) {
	rec := NewRecorder(&fakeSource{})
	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := rec.Stop(); err == nil {
		t.Error("empty capture should fail")
	}
}

func TestRecorderSourceError(t *testing.T) {
	source := &fakeSource{frames: [][]int16{{1}}, err: errors.New("device unplugged")}
	rec := NewRecorder(source)
	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := rec.Stop(); err == nil {
		t.Error("source error should surface from Stop")
	}
}

func TestRecorderRestart(t *testing.T) {
	rec := NewRecorder(&fakeSource{frames: [][]int16{{1, 2}}})
	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := rec.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	// A stopped recorder can record again, fresh.
	rec.source = &fakeSource{frames: [][]int16{{9}}}
	if err := rec.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	wav, err := rec.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if len(wav) != 44+2 {
		t.Errorf("second capture length = %d, want one sample", len(wav))
	}
}
