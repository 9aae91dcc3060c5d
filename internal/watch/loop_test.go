package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/amonroe/agentmon/internal/aggregate"
	"github.com/amonroe/agentmon/internal/store"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory store.Store with error injection for loop tests.
type fakeStore struct {
	mu      sync.Mutex
	records map[string][]store.Record
	readErr error
	reads   int
}

func (f *fakeStore) Write(namespace, id string, rec store.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.records == nil {
		f.records = make(map[string][]store.Record)
	}
	rec.Namespace, rec.ID = namespace, id
	f.records[namespace] = append(f.records[namespace], rec)
	return nil
}

func (f *fakeStore) ReadAll() (map[string][]store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.readErr != nil {
		err := f.readErr
		f.readErr = nil // fail once, then recover
		return nil, err
	}
	out := make(map[string][]store.Record, len(f.records))
	for ns, recs := range f.records {
		out[ns] = append([]store.Record(nil), recs...)
	}
	return out, nil
}

func (f *fakeStore) Clear(namespace, id string) (bool, error) {
	return false, nil
}

func (f *fakeStore) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func TestLoop_DeliversPeriodicFrames(t *testing.T) {
	fs := &fakeStore{}
	_ = fs.Write("repo", "wt", store.Record{Status: "running"})

	frames := make(chan aggregate.View, 16)
	loop := NewLoop(fs, 20*time.Millisecond, func(v aggregate.View) {
		select {
		case frames <- v:
		default:
		}
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = loop.Run(ctx)
		close(done)
	}()

	// The first frame is immediate, the second comes from the ticker.
	for i := 0; i < 2; i++ {
		select {
		case v := <-frames:
			if v.Counts.Running != 1 {
				t.Errorf("frame %d Counts.Running = %d, want 1", i, v.Counts.Running)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for frame %d", i)
		}
	}

	cancel()
	<-done
}

// TestLoop_CancellationLatency verifies that cancelling during the
// inter-tick wait stops the loop promptly, not after the configured period.
func TestLoop_CancellationLatency(t *testing.T) {
	loop := NewLoop(&fakeStore{}, time.Hour, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = loop.Run(ctx)
		close(done)
	}()

	// Let the immediate first tick happen, then cancel mid-wait.
	time.Sleep(20 * time.Millisecond)
	start := time.Now()
	cancel()

	select {
	case <-done:
		if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
			t.Errorf("loop took %v to observe cancellation", elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop never stopped after cancel")
	}
}

// TestLoop_SurvivesReadError verifies the self-loop on transient scan
// failures: the failed tick is dropped and the next one proceeds.
func TestLoop_SurvivesReadError(t *testing.T) {
	fs := &fakeStore{readErr: errors.New("disk hiccup")}
	_ = fs.Write("repo", "wt", store.Record{Status: "idle"})

	frames := make(chan aggregate.View, 16)
	loop := NewLoop(fs, 20*time.Millisecond, func(v aggregate.View) {
		select {
		case frames <- v:
		default:
		}
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = loop.Run(ctx)
		close(done)
	}()

	// The first tick fails; a later tick must still deliver a frame.
	select {
	case v := <-frames:
		if v.Counts.Idle != 1 {
			t.Errorf("Counts.Idle = %d, want 1", v.Counts.Idle)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame delivered after transient read error")
	}

	cancel()
	<-done
}

func TestLoop_RefreshTriggersImmediateTick(t *testing.T) {
	fs := &fakeStore{}
	frames := make(chan aggregate.View, 16)
	loop := NewLoop(fs, time.Hour, func(v aggregate.View) {
		select {
		case frames <- v:
		default:
		}
	}, testLogger())

	refresh := make(chan struct{}, 1)
	loop.SetRefresh(refresh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	// Drain the immediate first frame.
	select {
	case <-frames:
	case <-time.After(time.Second):
		t.Fatal("no initial frame")
	}

	refresh <- struct{}{}
	select {
	case <-frames:
	case <-time.After(time.Second):
		t.Fatal("refresh signal did not trigger a tick before the period elapsed")
	}
}

func TestLoop_RunOnce(t *testing.T) {
	fs := &fakeStore{}
	_ = fs.Write("repo", "a", store.Record{Status: "waiting_input"})
	_ = fs.Write("repo", "b", store.Record{Status: "running"})

	loop := NewLoop(fs, time.Second, nil, testLogger())
	view, err := loop.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if view.Counts.Total != 2 {
		t.Errorf("Counts.Total = %d, want 2", view.Counts.Total)
	}
	if fs.readCount() != 1 {
		t.Errorf("store reads = %d, want exactly 1", fs.readCount())
	}
}

func TestLoop_RunOncePropagatesReadError(t *testing.T) {
	fs := &fakeStore{readErr: errors.New("permission denied")}
	loop := NewLoop(fs, time.Second, nil, testLogger())

	if _, err := loop.RunOnce(context.Background()); err == nil {
		t.Error("RunOnce() error = nil, want read failure propagated")
	}
}
