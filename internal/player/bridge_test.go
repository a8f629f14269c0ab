package player

import (
	"sync"
	"testing"
	"time"

	"github.com/cutroomapp/cutroom/internal/state"
)

type recordedEvent struct {
	name string
	data []interface{}
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) emit(name string, data ...interface{}) {
	r.mu.Lock()
	r.events = append(r.events, recordedEvent{name: name, data: data})
	r.mu.Unlock()
}

func (r *eventRecorder) byName(name string) []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []recordedEvent
	for _, e := range r.events {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

func newBridgeFixture(t *testing.T) (*state.Store, *eventRecorder, *Bridge) {
	t.Helper()
	st := state.NewStore(state.NewEditorState())
	rec := &eventRecorder{}
	return st, rec, NewBridge(st, rec.emit)
}

func TestTogglePlayback(t *testing.T) {
	st, rec, b := newBridgeFixture(t)

	b.TogglePlayback()
	if got := rec.byName(EventPlay); len(got) != 1 {
		t.Fatalf("play events = %d, want 1", len(got))
	}

	// The collaborator confirms, then the next toggle pauses.
	b.OnPlayerPlay()
	if !st.State().Playing {
		t.Fatal("Playing = false after OnPlayerPlay")
	}
	b.TogglePlayback()
	if got := rec.byName(EventPause); len(got) != 1 {
		t.Errorf("pause events = %d, want 1", len(got))
	}
}

func TestSeekToClampsAndEmitsWhilePaused(t *testing.T) {
	st, rec, b := newBridgeFixture(t)

	b.SeekTo(-5)
	if got := st.State().CurrentFrame; got != 0 {
		t.Errorf("CurrentFrame = %d, want clamped to 0", got)
	}
	b.SeekTo(5000)
	wantLast := st.State().DurationFrames - 1
	if got := st.State().CurrentFrame; got != wantLast {
		t.Errorf("CurrentFrame = %d, want clamped to %d", got, wantLast)
	}

	seeks := rec.byName(EventSeek)
	if len(seeks) != 2 {
		t.Fatalf("seek events = %d, want 2", len(seeks))
	}
	if seeks[1].data[0] != wantLast {
		t.Errorf("last seek payload = %v, want %d", seeks[1].data[0], wantLast)
	}
}

func TestSeekSuppressedWhilePlaying(t *testing.T) {
	st, rec, b := newBridgeFixture(t)
	b.OnPlayerPlay()

	b.SeekTo(100)
	if got := st.State().CurrentFrame; got != 100 {
		t.Errorf("CurrentFrame = %d, want 100 (store always follows)", got)
	}
	if got := rec.byName(EventSeek); len(got) != 0 {
		t.Errorf("seek events while playing = %d, want 0", len(got))
	}
}

func TestSeekBy(t *testing.T) {
	st, _, b := newBridgeFixture(t)
	b.SeekTo(10)
	b.SeekBy(-3)
	if got := st.State().CurrentFrame; got != 7 {
		t.Errorf("CurrentFrame = %d, want 7", got)
	}
	b.SeekBy(-100)
	if got := st.State().CurrentFrame; got != 0 {
		t.Errorf("CurrentFrame = %d, want clamped to 0", got)
	}
}

func TestScrubDebouncesSeeks(t *testing.T) {
	st, rec, b := newBridgeFixture(t)

	for frame := 10; frame <= 50; frame += 10 {
		b.Scrub(frame)
	}
	if got := st.State().CurrentFrame; got != 50 {
		t.Fatalf("CurrentFrame = %d, want 50 immediately", got)
	}
	if got := rec.byName(EventSeek); len(got) != 0 {
		t.Fatalf("seek fired before the debounce settled: %d events", len(got))
	}

	time.Sleep(4 * scrubDebounce)
	seeks := rec.byName(EventSeek)
	if len(seeks) != 1 {
		t.Fatalf("seek events after settle = %d, want 1", len(seeks))
	}
	if seeks[0].data[0] != 50 {
		t.Errorf("settled seek payload = %v, want 50", seeks[0].data[0])
	}
}

func TestScrubWhilePlayingNeverSeeks(t *testing.T) {
	_, rec, b := newBridgeFixture(t)
	b.OnPlayerPlay()
	b.Scrub(25)
	time.Sleep(4 * scrubDebounce)
	if got := rec.byName(EventSeek); len(got) != 0 {
		t.Errorf("seek events = %d, want 0 while playing", len(got))
	}
}

func TestCollaboratorEventsReflectIntoStore(t *testing.T) {
	st, _, b := newBridgeFixture(t)

	b.OnPlayerFrame(123)
	if got := st.State().CurrentFrame; got != 123 {
		t.Errorf("CurrentFrame = %d, want 123", got)
	}
	b.OnPlayerPlay()
	if !st.State().Playing {
		t.Error("Playing = false, want true")
	}
	b.OnPlayerPause()
	if st.State().Playing {
		t.Error("Playing = true, want false")
	}
}
