// Package player connects the editor engine to the webview's playback
// collaborator. Commands go out as runtime events; the collaborator's own
// frame/play-state changes come back through the bridge's On* handlers and
// are reflected into the store. The collaborator advances frames on its own
// while playing, so seek commands are only ever sent while paused.
package player

import (
	"time"

	"github.com/bep/debounce"

	"github.com/cutroomapp/cutroom/internal/state"
)

// Events emitted to the webview player.
const (
	EventPlay  = "player:play"
	EventPause = "player:pause"
	EventSeek  = "player:seek"
)

// scrubDebounce coalesces the seek bursts a ruler scrub produces. The
// trailing edge fires, so the frame under the pointer when the scrub settles
// always lands.
const scrubDebounce = 50 * time.Millisecond

// Emitter sends one event to the webview. The app shell passes the wails
// runtime here; tests pass a recorder.
type Emitter func(eventName string, optionalData ...interface{})

// Bridge is the two-way adapter between the store and the playback
// collaborator.
type Bridge struct {
	store     *state.Store
	emit      Emitter
	debounced func(func())
}

// NewBridge wires a bridge to the store and an event emitter.
func NewBridge(store *state.Store, emit Emitter) *Bridge {
	return &Bridge{
		store:     store,
		emit:      emit,
		debounced: debounce.New(scrubDebounce),
	}
}

// Play asks the collaborator to start playback. The store's Playing flag
// flips when the collaborator confirms via OnPlayerPlay.
func (b *Bridge) Play() {
	b.emit(EventPlay)
}

// Pause asks the collaborator to stop.
func (b *Bridge) Pause() {
	b.emit(EventPause)
}

// TogglePlayback plays or pauses based on the current state.
func (b *Bridge) TogglePlayback() {
	if b.store.State().Playing {
		b.Pause()
	} else {
		b.Play()
	}
}

// SeekTo moves the playhead to a frame, clamped to the composition range.
// The store updates immediately; the collaborator is told only while paused,
// because it owns frame advancement during playback.
func (b *Bridge) SeekTo(frame int) {
	frame = b.clampFrame(frame)
	next := b.store.Dispatch(state.SetCurrentFrame{Frame: frame})
	if !next.Playing {
		b.emit(EventSeek, frame)
	}
}

// SeekBy moves the playhead relative to its current position.
func (b *Bridge) SeekBy(delta int) {
	b.SeekTo(b.store.State().CurrentFrame + delta)
}

// Scrub is SeekTo for high-frequency pointer input: the store tracks every
// frame so the playhead follows the pointer, but the collaborator only gets
// the final position once the burst settles.
func (b *Bridge) Scrub(frame int) {
	frame = b.clampFrame(frame)
	b.store.Dispatch(state.SetCurrentFrame{Frame: frame})
	b.debounced(func() {
		if !b.store.State().Playing {
			b.emit(EventSeek, frame)
		}
	})
}

// OnPlayerFrame reflects a collaborator frame update into the store.
func (b *Bridge) OnPlayerFrame(frame int) {
	b.store.Dispatch(state.SetCurrentFrame{Frame: frame})
}

// OnPlayerPlay reflects the collaborator's play event.
func (b *Bridge) OnPlayerPlay() {
	b.store.Dispatch(state.SetPlaying{Playing: true})
}

// OnPlayerPause reflects the collaborator's pause event.
func (b *Bridge) OnPlayerPause() {
	b.store.Dispatch(state.SetPlaying{Playing: false})
}

func (b *Bridge) clampFrame(frame int) int {
	s := b.store.State()
	if frame < 0 {
		return 0
	}
	if s.DurationFrames > 0 && frame > s.DurationFrames-1 {
		return s.DurationFrames - 1
	}
	return frame
}
