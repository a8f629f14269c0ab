package state

import "sync"

// Store holds the current EditorState and serializes every mutation through
// one writer lock, so pointer handlers, keyboard shortcuts and player events
// arriving on different goroutines apply in a total order. Reads take a
// snapshot; because snapshots are immutable by convention they stay valid
// after the lock is released.
type Store struct {
	mu    sync.Mutex
	state EditorState

	subMu   sync.RWMutex
	nextSub int
	subs    map[int]func(EditorState)
}

// NewStore returns a store seeded with the given state.
func NewStore(initial EditorState) *Store {
	return &Store{
		state: initial,
		subs:  map[int]func(EditorState){},
	}
}

// State returns the current snapshot.
func (st *Store) State() EditorState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Dispatch applies one action and returns the resulting snapshot.
// Subscribers run after the lock is released, in subscription order, and only
// when the action actually changed something.
func (st *Store) Dispatch(action Action) EditorState {
	st.mu.Lock()
	prev := st.state
	next := Apply(prev, action)
	st.state = next
	st.mu.Unlock()

	if !sameSnapshot(prev, next) {
		st.notify(next)
	}
	return next
}

// Subscribe registers fn to run after every state change. The returned
// function removes the subscription.
func (st *Store) Subscribe(fn func(EditorState)) func() {
	st.subMu.Lock()
	id := st.nextSub
	st.nextSub++
	st.subs[id] = fn
	st.subMu.Unlock()
	return func() {
		st.subMu.Lock()
		delete(st.subs, id)
		st.subMu.Unlock()
	}
}

func (st *Store) notify(s EditorState) {
	st.subMu.RLock()
	fns := make([]func(EditorState), 0, len(st.subs))
	for id := 0; id < st.nextSub; id++ {
		if fn, ok := st.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	st.subMu.RUnlock()
	for _, fn := range fns {
		fn(s)
	}
}

// sameSnapshot reports whether the reducer returned its input unchanged. The
// reducer preserves slice identity for untouched collections, so comparing
// the scalar fields plus the slice headers is enough.
func sameSnapshot(a, b EditorState) bool {
	return a.SelectedItemID == b.SelectedItemID &&
		a.SelectedTrackID == b.SelectedTrackID &&
		a.CurrentFrame == b.CurrentFrame &&
		a.Playing == b.Playing &&
		a.Zoom == b.Zoom &&
		a.CompositionWidth == b.CompositionWidth &&
		a.CompositionHeight == b.CompositionHeight &&
		a.FPS == b.FPS &&
		a.DurationFrames == b.DurationFrames &&
		sliceIdentity(a.Tracks, b.Tracks) &&
		assetIdentity(a.Assets, b.Assets)
}

func sliceIdentity(a, b []Track) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

func assetIdentity(a, b []Asset) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
