package dnd

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/cutroomapp/cutroom/internal/state"
	"github.com/cutroomapp/cutroom/internal/timeline"
)

// Fallback item durations for assets without a probed duration.
const (
	DefaultVideoDurationFrames = 150
	DefaultAudioDurationFrames = 150
	DefaultImageDurationFrames = 90
)

// Config tunes the controller. Zero values fall back to the package
// defaults, so Config{} is a working configuration.
type Config struct {
	SnapThreshold       int
	VideoDurationFrames int
	AudioDurationFrames int
	ImageDurationFrames int
}

func (c Config) withDefaults() Config {
	if c.SnapThreshold <= 0 {
		c.SnapThreshold = timeline.DefaultSnapThreshold
	}
	if c.VideoDurationFrames <= 0 {
		c.VideoDurationFrames = DefaultVideoDurationFrames
	}
	if c.AudioDurationFrames <= 0 {
		c.AudioDurationFrames = DefaultAudioDurationFrames
	}
	if c.ImageDurationFrames <= 0 {
		c.ImageDurationFrames = DefaultImageDurationFrames
	}
	return c
}

// Controller owns the drag session and turns drag events from the webview
// into store dispatches. Item moves update the store on every drag-over, so
// the timeline preview is the committed state and dropping only has to clear
// the session. Asset drops are discrete insertions and go through the slot
// resolver; live moves deliberately do not.
type Controller struct {
	store *state.Store
	cfg   Config

	mu          sync.Mutex
	session     *Session
	snapEnabled bool
	lastSnap    timeline.SnapResult
}

// NewController returns an idle controller with snapping enabled.
func NewController(store *state.Store, cfg Config) *Controller {
	return &Controller{
		store:       store,
		cfg:         cfg.withDefaults(),
		snapEnabled: true,
	}
}

// SetSnapEnabled toggles the magnet globally. Shift-dragging still disables
// snapping per operation on top of this.
func (c *Controller) SetSnapEnabled(enabled bool) {
	c.mu.Lock()
	c.snapEnabled = enabled
	c.mu.Unlock()
}

// SnapEnabled reports the magnet toggle.
func (c *Controller) SnapEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapEnabled
}

// LastSnap returns the most recent snap decision of the active drag, for
// snap-guide rendering. Cleared when the drag ends.
func (c *Controller) LastSnap() timeline.SnapResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSnap
}

// Active reports the kind of the session in progress.
func (c *Controller) Active() SessionKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return SessionNone
	}
	return c.session.Kind
}

// BeginItemDrag starts repositioning an item. The pixel offset between the
// pointer and the item's left edge is recorded so the item does not jump to
// the pointer on the first move. Dragging selects the item; locked tracks
// refuse the drag.
func (c *Controller) BeginItemDrag(itemID string, pointerPx float64) {
	s := c.store.State()
	it, trackID, ok := s.ItemByID(itemID)
	if !ok {
		return
	}
	if tr, found := s.TrackByID(trackID); found && tr.Locked {
		return
	}
	ppf := timeline.PixelsPerFrame(s.Zoom)
	c.store.Dispatch(state.SelectItem{ItemID: itemID})
	c.setSession(&Session{
		Kind:     SessionItem,
		ItemID:   itemID,
		OffsetPx: pointerPx - timeline.FramesToPixels(it.From, ppf),
	})
}

// DragItemOver repositions the dragged item under the pointer, live. The
// candidate frame comes from the pointer minus the grab offset, runs through
// the snap engine with the dragged item excluded, and is clamped to frame 0.
// Hovering a different, unlocked track moves the item across.
func (c *Controller) DragItemOver(trackID string, pointerPx float64, disableSnap bool) {
	c.mu.Lock()
	sess := c.session
	snapOn := c.snapEnabled && !disableSnap
	c.mu.Unlock()
	if sess == nil || sess.Kind != SessionItem {
		return
	}

	s := c.store.State()
	it, currentTrackID, ok := s.ItemByID(sess.ItemID)
	if !ok {
		c.End()
		return
	}
	ppf := timeline.PixelsPerFrame(s.Zoom)
	raw := timeline.PixelsToFrames(pointerPx-sess.OffsetPx, ppf)
	res := timeline.ComputeSnap(raw, s.Tracks, sess.ItemID, s.CurrentFrame, snapOn, c.cfg.SnapThreshold)
	frame := res.Frame
	if frame < 0 {
		frame = 0
	}
	c.mu.Lock()
	c.lastSnap = res
	c.mu.Unlock()

	if trackID != "" && trackID != currentTrackID {
		if tr, found := s.TrackByID(trackID); found && !tr.Locked {
			c.store.Dispatch(state.MoveItemToTrack{ItemID: sess.ItemID, ToTrackID: trackID, From: frame})
			return
		}
	}
	c.store.Dispatch(state.SetItemRange{ItemID: sess.ItemID, From: frame, Duration: it.Duration})
}

// DropItem finishes an item drag: one last position update, then the session
// is cleared. The store already holds the final position.
func (c *Controller) DropItem(trackID string, pointerPx float64, disableSnap bool) {
	c.DragItemOver(trackID, pointerPx, disableSnap)
	c.End()
}

// BeginResize starts an edge resize, snapshotting the item's range and the
// grab pixel.
func (c *Controller) BeginResize(itemID, edge string, pointerPx float64) {
	if edge != EdgeLeft && edge != EdgeRight {
		return
	}
	s := c.store.State()
	it, trackID, ok := s.ItemByID(itemID)
	if !ok {
		return
	}
	if tr, found := s.TrackByID(trackID); found && tr.Locked {
		return
	}
	c.store.Dispatch(state.SelectItem{ItemID: itemID})
	c.setSession(&Session{
		Kind:          SessionResize,
		ItemID:        itemID,
		Edge:          edge,
		StartPx:       pointerPx,
		StartFrom:     it.From,
		StartDuration: it.Duration,
	})
}

// ResizeMove applies the pixel delta since BeginResize as a frame delta.
// The left edge moves From while pinning the right edge; the right edge
// changes only the duration. Durations never drop below one frame.
func (c *Controller) ResizeMove(pointerPx float64) {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()
	if sess == nil || sess.Kind != SessionResize {
		return
	}

	s := c.store.State()
	ppf := timeline.PixelsPerFrame(s.Zoom)
	deltaFrames := timeline.PixelsToFrames(pointerPx-sess.StartPx, ppf)

	switch sess.Edge {
	case EdgeLeft:
		end := sess.StartFrom + sess.StartDuration
		from := sess.StartFrom + deltaFrames
		if from < 0 {
			from = 0
		}
		if from > end-1 {
			from = end - 1
		}
		c.store.Dispatch(state.SetItemRange{ItemID: sess.ItemID, From: from, Duration: end - from})
	case EdgeRight:
		duration := sess.StartDuration + deltaFrames
		if duration < 1 {
			duration = 1
		}
		c.store.Dispatch(state.SetItemRange{ItemID: sess.ItemID, From: sess.StartFrom, Duration: duration})
	}
}

// BeginAssetDrag stashes the asset panel's payload when a drag starts, so a
// drop can resolve it even if the transport hands over nothing.
func (c *Controller) BeginAssetDrag(payloadJSON string) {
	payload, ok := parsePayload(payloadJSON)
	if !ok {
		return
	}
	c.setSession(&Session{Kind: SessionAsset, Payload: payload})
}

// DropAsset inserts a new item for a dragged asset. The drop frame runs
// through the snap engine (nothing excluded) and then the slot resolver, so
// fresh items land without overlapping. The item kind, source and duration
// come from the asset record when it still exists, falling back to the
// payload; a malformed payload silently ignores the drop.
func (c *Controller) DropAsset(trackID string, pointerPx float64, payloadJSON string, disableSnap bool) {
	c.mu.Lock()
	sess := c.session
	snapOn := c.snapEnabled && !disableSnap
	c.mu.Unlock()

	payload, ok := parsePayload(payloadJSON)
	if !ok {
		if sess == nil || sess.Kind != SessionAsset {
			c.End()
			return
		}
		payload = sess.Payload
	}
	defer c.End()

	s := c.store.State()
	track, found := s.TrackByID(trackID)
	if !found || track.Locked {
		return
	}

	kind := payload.Kind
	src := payload.Src
	durationFrames := payload.DurationFrames
	if asset, exists := s.AssetByID(payload.AssetID); exists {
		kind = asset.Kind
		src = asset.Src
		durationFrames = asset.DurationFrames
	}
	switch kind {
	case state.KindVideo, state.KindAudio, state.KindImage:
	default:
		log.Printf("Warning: ignoring drop of asset %s with unusable kind %q", payload.AssetID, kind)
		return
	}

	ppf := timeline.PixelsPerFrame(s.Zoom)
	raw := timeline.PixelsToFrames(pointerPx, ppf)
	res := timeline.ComputeSnap(raw, s.Tracks, "", s.CurrentFrame, snapOn, c.cfg.SnapThreshold)
	preferred := res.Frame
	if preferred < 0 {
		preferred = 0
	}

	duration := durationFrames
	if duration <= 0 {
		duration = c.defaultDuration(kind)
	}
	from := timeline.FindAvailableSlot(track.Items, duration, preferred)

	item := state.Item{
		ID:       uuid.NewString(),
		Kind:     kind,
		From:     from,
		Duration: duration,
		AssetID:  payload.AssetID,
		Src:      src,
	}
	if kind == state.KindVideo || kind == state.KindAudio {
		item.Volume = 1
	}
	c.store.Dispatch(state.AddItem{TrackID: trackID, Item: item})
	c.store.Dispatch(state.SelectItem{ItemID: item.ID})
}

// ReorderTracks swaps two track positions from a track-label drag.
func (c *Controller) ReorderTracks(fromIndex, toIndex int) {
	c.store.Dispatch(state.ReorderTracks{FromIndex: fromIndex, ToIndex: toIndex})
}

// End clears the drag session. Pointer-up and drag-cancel both land here;
// whatever the last move dispatched stays as the outcome.
func (c *Controller) End() {
	c.mu.Lock()
	c.session = nil
	c.lastSnap = timeline.SnapResult{}
	c.mu.Unlock()
}

func (c *Controller) setSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.lastSnap = timeline.SnapResult{}
	c.mu.Unlock()
}

func (c *Controller) defaultDuration(kind string) int {
	switch kind {
	case state.KindAudio:
		return c.cfg.AudioDurationFrames
	case state.KindImage:
		return c.cfg.ImageDurationFrames
	default:
		return c.cfg.VideoDurationFrames
	}
}

func parsePayload(payloadJSON string) (AssetPayload, bool) {
	if payloadJSON == "" {
		return AssetPayload{}, false
	}
	var payload AssetPayload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		log.Printf("Warning: malformed asset drag payload: %v", err)
		return AssetPayload{}, false
	}
	if payload.AssetID == "" {
		log.Printf("Warning: asset drag payload missing assetId")
		return AssetPayload{}, false
	}
	return payload, true
}
