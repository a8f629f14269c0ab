package canvas

import (
	"math"
	"sync"

	"github.com/cutroomapp/cutroom/internal/state"
)

// Drag modes. The empty handle on pointer-down means the item body was
// grabbed; the named handles come from the selection overlay.
const (
	ModeMove             = "move"
	ModeRotate           = "rotate"
	ModeScaleTopLeft     = "scale-tl"
	ModeScaleTopRight    = "scale-tr"
	ModeScaleBottomLeft  = "scale-bl"
	ModeScaleBottomRight = "scale-br"
)

const (
	// scaleDragDivisor converts drag distance to scale change: 200 pixels of
	// travel doubles (or zeroes) the scale factor.
	scaleDragDivisor = 200.0
	// minScale is the floor for width and height scale factors.
	minScale = 0.1
)

type dragState struct {
	itemID     string
	mode       string
	start      Point
	startProps state.ItemProperties
}

// Controller is the pointer state machine for the canvas: Idle until a
// pointer-down lands on an item body or a transform handle, then Dragging in
// one of the modes above until pointer-up. Every pointer-move dispatches the
// transform straight into the store, so the canvas preview is always reading
// committed state and pointer-up has nothing left to commit.
type Controller struct {
	store  *state.Store
	bounds BoundsSource

	mu   sync.Mutex
	drag *dragState
}

// NewController returns an idle controller reading bounds from the given
// source (DerivedBounds when nil).
func NewController(store *state.Store, bounds BoundsSource) *Controller {
	if bounds == nil {
		bounds = DerivedBounds{}
	}
	return &Controller{store: store, bounds: bounds}
}

// PointerDown handles a pointer-down inside the player container. With no
// handle it hit-tests the canvas: a hit selects the item and arms a move
// drag, a miss deselects. A named handle arms the matching transform drag on
// the current selection. Items on locked tracks can be selected but not
// dragged.
func (c *Controller) PointerDown(screen Point, container Rect, handle string) {
	s := c.store.State()
	p := ScreenToComposition(screen, container, s.CompositionWidth, s.CompositionHeight)

	if handle == "" {
		id := FindTopItemAt(p, s.Tracks, s.CurrentFrame, s.CompositionWidth, s.CompositionHeight, c.bounds)
		if id == "" {
			c.store.Dispatch(state.SelectItem{})
			return
		}
		next := c.store.Dispatch(state.SelectItem{ItemID: id})
		it, trackID, ok := next.ItemByID(id)
		if !ok || it.Properties == nil {
			return
		}
		if tr, found := next.TrackByID(trackID); found && tr.Locked {
			return
		}
		c.arm(id, ModeMove, p, *it.Properties)
		return
	}

	mode := handle
	switch mode {
	case ModeRotate, ModeScaleTopLeft, ModeScaleTopRight, ModeScaleBottomLeft, ModeScaleBottomRight:
	default:
		return
	}
	it, trackID, ok := s.SelectedItem()
	if !ok {
		return
	}
	if tr, found := s.TrackByID(trackID); found && tr.Locked {
		return
	}
	props := state.DefaultProperties()
	if it.Properties != nil {
		props = *it.Properties
	}
	c.arm(it.ID, mode, p, props)
}

// PointerMove applies the active drag. Idle moves are ignored.
func (c *Controller) PointerMove(screen Point, container Rect) {
	c.mu.Lock()
	d := c.drag
	c.mu.Unlock()
	if d == nil {
		return
	}

	s := c.store.State()
	p := ScreenToComposition(screen, container, s.CompositionWidth, s.CompositionHeight)
	dx := p.X - d.start.X
	dy := p.Y - d.start.Y

	props := d.startProps
	switch d.mode {
	case ModeMove:
		props.X = d.startProps.X + dx
		props.Y = d.startProps.Y + dy
	case ModeRotate:
		props.Rotation = math.Atan2(dy, dx) * 180 / math.Pi
	default:
		distance := math.Hypot(dx, dy)
		direction := 1.0
		if d.mode == ModeScaleTopLeft || d.mode == ModeScaleBottomLeft {
			direction = -1.0
		}
		factor := 1 + direction*distance/scaleDragDivisor
		props.Width = math.Max(minScale, d.startProps.Width*factor)
		props.Height = math.Max(minScale, d.startProps.Height*factor)
	}

	c.store.Dispatch(state.UpdateItemProperties{ItemID: d.itemID, Properties: props})
}

// PointerUp ends the drag. The last move already committed the final
// transform, so this only clears the transient state.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	c.drag = nil
	c.mu.Unlock()
}

// Dragging reports the active mode and item, or ("", "") when idle.
func (c *Controller) Dragging() (mode, itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drag == nil {
		return "", ""
	}
	return c.drag.mode, c.drag.itemID
}

func (c *Controller) arm(itemID, mode string, start Point, props state.ItemProperties) {
	c.mu.Lock()
	c.drag = &dragState{itemID: itemID, mode: mode, start: start, startProps: props}
	c.mu.Unlock()
}
