package canvas

import (
	"sync"

	"github.com/cutroomapp/cutroom/internal/state"
)

// BoundsSource yields the visual bounds of an item on the canvas. Hit testing
// and the selection overlay consume this interface instead of measuring the
// DOM, so the engine stays independent of the rendering layer.
type BoundsSource interface {
	ItemBounds(it state.Item, compWidth, compHeight int) RotatedRect
}

// DerivedBounds computes bounds straight from the item transform: the
// canonical item size is the full composition scaled by the Width and Height
// factors, offset from the composition center by X and Y.
type DerivedBounds struct{}

func (DerivedBounds) ItemBounds(it state.Item, compWidth, compHeight int) RotatedRect {
	props := state.DefaultProperties()
	if it.Properties != nil {
		props = *it.Properties
	}
	return RotatedRect{
		CX:       props.X,
		CY:       props.Y,
		W:        float64(compWidth) * props.Width,
		H:        float64(compHeight) * props.Height,
		Rotation: props.Rotation,
	}
}

// ReportedBounds lets the rendering collaborator report the bounds it
// actually drew for an item (text measured after layout, media fitted to its
// own aspect ratio). Items without a report fall back to the derived bounds.
type ReportedBounds struct {
	mu       sync.RWMutex
	byItem   map[string]RotatedRect
	fallback BoundsSource
}

// NewReportedBounds returns an empty report table falling back to the given
// source, or to DerivedBounds when nil.
func NewReportedBounds(fallback BoundsSource) *ReportedBounds {
	if fallback == nil {
		fallback = DerivedBounds{}
	}
	return &ReportedBounds{
		byItem:   map[string]RotatedRect{},
		fallback: fallback,
	}
}

// Report stores the measured bounds for an item.
func (b *ReportedBounds) Report(itemID string, r RotatedRect) {
	b.mu.Lock()
	b.byItem[itemID] = r
	b.mu.Unlock()
}

// Forget drops the report for an item, e.g. when it is removed.
func (b *ReportedBounds) Forget(itemID string) {
	b.mu.Lock()
	delete(b.byItem, itemID)
	b.mu.Unlock()
}

func (b *ReportedBounds) ItemBounds(it state.Item, compWidth, compHeight int) RotatedRect {
	b.mu.RLock()
	r, ok := b.byItem[it.ID]
	b.mu.RUnlock()
	if ok {
		return r
	}
	return b.fallback.ItemBounds(it, compWidth, compHeight)
}
