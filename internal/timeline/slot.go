package timeline

import (
	"sort"

	"github.com/cutroomapp/cutroom/internal/state"
)

// Overlaps reports whether two half-open frame intervals [start1, end1) and
// [start2, end2) intersect. Touching edges do not overlap.
func Overlaps(start1, end1, start2, end2 int) bool {
	return !(end1 <= start2 || end2 <= start1)
}

// ItemsOverlap reports whether two items occupy intersecting frame ranges.
func ItemsOverlap(a, b state.Item) bool {
	return Overlaps(a.From, a.End(), b.From, b.End())
}

// HasConflict reports whether an interval collides with any item on the
// track, ignoring the item with skipID.
func HasConflict(items []state.Item, from, duration int, skipID string) bool {
	for i := range items {
		if items[i].ID == skipID {
			continue
		}
		if Overlaps(from, from+duration, items[i].From, items[i].End()) {
			return true
		}
	}
	return false
}

// FindAvailableSlot picks the start frame for a new item of the given
// duration. The preferred position wins when it is free. Otherwise the items
// are scanned in start order: frame 0 if the first item leaves enough room,
// then the first gap at least duration wide (the new item lands at the gap's
// start, flush against the earlier item), and failing all that the end of the
// last item. Only discrete insertions (drops, pastes, duplicates) consult
// this; live drags are allowed to overlap.
func FindAvailableSlot(items []state.Item, duration, preferred int) int {
	if duration < 1 {
		duration = 1
	}
	if preferred < 0 {
		preferred = 0
	}
	if !HasConflict(items, preferred, duration, "") {
		return preferred
	}

	sorted := make([]state.Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].From < sorted[j].From
	})

	if sorted[0].From >= duration {
		return 0
	}
	lastEnd := sorted[0].End()
	for i := 1; i < len(sorted); i++ {
		if sorted[i].From-lastEnd >= duration {
			return lastEnd
		}
		if e := sorted[i].End(); e > lastEnd {
			lastEnd = e
		}
	}
	return lastEnd
}
