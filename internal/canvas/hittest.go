package canvas

import "github.com/cutroomapp/cutroom/internal/state"

// FindTopItemAt returns the id of the topmost item under a composition-space
// point, or "" for empty canvas (which callers treat as deselect). Only items
// visible at the current frame count: the playhead must lie inside
// [From, From+Duration). Render order puts later tracks and later items on
// top, so the scan runs in reverse and the first hit wins. Hidden tracks
// never hit; opacity plays no part.
func FindTopItemAt(p Point, tracks []state.Track, currentFrame, compWidth, compHeight int, bounds BoundsSource) string {
	for ti := len(tracks) - 1; ti >= 0; ti-- {
		tr := tracks[ti]
		if tr.Hidden {
			continue
		}
		for ii := len(tr.Items) - 1; ii >= 0; ii-- {
			it := tr.Items[ii]
			if currentFrame < it.From || currentFrame >= it.End() {
				continue
			}
			if bounds.ItemBounds(it, compWidth, compHeight).Contains(p) {
				return it.ID
			}
		}
	}
	return ""
}
