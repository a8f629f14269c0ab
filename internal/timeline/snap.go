package timeline

import (
	"math"

	"github.com/cutroomapp/cutroom/internal/state"
)

// GridInterval is the spacing of the implicit frame grid the snap engine
// falls back to. DefaultSnapThreshold is the distance in frames below which a
// candidate locks onto a target; settings may override it per call.
const (
	GridInterval         = 5
	DefaultSnapThreshold = 3
)

// Snap target kinds, reported so the UI can hint what a drag locked onto.
const (
	TargetTimelineStart = "timeline-start"
	TargetPlayhead      = "playhead"
	TargetItemStart     = "item-start"
	TargetItemEnd       = "item-end"
	TargetGrid          = "grid"
)

// SnapTarget is one position a drag may lock onto.
type SnapTarget struct {
	Kind   string `json:"kind"`
	Frame  int    `json:"frame"`
	ItemID string `json:"itemId,omitempty"`
}

// SnapResult is the outcome of ComputeSnap. Frame equals the candidate when
// Snapped is false.
type SnapResult struct {
	Frame   int        `json:"frame"`
	Target  SnapTarget `json:"target"`
	Snapped bool       `json:"snapped"`
}

// ComputeSnap resolves a candidate frame against every snap target and picks
// the closest one within the threshold (strictly closer than threshold
// frames). Targets are considered in a fixed order: the timeline start, the
// playhead, each item's start and end in track order (skipping excludeItemID,
// so a dragged item never snaps to itself), then the nearest grid line. At
// equal distance the earlier target wins, which keeps item edges preferred
// over grid lines. Pure: same inputs, same result.
func ComputeSnap(candidate int, tracks []state.Track, excludeItemID string, playhead int, enabled bool, threshold int) SnapResult {
	if !enabled {
		return SnapResult{Frame: candidate}
	}

	targets := make([]SnapTarget, 0, 8)
	targets = append(targets,
		SnapTarget{Kind: TargetTimelineStart, Frame: 0},
		SnapTarget{Kind: TargetPlayhead, Frame: playhead},
	)
	for ti := range tracks {
		for ii := range tracks[ti].Items {
			it := tracks[ti].Items[ii]
			if it.ID == excludeItemID {
				continue
			}
			targets = append(targets,
				SnapTarget{Kind: TargetItemStart, Frame: it.From, ItemID: it.ID},
				SnapTarget{Kind: TargetItemEnd, Frame: it.End(), ItemID: it.ID},
			)
		}
	}
	grid := int(math.Round(float64(candidate)/GridInterval)) * GridInterval
	targets = append(targets, SnapTarget{Kind: TargetGrid, Frame: grid})

	var best SnapTarget
	bestDist := 0
	found := false
	for _, tgt := range targets {
		d := candidate - tgt.Frame
		if d < 0 {
			d = -d
		}
		if !found || d < bestDist {
			found = true
			best = tgt
			bestDist = d
		}
	}
	if !found || bestDist >= threshold {
		return SnapResult{Frame: candidate}
	}
	return SnapResult{Frame: best.Frame, Target: best, Snapped: true}
}
