// Package timeline holds the pure math the timeline view is built on: the
// frame/pixel mapping, the snap engine and the overlap resolver. Nothing in
// here touches the store or the runtime, so every function is directly
// table-testable.
package timeline

import "math"

// BaseScale is the horizontal scale at zoom 1, in pixels per frame.
const BaseScale = 2.0

// PixelsPerFrame returns the horizontal scale for a zoom factor.
func PixelsPerFrame(zoom float64) float64 {
	return BaseScale * zoom
}

// FramesToPixels converts a frame position to a pixel offset from the
// timeline origin.
func FramesToPixels(frame int, pixelsPerFrame float64) float64 {
	return float64(frame) * pixelsPerFrame
}

// PixelsToFrames converts a pixel offset to the nearest whole frame. A
// non-positive scale maps everything to frame 0 rather than dividing by zero.
func PixelsToFrames(px float64, pixelsPerFrame float64) int {
	if pixelsPerFrame <= 0 {
		return 0
	}
	return int(math.Round(px / pixelsPerFrame))
}

// SecondsToFrames converts a media duration in seconds to whole timeline
// frames. Asset durations cross this boundary exactly once, at import.
func SecondsToFrames(seconds, fps float64) int {
	if seconds <= 0 || fps <= 0 {
		return 0
	}
	return int(math.Round(seconds * fps))
}

// FramesToSeconds is the inverse conversion, used for display.
func FramesToSeconds(frames int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frames) / fps
}
