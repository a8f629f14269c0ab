// Package canvas implements the composition-space side of the editor: the
// screen-to-composition mapping for the letterboxed player, rotation-aware
// hit testing, and the pointer state machine that moves, scales and rotates
// items. Composition coordinates are centered: (0,0) is the middle of the
// frame, x grows right, y grows down, matching the item transform model.
package canvas

import "math"

// Point is a position, in screen or composition pixels depending on context.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in screen pixels, typically the player
// container as reported by the webview.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RotatedRect is a rectangle centered at (CX, CY) in composition space,
// rotated by Rotation degrees about its center.
type RotatedRect struct {
	CX       float64 `json:"cx"`
	CY       float64 `json:"cy"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Rotation float64 `json:"rotation"`
}

// Contains reports whether the point lies inside the rectangle. The point is
// rotated back into the rectangle's local frame, so rotated items hit-test
// exactly along their drawn edges.
func (r RotatedRect) Contains(p Point) bool {
	dx := p.X - r.CX
	dy := p.Y - r.CY
	rad := -r.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	localX := dx*cos - dy*sin
	localY := dx*sin + dy*cos
	return math.Abs(localX) <= r.W/2 && math.Abs(localY) <= r.H/2
}

// ScreenToComposition maps a screen point inside the player container to
// centered composition coordinates. The player is rendered letterboxed: scaled
// to fit the container while keeping the composition's aspect ratio, centered
// on the leftover axis. A degenerate container or composition maps everything
// to the origin.
func ScreenToComposition(screen Point, container Rect, compWidth, compHeight int) Point {
	if container.Width <= 0 || container.Height <= 0 || compWidth <= 0 || compHeight <= 0 {
		return Point{}
	}

	compAspect := float64(compWidth) / float64(compHeight)
	containerAspect := container.Width / container.Height

	var playerW, playerH float64
	if containerAspect > compAspect {
		// Container is wider than the composition: bars left and right.
		playerH = container.Height
		playerW = playerH * compAspect
	} else {
		// Container is taller (or equal): bars top and bottom.
		playerW = container.Width
		playerH = playerW / compAspect
	}
	offsetX := (container.Width - playerW) / 2
	offsetY := (container.Height - playerH) / 2

	scale := float64(compWidth) / playerW
	return Point{
		X: (screen.X - container.X - offsetX - playerW/2) * scale,
		Y: (screen.Y - container.Y - offsetY - playerH/2) * scale,
	}
}
