package canvas

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScreenToComposition(t *testing.T) {
	tests := []struct {
		name      string
		screen    Point
		container Rect
		compW     int
		compH     int
		want      Point
	}{
		{
			name:      "container center maps to composition origin",
			screen:    Point{X: 400, Y: 300},
			container: Rect{X: 0, Y: 0, Width: 800, Height: 600},
			compW:     1920, compH: 1080,
			want: Point{X: 0, Y: 0},
		},
		{
			name:      "wide container letterboxes left and right",
			screen:    Point{X: 750, Y: 250},
			container: Rect{X: 0, Y: 0, Width: 2000, Height: 500},
			compW:     1000, compH: 1000,
			want: Point{X: -500, Y: 0},
		},
		{
			name:      "tall container letterboxes top and bottom",
			screen:    Point{X: 0, Y: 300},
			container: Rect{X: 0, Y: 0, Width: 800, Height: 600},
			compW:     1920, compH: 1080,
			want: Point{X: -960, Y: 0},
		},
		{
			name:      "container origin offset is subtracted",
			screen:    Point{X: 300, Y: 250},
			container: Rect{X: 100, Y: 50, Width: 200, Height: 200},
			compW:     100, compH: 100,
			want: Point{X: 50, Y: 50},
		},
		{
			name:      "zero size container maps to origin",
			screen:    Point{X: 123, Y: 456},
			container: Rect{X: 0, Y: 0, Width: 0, Height: 0},
			compW:     1920, compH: 1080,
			want: Point{X: 0, Y: 0},
		},
		{
			name:      "zero composition maps to origin",
			screen:    Point{X: 123, Y: 456},
			container: Rect{X: 0, Y: 0, Width: 800, Height: 600},
			compW:     0, compH: 0,
			want: Point{X: 0, Y: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenToComposition(tt.screen, tt.container, tt.compW, tt.compH)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("ScreenToComposition(%+v) = (%v, %v), want (%v, %v)",
					tt.screen, got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestScreenToCompositionScaleIsUniform(t *testing.T) {
	// A 200x200 container showing a 100x100 composition: 2 screen pixels per
	// composition unit on both axes.
	container := Rect{X: 0, Y: 0, Width: 200, Height: 200}
	got := ScreenToComposition(Point{X: 200, Y: 200}, container, 100, 100)
	if !almostEqual(got.X, 50) || !almostEqual(got.Y, 50) {
		t.Errorf("bottom-right corner = (%v, %v), want (50, 50)", got.X, got.Y)
	}
}

func TestRotatedRectContains(t *testing.T) {
	tests := []struct {
		name string
		rect RotatedRect
		p    Point
		want bool
	}{
		{
			name: "inside unrotated",
			rect: RotatedRect{W: 100, H: 50},
			p:    Point{X: 49, Y: 24},
			want: true,
		},
		{
			name: "outside unrotated",
			rect: RotatedRect{W: 100, H: 50},
			p:    Point{X: 51, Y: 0},
			want: false,
		},
		{
			name: "edge counts as inside",
			rect: RotatedRect{W: 100, H: 50},
			p:    Point{X: 50, Y: 25},
			want: true,
		},
		{
			name: "rotation 90 swaps the axes in",
			rect: RotatedRect{W: 100, H: 50, Rotation: 90},
			p:    Point{X: 0, Y: 49},
			want: true,
		},
		{
			name: "rotation 90 swaps the axes out",
			rect: RotatedRect{W: 100, H: 50, Rotation: 90},
			p:    Point{X: 49, Y: 0},
			want: false,
		},
		{
			name: "offset center",
			rect: RotatedRect{CX: 200, CY: -100, W: 20, H: 20},
			p:    Point{X: 205, Y: -95},
			want: true,
		},
		{
			name: "rotated 45 catches the flank",
			rect: RotatedRect{W: 100, H: 10, Rotation: 45},
			p:    Point{X: 30, Y: 30},
			want: true,
		},
		{
			name: "rotated 45 misses the old corner",
			rect: RotatedRect{W: 100, H: 10, Rotation: 45},
			p:    Point{X: 45, Y: 0},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) on %+v = %v, want %v", tt.p, tt.rect, got, tt.want)
			}
		})
	}
}
