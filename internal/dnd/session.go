// Package dnd drives every timeline drag: repositioning items, resizing them
// by their edges, dropping assets from the library and reordering tracks.
// The payload travels in a typed session owned by the controller, never in a
// shared global, so two drag sources can coexist without trampling each
// other's state.
package dnd

// SessionKind says what a drag session is carrying.
type SessionKind int

const (
	SessionNone SessionKind = iota
	SessionItem
	SessionResize
	SessionAsset
)

// Resize edges.
const (
	EdgeLeft  = "left"
	EdgeRight = "right"
)

// AssetPayload is the serializable drag payload the asset panel attaches to
// a drag. The asset id is the contract; the remaining fields let a drop
// succeed even when the asset record is gone by the time it lands.
type AssetPayload struct {
	AssetID        string `json:"assetId"`
	Kind           string `json:"kind,omitempty"`
	Name           string `json:"name,omitempty"`
	Src            string `json:"src,omitempty"`
	DurationFrames int    `json:"durationInFrames,omitempty"`
}

// Session is the transient state of one drag. It lives in the controller
// from begin to end and never enters the editor state.
type Session struct {
	Kind SessionKind

	// Item reposition.
	ItemID   string
	OffsetPx float64 // pointer to item left edge, recorded at drag start

	// Edge resize.
	Edge          string
	StartPx       float64
	StartFrom     int
	StartDuration int

	// Asset drag.
	Payload AssetPayload
}
