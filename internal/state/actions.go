package state

// Action is one editor state transition. The vocabulary below is closed: the
// reducer applies the types it knows and returns the state unchanged for
// anything else, so a stale or misrouted action can never corrupt the
// document.
type Action interface{}

// Track actions.

// AddTrack appends a track to the end of the track list.
type AddTrack struct {
	Track Track
}

// RemoveTrack deletes a track and everything on it.
type RemoveTrack struct {
	TrackID string
}

// RenameTrack sets a track's display name.
type RenameTrack struct {
	TrackID string
	Name    string
}

// ReorderTracks swaps the tracks at the two positions.
type ReorderTracks struct {
	FromIndex int
	ToIndex   int
}

// SetTrackHidden toggles a track's visibility on the canvas.
type SetTrackHidden struct {
	TrackID string
	Hidden  bool
}

// SetTrackLocked toggles whether a track's items accept edits.
type SetTrackLocked struct {
	TrackID string
	Locked  bool
}

// Item actions.

// AddItem places an item on a track. The caller assigns the item id.
type AddItem struct {
	TrackID string
	Item    Item
}

// RemoveItem deletes an item wherever it lives.
type RemoveItem struct {
	ItemID string
}

// UpdateItem replaces the item with the same id in place.
type UpdateItem struct {
	Item Item
}

// UpdateItemProperties replaces an item's visual transform.
type UpdateItemProperties struct {
	ItemID     string
	Properties ItemProperties
}

// SetItemRange moves and/or resizes an item on its own track.
type SetItemRange struct {
	ItemID   string
	From     int
	Duration int
}

// MoveItemToTrack removes an item from its current track and appends it to
// another, preserving every field except From.
type MoveItemToTrack struct {
	ItemID    string
	ToTrackID string
	From      int
}

// Selection actions.

// SelectItem selects an item by id; the empty id deselects.
type SelectItem struct {
	ItemID string
}

// SelectTrack selects a track by id; the empty id deselects.
type SelectTrack struct {
	TrackID string
}

// Playback and view actions.

// SetCurrentFrame moves the playhead. Negative frames clamp to 0; frames past
// the composition duration are stored as-is, seek clamping is the caller's
// call.
type SetCurrentFrame struct {
	Frame int
}

// SetPlaying records whether the player collaborator is playing.
type SetPlaying struct {
	Playing bool
}

// SetZoom sets the timeline zoom factor.
type SetZoom struct {
	Zoom float64
}

// Asset actions.

// AddAsset registers an imported asset.
type AddAsset struct {
	Asset Asset
}

// RemoveAsset drops an asset from the library. Items referencing it are left
// alone.
type RemoveAsset struct {
	AssetID string
}

// Composition actions.

// SetCompositionSize changes the canvas dimensions.
type SetCompositionSize struct {
	Width  int
	Height int
}

// SetDuration changes the composition length in frames.
type SetDuration struct {
	Frames int
}
