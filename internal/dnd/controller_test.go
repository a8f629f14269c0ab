package dnd

import (
	"testing"

	"github.com/cutroomapp/cutroom/internal/state"
	"github.com/cutroomapp/cutroom/internal/timeline"
)

// Fixture geometry: zoom 1 means 2 pixels per frame, so pixel = frame * 2.
func newDndFixture(t *testing.T) (*state.Store, *Controller) {
	t.Helper()
	st := state.NewStore(state.NewEditorState())
	s := st.State()
	st.Dispatch(state.AddItem{
		TrackID: s.Tracks[0].ID,
		Item:    state.Item{ID: "clip", Kind: state.KindVideo, From: 100, Duration: 50, AssetID: "asset-1"},
	})
	st.Dispatch(state.AddAsset{Asset: state.Asset{
		ID:             "asset-1",
		Name:           "beach.mp4",
		Kind:           state.KindVideo,
		Src:            "/media/asset-1",
		DurationFrames: 240,
	}})
	return st, NewController(st, Config{})
}

func requireItem(t *testing.T, st *state.Store, id string) (state.Item, string) {
	t.Helper()
	it, trackID, ok := st.State().ItemByID(id)
	if !ok {
		t.Fatalf("item %q missing", id)
	}
	return it, trackID
}

func TestBeginItemDragSelectsAndRecordsOffset(t *testing.T) {
	st, c := newDndFixture(t)
	track0 := st.State().Tracks[0].ID

	// Grab 10px to the right of the item's left edge (frame 100 = pixel 200).
	c.BeginItemDrag("clip", 210)
	if got := st.State().SelectedItemID; got != "clip" {
		t.Fatalf("SelectedItemID = %q, want clip", got)
	}
	if got := c.Active(); got != SessionItem {
		t.Fatalf("Active() = %v, want SessionItem", got)
	}

	// Pointer at pixel 310: left edge lands at pixel 300 = frame 150.
	c.DragItemOver(track0, 310, false)
	it, _ := requireItem(t, st, "clip")
	if it.From != 150 {
		t.Errorf("From after drag = %d, want 150", it.From)
	}
	if it.Duration != 50 {
		t.Errorf("Duration changed during move: %d, want 50", it.Duration)
	}
}

func TestDragItemSnapsToOtherItemBoundary(t *testing.T) {
	st, c := newDndFixture(t)
	s := st.State()
	st.Dispatch(state.AddItem{
		TrackID: s.Tracks[1].ID,
		Item:    state.Item{ID: "other", Kind: state.KindAudio, From: 45, Duration: 10},
	})

	c.BeginItemDrag("clip", 210) // offset 10px
	// Raw candidate frame 47: pixel 47*2 + 10 = 104.
	c.DragItemOver(s.Tracks[0].ID, 104, false)

	it, _ := requireItem(t, st, "clip")
	if it.From != 45 {
		t.Fatalf("From = %d, want snapped to 45", it.From)
	}
	snap := c.LastSnap()
	if !snap.Snapped || snap.Target.Kind != timeline.TargetItemStart || snap.Target.ItemID != "other" {
		t.Errorf("LastSnap() = %+v, want item-start of other", snap)
	}
}

func TestShiftDisablesSnapPerOperation(t *testing.T) {
	st, c := newDndFixture(t)
	s := st.State()
	st.Dispatch(state.AddItem{
		TrackID: s.Tracks[1].ID,
		Item:    state.Item{ID: "other", Kind: state.KindAudio, From: 45, Duration: 10},
	})

	c.BeginItemDrag("clip", 210)
	c.DragItemOver(s.Tracks[0].ID, 104, true)

	it, _ := requireItem(t, st, "clip")
	if it.From != 47 {
		t.Errorf("From = %d, want raw 47 with snapping off", it.From)
	}
	if c.LastSnap().Snapped {
		t.Errorf("LastSnap() = %+v, want no snap", c.LastSnap())
	}
}

func TestSnapToggleDisablesGlobally(t *testing.T) {
	st, c := newDndFixture(t)
	c.SetSnapEnabled(false)
	c.BeginItemDrag("clip", 210)
	c.DragItemOver(st.State().Tracks[0].ID, 104, false)
	it, _ := requireItem(t, st, "clip")
	if it.From != 47 {
		t.Errorf("From = %d, want raw 47 with magnet off", it.From)
	}
}

func TestDragItemAcrossTracksPreservesFields(t *testing.T) {
	st, c := newDndFixture(t)
	target := st.State().Tracks[1].ID

	c.BeginItemDrag("clip", 210)
	c.DropItem(target, 310, false)

	it, trackID := requireItem(t, st, "clip")
	if trackID != target {
		t.Fatalf("item on track %q, want %q", trackID, target)
	}
	if it.From != 150 || it.Duration != 50 || it.AssetID != "asset-1" || it.Kind != state.KindVideo {
		t.Errorf("moved item = %+v, want fields preserved at frame 150", it)
	}
	if got := c.Active(); got != SessionNone {
		t.Errorf("Active() after drop = %v, want SessionNone", got)
	}
}

func TestDragItemToLockedTrackStaysPut(t *testing.T) {
	st, c := newDndFixture(t)
	source := st.State().Tracks[0].ID
	target := st.State().Tracks[1].ID
	st.Dispatch(state.SetTrackLocked{TrackID: target, Locked: true})

	c.BeginItemDrag("clip", 210)
	c.DragItemOver(target, 310, false)

	it, trackID := requireItem(t, st, "clip")
	if trackID != source {
		t.Fatalf("item crossed onto a locked track")
	}
	if it.From != 150 {
		t.Errorf("From = %d, want 150 (position still follows the pointer)", it.From)
	}
}

func TestBeginItemDragOnLockedTrackRefused(t *testing.T) {
	st, c := newDndFixture(t)
	st.Dispatch(state.SetTrackLocked{TrackID: st.State().Tracks[0].ID, Locked: true})

	c.BeginItemDrag("clip", 210)
	if got := c.Active(); got != SessionNone {
		t.Errorf("Active() = %v, want SessionNone for a locked track", got)
	}
}

func TestResizeLeftEdgePinsRightEdge(t *testing.T) {
	st, c := newDndFixture(t)

	// Item spans [100, 150): left edge at pixel 200.
	c.BeginResize("clip", EdgeLeft, 200)
	c.ResizeMove(180) // -20px = -10 frames
	it, _ := requireItem(t, st, "clip")
	if it.From != 90 || it.Duration != 60 {
		t.Fatalf("after left grow: [%d, dur %d], want [90, dur 60]", it.From, it.Duration)
	}

	c.ResizeMove(320) // +120px = +60 frames, past the right edge
	it, _ = requireItem(t, st, "clip")
	if it.From != 149 || it.Duration != 1 {
		t.Errorf("after overshoot: [%d, dur %d], want [149, dur 1]", it.From, it.Duration)
	}
	if it.End() != 150 {
		t.Errorf("right edge moved to %d, want 150", it.End())
	}
}

func TestResizeLeftEdgeClampsAtZero(t *testing.T) {
	st, c := newDndFixture(t)
	c.BeginResize("clip", EdgeLeft, 200)
	c.ResizeMove(-300)
	it, _ := requireItem(t, st, "clip")
	if it.From != 0 || it.Duration != 150 {
		t.Errorf("after clamp: [%d, dur %d], want [0, dur 150]", it.From, it.Duration)
	}
}

func TestResizeRightEdgeChangesOnlyDuration(t *testing.T) {
	st, c := newDndFixture(t)

	// Right edge at pixel 300.
	c.BeginResize("clip", EdgeRight, 300)
	c.ResizeMove(340) // +40px = +20 frames
	it, _ := requireItem(t, st, "clip")
	if it.From != 100 || it.Duration != 70 {
		t.Fatalf("after right grow: [%d, dur %d], want [100, dur 70]", it.From, it.Duration)
	}

	c.ResizeMove(100) // -200px, way past the left edge
	it, _ = requireItem(t, st, "clip")
	if it.From != 100 || it.Duration != 1 {
		t.Errorf("after shrink: [%d, dur %d], want [100, dur 1]", it.From, it.Duration)
	}
}

func TestBeginResizeRejectsUnknownEdge(t *testing.T) {
	_, c := newDndFixture(t)
	c.BeginResize("clip", "top", 200)
	if got := c.Active(); got != SessionNone {
		t.Errorf("Active() = %v, want SessionNone for a bogus edge", got)
	}
}

func TestDropAssetUsesAssetMetadata(t *testing.T) {
	st, c := newDndFixture(t)
	target := st.State().Tracks[1].ID

	// Pointer at pixel 100 = frame 50, already on the grid.
	c.DropAsset(target, 100, `{"assetId":"asset-1"}`, false)

	tr, _ := st.State().TrackByID(target)
	if len(tr.Items) != 1 {
		t.Fatalf("target track has %d items, want 1", len(tr.Items))
	}
	it := tr.Items[0]
	if it.Kind != state.KindVideo || it.From != 50 || it.Duration != 240 {
		t.Errorf("dropped item = %+v, want video at 50 for 240 frames", it)
	}
	if it.Src != "/media/asset-1" || it.AssetID != "asset-1" || it.Volume != 1 {
		t.Errorf("dropped item = %+v, want src, asset id and unit volume", it)
	}
	if got := st.State().SelectedItemID; got != it.ID {
		t.Errorf("SelectedItemID = %q, want the new item %q", got, it.ID)
	}
}

func TestDropAssetDefaultDurations(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{name: "image default", payload: `{"assetId":"pic","kind":"image"}`, want: 90},
		{name: "audio default", payload: `{"assetId":"tune","kind":"audio"}`, want: 150},
		{name: "video default", payload: `{"assetId":"mov","kind":"video"}`, want: 150},
		{name: "payload duration wins", payload: `{"assetId":"mov","kind":"video","durationInFrames":33}`, want: 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, c := newDndFixture(t)
			target := st.State().Tracks[1].ID
			c.DropAsset(target, 0, tt.payload, false)
			tr, _ := st.State().TrackByID(target)
			if len(tr.Items) != 1 {
				t.Fatalf("target track has %d items, want 1", len(tr.Items))
			}
			if got := tr.Items[0].Duration; got != tt.want {
				t.Errorf("Duration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDropAssetResolvesOverlapViaSlot(t *testing.T) {
	st, c := newDndFixture(t)
	track0 := st.State().Tracks[0].ID

	// Preferred frame 120 collides with clip [100, 150); the resolver pushes
	// the new item flush to the clip's end.
	c.DropAsset(track0, 240, `{"assetId":"asset-1"}`, false)

	tr, _ := st.State().TrackByID(track0)
	if len(tr.Items) != 2 {
		t.Fatalf("track has %d items, want 2", len(tr.Items))
	}
	if got := tr.Items[1].From; got != 150 {
		t.Errorf("dropped item From = %d, want 150", got)
	}
}

func TestDropAssetMalformedPayloadIgnored(t *testing.T) {
	st, c := newDndFixture(t)
	target := st.State().Tracks[1].ID

	c.DropAsset(target, 100, `{"assetId":`, false)
	c.DropAsset(target, 100, `{"kind":"video"}`, false)
	c.DropAsset(target, 100, "", false)

	tr, _ := st.State().TrackByID(target)
	if len(tr.Items) != 0 {
		t.Errorf("malformed drops created %d items, want 0", len(tr.Items))
	}
}

func TestDropAssetFallsBackToSessionPayload(t *testing.T) {
	st, c := newDndFixture(t)
	target := st.State().Tracks[1].ID

	c.BeginAssetDrag(`{"assetId":"asset-1"}`)
	if got := c.Active(); got != SessionAsset {
		t.Fatalf("Active() = %v, want SessionAsset", got)
	}
	c.DropAsset(target, 100, "", false)

	tr, _ := st.State().TrackByID(target)
	if len(tr.Items) != 1 {
		t.Fatalf("target track has %d items, want 1", len(tr.Items))
	}
	if got := c.Active(); got != SessionNone {
		t.Errorf("Active() after drop = %v, want SessionNone", got)
	}
}

func TestDropAssetOnLockedTrackIgnored(t *testing.T) {
	st, c := newDndFixture(t)
	target := st.State().Tracks[1].ID
	st.Dispatch(state.SetTrackLocked{TrackID: target, Locked: true})

	c.DropAsset(target, 100, `{"assetId":"asset-1"}`, false)
	tr, _ := st.State().TrackByID(target)
	if len(tr.Items) != 0 {
		t.Errorf("locked track accepted a drop")
	}
}

func TestReorderTracks(t *testing.T) {
	st, c := newDndFixture(t)
	first, second := st.State().Tracks[0].ID, st.State().Tracks[1].ID
	c.ReorderTracks(0, 1)
	s := st.State()
	if s.Tracks[0].ID != second || s.Tracks[1].ID != first {
		t.Errorf("tracks = [%s %s], want swapped", s.Tracks[0].ID, s.Tracks[1].ID)
	}
}

func TestEndClearsSession(t *testing.T) {
	st, c := newDndFixture(t)
	c.BeginResize("clip", EdgeRight, 300)
	c.End()
	if got := c.Active(); got != SessionNone {
		t.Fatalf("Active() = %v, want SessionNone", got)
	}
	c.ResizeMove(340)
	it, _ := requireItem(t, st, "clip")
	if it.Duration != 50 {
		t.Errorf("ResizeMove after End changed duration to %d", it.Duration)
	}
}
