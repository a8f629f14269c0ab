package state

// Apply computes the next editor state for an action. It is a pure function:
// the input state is never mutated, changed tracks and item slices are fresh
// copies, and untouched tracks keep their identity so callers can detect
// change by comparing slice elements. Actions the reducer does not recognize,
// and actions referencing ids that no longer exist, return the input state
// unchanged.
func Apply(s EditorState, action Action) EditorState {
	switch a := action.(type) {

	case AddTrack:
		if a.Track.ID == "" {
			return s
		}
		t := a.Track
		if t.Items == nil {
			t.Items = []Item{}
		}
		next := s
		next.Tracks = append(copyTracks(s.Tracks), t)
		return next

	case RemoveTrack:
		idx := s.TrackIndex(a.TrackID)
		if idx < 0 {
			return s
		}
		removed := s.Tracks[idx]
		next := s
		tracks := copyTracks(s.Tracks[:idx])
		next.Tracks = append(tracks, s.Tracks[idx+1:]...)
		if next.SelectedTrackID == a.TrackID {
			next.SelectedTrackID = ""
		}
		for i := range removed.Items {
			if removed.Items[i].ID == next.SelectedItemID {
				next.SelectedItemID = ""
				break
			}
		}
		return next

	case RenameTrack:
		idx := s.TrackIndex(a.TrackID)
		if idx < 0 {
			return s
		}
		t := s.Tracks[idx]
		t.Name = a.Name
		return replaceTrack(s, idx, t)

	case ReorderTracks:
		if a.FromIndex < 0 || a.FromIndex >= len(s.Tracks) ||
			a.ToIndex < 0 || a.ToIndex >= len(s.Tracks) ||
			a.FromIndex == a.ToIndex {
			return s
		}
		tracks := copyTracks(s.Tracks)
		tracks[a.FromIndex], tracks[a.ToIndex] = tracks[a.ToIndex], tracks[a.FromIndex]
		next := s
		next.Tracks = tracks
		return next

	case SetTrackHidden:
		idx := s.TrackIndex(a.TrackID)
		if idx < 0 || s.Tracks[idx].Hidden == a.Hidden {
			return s
		}
		t := s.Tracks[idx]
		t.Hidden = a.Hidden
		return replaceTrack(s, idx, t)

	case SetTrackLocked:
		idx := s.TrackIndex(a.TrackID)
		if idx < 0 || s.Tracks[idx].Locked == a.Locked {
			return s
		}
		t := s.Tracks[idx]
		t.Locked = a.Locked
		return replaceTrack(s, idx, t)

	case AddItem:
		idx := s.TrackIndex(a.TrackID)
		if idx < 0 || a.Item.ID == "" {
			return s
		}
		it := clampItemRange(a.Item)
		t := s.Tracks[idx]
		t.Items = append(copyItems(t.Items), it)
		return replaceTrack(s, idx, t)

	case RemoveItem:
		ti, ii, ok := locateItem(s, a.ItemID)
		if !ok {
			return s
		}
		t := s.Tracks[ti]
		items := copyItems(t.Items[:ii])
		t.Items = append(items, t.Items[ii+1:]...)
		next := replaceTrack(s, ti, t)
		if next.SelectedItemID == a.ItemID {
			next.SelectedItemID = ""
		}
		return next

	case UpdateItem:
		ti, ii, ok := locateItem(s, a.Item.ID)
		if !ok {
			return s
		}
		return replaceItemAt(s, ti, ii, clampItemRange(a.Item))

	case UpdateItemProperties:
		ti, ii, ok := locateItem(s, a.ItemID)
		if !ok {
			return s
		}
		it := s.Tracks[ti].Items[ii]
		props := a.Properties
		it.Properties = &props
		return replaceItemAt(s, ti, ii, it)

	case SetItemRange:
		ti, ii, ok := locateItem(s, a.ItemID)
		if !ok {
			return s
		}
		it := s.Tracks[ti].Items[ii]
		it.From = a.From
		it.Duration = a.Duration
		return replaceItemAt(s, ti, ii, clampItemRange(it))

	case MoveItemToTrack:
		ti, ii, ok := locateItem(s, a.ItemID)
		if !ok {
			return s
		}
		it := s.Tracks[ti].Items[ii]
		it.From = a.From
		it = clampItemRange(it)
		if s.Tracks[ti].ID == a.ToTrackID {
			// Same track: keep the item's stacking position.
			return replaceItemAt(s, ti, ii, it)
		}
		di := s.TrackIndex(a.ToTrackID)
		if di < 0 {
			return s
		}
		src := s.Tracks[ti]
		items := copyItems(src.Items[:ii])
		src.Items = append(items, src.Items[ii+1:]...)
		dst := s.Tracks[di]
		dst.Items = append(copyItems(dst.Items), it)
		next := replaceTrack(s, ti, src)
		return replaceTrack(next, di, dst)

	case SelectItem:
		if a.ItemID == "" {
			if s.SelectedItemID == "" {
				return s
			}
			next := s
			next.SelectedItemID = ""
			return next
		}
		ti, ii, ok := locateItem(s, a.ItemID)
		if !ok {
			return s
		}
		next := s
		next.SelectedItemID = a.ItemID
		if next.Tracks[ti].Items[ii].Properties == nil {
			it := next.Tracks[ti].Items[ii]
			props := DefaultProperties()
			it.Properties = &props
			next = replaceItemAt(next, ti, ii, it)
		}
		return next

	case SelectTrack:
		if a.TrackID == "" {
			if s.SelectedTrackID == "" {
				return s
			}
			next := s
			next.SelectedTrackID = ""
			return next
		}
		if s.TrackIndex(a.TrackID) < 0 || s.SelectedTrackID == a.TrackID {
			return s
		}
		next := s
		next.SelectedTrackID = a.TrackID
		return next

	case SetCurrentFrame:
		frame := a.Frame
		if frame < 0 {
			frame = 0
		}
		if frame == s.CurrentFrame {
			return s
		}
		next := s
		next.CurrentFrame = frame
		return next

	case SetPlaying:
		if s.Playing == a.Playing {
			return s
		}
		next := s
		next.Playing = a.Playing
		return next

	case SetZoom:
		// Non-positive or NaN zoom would break every pixel mapping; drop it.
		if !(a.Zoom > 0) || a.Zoom == s.Zoom {
			return s
		}
		next := s
		next.Zoom = a.Zoom
		return next

	case AddAsset:
		if a.Asset.ID == "" {
			return s
		}
		next := s
		for i := range s.Assets {
			if s.Assets[i].ID == a.Asset.ID {
				assets := copyAssets(s.Assets)
				assets[i] = a.Asset
				next.Assets = assets
				return next
			}
		}
		next.Assets = append(copyAssets(s.Assets), a.Asset)
		return next

	case RemoveAsset:
		for i := range s.Assets {
			if s.Assets[i].ID == a.AssetID {
				next := s
				assets := copyAssets(s.Assets[:i])
				next.Assets = append(assets, s.Assets[i+1:]...)
				return next
			}
		}
		return s

	case SetCompositionSize:
		if a.Width <= 0 || a.Height <= 0 {
			return s
		}
		if a.Width == s.CompositionWidth && a.Height == s.CompositionHeight {
			return s
		}
		next := s
		next.CompositionWidth = a.Width
		next.CompositionHeight = a.Height
		return next

	case SetDuration:
		frames := a.Frames
		if frames < 1 {
			frames = 1
		}
		if frames == s.DurationFrames {
			return s
		}
		next := s
		next.DurationFrames = frames
		return next

	default:
		return s
	}
}

func copyTracks(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func copyAssets(assets []Asset) []Asset {
	out := make([]Asset, len(assets))
	copy(out, assets)
	return out
}

func clampItemRange(it Item) Item {
	if it.From < 0 {
		it.From = 0
	}
	if it.Duration < 1 {
		it.Duration = 1
	}
	return it
}

func locateItem(s EditorState, itemID string) (trackIdx, itemIdx int, ok bool) {
	if itemID == "" {
		return 0, 0, false
	}
	for ti := range s.Tracks {
		for ii := range s.Tracks[ti].Items {
			if s.Tracks[ti].Items[ii].ID == itemID {
				return ti, ii, true
			}
		}
	}
	return 0, 0, false
}

func replaceTrack(s EditorState, idx int, t Track) EditorState {
	next := s
	tracks := copyTracks(s.Tracks)
	tracks[idx] = t
	next.Tracks = tracks
	return next
}

func replaceItemAt(s EditorState, trackIdx, itemIdx int, it Item) EditorState {
	t := s.Tracks[trackIdx]
	items := copyItems(t.Items)
	items[itemIdx] = it
	t.Items = items
	return replaceTrack(s, trackIdx, t)
}
