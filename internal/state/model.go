package state

import (
	"time"

	"github.com/google/uuid"
)

// Item and asset kinds. Assets only ever carry the media kinds
// (video, audio, image); text and solid items are synthesized on the
// timeline and have no backing asset.
const (
	KindText  = "text"
	KindSolid = "solid"
	KindVideo = "video"
	KindAudio = "audio"
	KindImage = "image"
)

// ItemProperties holds the visual transform of an item on the canvas.
// X and Y are offsets in composition pixels from the composition center.
// Width and Height are scale factors applied to the composition size.
// Rotation is in degrees, Opacity in [0, 1].
type ItemProperties struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
}

// DefaultProperties returns the transform every item starts with: centered,
// unscaled, unrotated, fully opaque.
func DefaultProperties() ItemProperties {
	return ItemProperties{X: 0, Y: 0, Width: 1, Height: 1, Rotation: 0, Opacity: 1}
}

// Item is one clip on a track. The interval it occupies is
// [From, From+Duration) in timeline frames. Which of the optional fields are
// meaningful depends on Kind.
type Item struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"` // one of text, solid, video, audio, image
	From     int    `json:"from"`
	Duration int    `json:"durationInFrames"`

	AssetID string `json:"assetId,omitempty"`
	Src     string `json:"src,omitempty"`

	Text     string  `json:"text,omitempty"`
	Color    string  `json:"color,omitempty"`
	Font     string  `json:"fontFamily,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`

	Volume  float64 `json:"volume,omitempty"`
	FadeIn  int     `json:"fadeInFrames,omitempty"`
	FadeOut int     `json:"fadeOutFrames,omitempty"`

	// Properties is nil until the item is first selected, at which point the
	// reducer fills in DefaultProperties.
	Properties *ItemProperties `json:"properties,omitempty"`
}

// End returns the exclusive end frame of the item.
func (it Item) End() int {
	return it.From + it.Duration
}

// Track is an ordered lane of items. Items may overlap; later items on the
// same track render on top.
type Track struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Items  []Item `json:"items"`
	Hidden bool   `json:"hidden,omitempty"`
	Locked bool   `json:"locked,omitempty"`
}

// NewTrack returns an empty track with a fresh id.
func NewTrack(name string) Track {
	return Track{
		ID:    uuid.NewString(),
		Name:  name,
		Items: []Item{},
	}
}

// Asset is an imported media file. DurationFrames is the probed duration
// converted to timeline frames at import time; zero means the duration could
// not be determined. Items reference assets by id only, so removing an asset
// never touches the timeline.
type Asset struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Kind           string    `json:"kind"` // one of video, audio, image
	Src            string    `json:"src"`
	Thumbnail      string    `json:"thumbnail,omitempty"`
	Waveform       []float64 `json:"waveform,omitempty"`
	DurationFrames int       `json:"durationInFrames,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// EditorState is the complete editor document plus its transient UI fields.
// Values of this type are treated as immutable snapshots: the reducer returns
// fresh copies of anything it changes and shares the rest.
type EditorState struct {
	Tracks            []Track `json:"tracks"`
	SelectedItemID    string  `json:"selectedItemId"`
	SelectedTrackID   string  `json:"selectedTrackId"`
	CurrentFrame      int     `json:"currentFrame"`
	Playing           bool    `json:"playing"`
	Zoom              float64 `json:"zoom"`
	Assets            []Asset `json:"assets"`
	CompositionWidth  int     `json:"compositionWidth"`
	CompositionHeight int     `json:"compositionHeight"`
	FPS               float64 `json:"fps"`
	DurationFrames    int     `json:"durationInFrames"`
}

// Composition defaults for a fresh document.
const (
	DefaultCompositionWidth  = 1920
	DefaultCompositionHeight = 1080
	DefaultFPS               = 30.0
	DefaultDurationFrames    = 900
)

// NewEditorState returns the initial document: two empty tracks, nothing
// selected, playhead at frame 0.
func NewEditorState() EditorState {
	return EditorState{
		Tracks: []Track{
			NewTrack("Track 1"),
			NewTrack("Track 2"),
		},
		Zoom:              1,
		Assets:            []Asset{},
		CompositionWidth:  DefaultCompositionWidth,
		CompositionHeight: DefaultCompositionHeight,
		FPS:               DefaultFPS,
		DurationFrames:    DefaultDurationFrames,
	}
}

// TrackIndex returns the position of the track with the given id, or -1.
func (s EditorState) TrackIndex(trackID string) int {
	for i := range s.Tracks {
		if s.Tracks[i].ID == trackID {
			return i
		}
	}
	return -1
}

// TrackByID looks up a track by id.
func (s EditorState) TrackByID(trackID string) (Track, bool) {
	if i := s.TrackIndex(trackID); i >= 0 {
		return s.Tracks[i], true
	}
	return Track{}, false
}

// ItemByID looks up an item anywhere on the timeline and reports the id of
// the track holding it.
func (s EditorState) ItemByID(itemID string) (Item, string, bool) {
	for ti := range s.Tracks {
		for ii := range s.Tracks[ti].Items {
			if s.Tracks[ti].Items[ii].ID == itemID {
				return s.Tracks[ti].Items[ii], s.Tracks[ti].ID, true
			}
		}
	}
	return Item{}, "", false
}

// AssetByID looks up an asset by id.
func (s EditorState) AssetByID(assetID string) (Asset, bool) {
	for i := range s.Assets {
		if s.Assets[i].ID == assetID {
			return s.Assets[i], true
		}
	}
	return Asset{}, false
}

// SelectedItem returns the currently selected item, if any.
func (s EditorState) SelectedItem() (Item, string, bool) {
	if s.SelectedItemID == "" {
		return Item{}, "", false
	}
	return s.ItemByID(s.SelectedItemID)
}
