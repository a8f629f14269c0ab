package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/cutroomapp/cutroom/internal/canvas"
	"github.com/cutroomapp/cutroom/internal/dnd"
	"github.com/cutroomapp/cutroom/internal/media"
	"github.com/cutroomapp/cutroom/internal/player"
	"github.com/cutroomapp/cutroom/internal/state"
	"github.com/cutroomapp/cutroom/internal/timeline"
)

// Zoom bounds for the timeline ruler.
const (
	zoomStep = 1.25
	minZoom  = 0.1
	maxZoom  = 8.0
)

// clipboardPrefix marks clipboard text as one of our serialized items, so
// paste can ignore everything else on the system clipboard.
const clipboardPrefix = "cutroom/item:"

type clipboardItem struct {
	Item    state.Item `json:"item"`
	TrackID string     `json:"trackId"`
}

// App struct
type App struct {
	ctx context.Context

	store     *state.Store
	bounds    *canvas.ReportedBounds
	transform *canvas.Controller
	drag      *dnd.Controller
	playback  *player.Bridge
	media     media.Provider
	server    *mediaServer

	configPath string
	configMu   sync.Mutex

	updateInfo *UpdateResponseV1
	testApi    bool

	unsubscribeState func()
}

// NewApp creates a new App application struct
func NewApp() *App {
	configPath := filepath.Join(appDataDir(), "config.json")

	cfg, err := loadOrInitConfig(configPath)
	if err != nil {
		log.Printf("Warning: could not load config, falling back to defaults: %v", err)
		cfg = defaultConfig()
	}

	initial := state.NewEditorState()
	if cfg.CompositionWidth > 0 && cfg.CompositionHeight > 0 {
		initial.CompositionWidth = cfg.CompositionWidth
		initial.CompositionHeight = cfg.CompositionHeight
	}
	if cfg.FPS > 0 {
		initial.FPS = cfg.FPS
	}
	if cfg.DurationFrames > 0 {
		initial.DurationFrames = cfg.DurationFrames
	}

	store := state.NewStore(initial)
	bounds := canvas.NewReportedBounds(nil)

	a := &App{
		store:     store,
		bounds:    bounds,
		transform: canvas.NewController(store, bounds),
		drag: dnd.NewController(store, dnd.Config{
			SnapThreshold:       cfg.SnapThreshold,
			VideoDurationFrames: cfg.DefaultVideoDurationFrames,
			AudioDurationFrames: cfg.DefaultAudioDurationFrames,
			ImageDurationFrames: cfg.DefaultImageDurationFrames,
		}),
		media:      media.NewProvider(),
		server:     newMediaServer(),
		configPath: configPath,
	}
	a.drag.SetSnapEnabled(cfg.SnapEnabled)
	a.playback = player.NewBridge(store, a.emitEvent)
	return a
}

// emitEvent forwards engine events to the webview. Events fired before the
// runtime context exists are dropped.
func (a *App) emitEvent(eventName string, optionalData ...interface{}) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventName, optionalData...)
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	log.Println("Wails App: OnStartup called.")
	log.Println("Wails App: Launching internal media server...")

	if err := a.server.Start(); err != nil {
		// The server failed to even set up its listener. Imported media
		// cannot be played back, but the editor itself still works.
		log.Printf("FATAL: Failed to launch media server: %v", err)
	} else {
		log.Println("Wails App: Media server launch sequence initiated.")
	}

	// Every state change is pushed to the webview; the frontend renders
	// from this stream and never mutates state on its own.
	a.unsubscribeState = a.store.Subscribe(func(s state.EditorState) {
		a.emitEvent("editor:state", s)
	})

	go a.checkForUpdate(AppVersion)
}

func (a *App) shutdown(ctx context.Context) {
	log.Println("Wails App: OnShutdown called.")
	if a.unsubscribeState != nil {
		a.unsubscribeState()
	}
	a.server.Shutdown()
}

func (a *App) CloseApp() {
	runtime.Quit(a.ctx)
}

// GetState returns the current editor snapshot. The webview calls this once
// on mount and then follows "editor:state" events.
func (a *App) GetState() state.EditorState {
	return a.store.State()
}

func (a *App) GetMediaServerPort() int {
	if !a.server.Ready() {
		log.Println("Wails App: GetMediaServerPort called, but server is not (yet) initialized or failed to start. Returning 0.")
		return 0
	}
	return a.server.Port()
}

// --- Asset import ---

// ImportAssets opens a file picker and imports the chosen media files.
func (a *App) ImportAssets() ([]state.Asset, error) {
	paths, err := runtime.OpenMultipleFilesDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Import Media",
		Filters: []runtime.FileFilter{
			{DisplayName: "Media Files", Pattern: "*.mp4;*.mov;*.webm;*.mkv;*.avi;*.m4v;*.wav;*.mp3;*.aac;*.m4a;*.flac;*.ogg;*.png;*.jpg;*.jpeg;*.gif;*.webp;*.bmp"},
			{DisplayName: "All Files", Pattern: "*.*"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open dialog failed: %w", err)
	}
	return a.importPaths(paths), nil
}

// ImportDroppedFiles imports files dropped onto the window from the OS.
func (a *App) ImportDroppedFiles(paths []string) []state.Asset {
	return a.importPaths(paths)
}

// importPaths probes the given files and registers the successful ones as
// assets. Files that cannot be probed are skipped, not fatal.
func (a *App) importPaths(paths []string) []state.Asset {
	if len(paths) == 0 {
		return []state.Asset{}
	}

	fps := a.store.State().FPS
	metas := a.media.ProbeAll(a.ctx, paths, fps)

	assets := make([]state.Asset, 0, len(paths))
	for _, path := range paths {
		meta, ok := metas[path]
		if !ok {
			continue
		}
		id := uuid.NewString()
		asset := state.Asset{
			ID:             id,
			Name:           filepath.Base(path),
			Kind:           meta.Kind,
			Src:            a.server.Register(id, path),
			Thumbnail:      meta.Thumbnail,
			Waveform:       meta.Waveform,
			DurationFrames: meta.DurationFrames,
			CreatedAt:      time.Now(),
		}
		a.store.Dispatch(state.AddAsset{Asset: asset})
		assets = append(assets, asset)
	}
	log.Printf("Info: imported %d of %d files", len(assets), len(paths))
	return assets
}

// RemoveAsset drops an asset from the bin and stops serving its file.
// Items referencing the asset stay on the timeline.
func (a *App) RemoveAsset(assetID string) {
	a.server.Forget(assetID)
	a.store.Dispatch(state.RemoveAsset{AssetID: assetID})
}

// --- Track operations ---

func (a *App) AddTrack(name string) state.Track {
	track := state.NewTrack(name)
	a.store.Dispatch(state.AddTrack{Track: track})
	return track
}

func (a *App) RemoveTrack(trackID string) {
	a.store.Dispatch(state.RemoveTrack{TrackID: trackID})
}

func (a *App) RenameTrack(trackID, name string) {
	a.store.Dispatch(state.RenameTrack{TrackID: trackID, Name: name})
}

func (a *App) SetTrackHidden(trackID string, hidden bool) {
	a.store.Dispatch(state.SetTrackHidden{TrackID: trackID, Hidden: hidden})
}

func (a *App) SetTrackLocked(trackID string, locked bool) {
	a.store.Dispatch(state.SetTrackLocked{TrackID: trackID, Locked: locked})
}

func (a *App) ReorderTracks(fromIndex, toIndex int) {
	a.drag.ReorderTracks(fromIndex, toIndex)
}

// --- Item operations ---

func (a *App) SelectItem(itemID string) {
	a.store.Dispatch(state.SelectItem{ItemID: itemID})
}

func (a *App) SelectTrack(trackID string) {
	a.store.Dispatch(state.SelectTrack{TrackID: trackID})
}

func (a *App) UpdateItem(item state.Item) {
	a.store.Dispatch(state.UpdateItem{Item: item})
}

func (a *App) UpdateItemProperties(itemID string, props state.ItemProperties) {
	a.store.Dispatch(state.UpdateItemProperties{ItemID: itemID, Properties: props})
}

func (a *App) SetItemRange(itemID string, from, duration int) {
	a.store.Dispatch(state.SetItemRange{ItemID: itemID, From: from, Duration: duration})
}

func (a *App) MoveItemToTrack(itemID, toTrackID string, from int) {
	a.store.Dispatch(state.MoveItemToTrack{ItemID: itemID, ToTrackID: toTrackID, From: from})
}

func (a *App) DeleteSelectedItem() {
	s := a.store.State()
	if s.SelectedItemID != "" {
		a.store.Dispatch(state.RemoveItem{ItemID: s.SelectedItemID})
	}
}

// AddTextItem drops a new text layer at the playhead on the given track.
func (a *App) AddTextItem(trackID, text string) {
	if text == "" {
		text = "Title"
	}
	a.insertSynthesized(trackID, state.Item{
		ID:       uuid.NewString(),
		Kind:     state.KindText,
		Duration: dnd.DefaultImageDurationFrames,
		Text:     text,
		Color:    "#ffffff",
		Font:     "Inter",
		FontSize: 40,
	})
}

// AddSolidItem drops a new solid color layer at the playhead.
func (a *App) AddSolidItem(trackID, color string) {
	if color == "" {
		color = "#000000"
	}
	a.insertSynthesized(trackID, state.Item{
		ID:       uuid.NewString(),
		Kind:     state.KindSolid,
		Duration: dnd.DefaultImageDurationFrames,
		Color:    color,
	})
}

func (a *App) insertSynthesized(trackID string, item state.Item) {
	s := a.store.State()
	track, ok := s.TrackByID(trackID)
	if !ok || track.Locked {
		return
	}
	item.From = timeline.FindAvailableSlot(track.Items, item.Duration, s.CurrentFrame)
	a.store.Dispatch(state.AddItem{TrackID: trackID, Item: item})
	a.store.Dispatch(state.SelectItem{ItemID: item.ID})
}

// --- Clipboard ---

// CopySelectedItem serializes the selected item onto the system clipboard.
func (a *App) CopySelectedItem() {
	s := a.store.State()
	item, trackID, ok := s.SelectedItem()
	if !ok {
		return
	}
	payload, err := json.Marshal(clipboardItem{Item: item, TrackID: trackID})
	if err != nil {
		log.Printf("Warning: could not serialize item for clipboard: %v", err)
		return
	}
	if err := runtime.ClipboardSetText(a.ctx, clipboardPrefix+string(payload)); err != nil {
		log.Printf("Warning: clipboard write failed: %v", err)
	}
}

// PasteItem inserts a previously copied item at the playhead. Clipboard
// content that did not come from CopySelectedItem is ignored.
func (a *App) PasteItem() {
	text, err := runtime.ClipboardGetText(a.ctx)
	if err != nil || !strings.HasPrefix(text, clipboardPrefix) {
		return
	}
	var payload clipboardItem
	if err := json.Unmarshal([]byte(strings.TrimPrefix(text, clipboardPrefix)), &payload); err != nil {
		log.Printf("Warning: ignoring malformed clipboard item: %v", err)
		return
	}

	s := a.store.State()
	trackID := s.SelectedTrackID
	if _, ok := s.TrackByID(trackID); !ok {
		trackID = payload.TrackID
	}
	if _, ok := s.TrackByID(trackID); !ok {
		if len(s.Tracks) == 0 {
			return
		}
		trackID = s.Tracks[0].ID
	}
	a.insertCopy(payload.Item, trackID, s.CurrentFrame)
}

// DuplicateSelectedItem copies the selected item onto its own track,
// preferring the slot right after it.
func (a *App) DuplicateSelectedItem() {
	s := a.store.State()
	item, trackID, ok := s.SelectedItem()
	if !ok {
		return
	}
	a.insertCopy(item, trackID, item.End())
}

// insertCopy places a copy of the item on the track near the preferred
// frame and selects it.
func (a *App) insertCopy(item state.Item, trackID string, preferred int) {
	s := a.store.State()
	track, ok := s.TrackByID(trackID)
	if !ok || track.Locked {
		return
	}

	item.ID = uuid.NewString()
	if item.Properties != nil {
		props := *item.Properties
		item.Properties = &props
	}
	item.From = timeline.FindAvailableSlot(track.Items, item.Duration, preferred)

	a.store.Dispatch(state.AddItem{TrackID: trackID, Item: item})
	a.store.Dispatch(state.SelectItem{ItemID: item.ID})
}

// Undo is reserved; the shortcut is captured but edit history does not
// exist yet.
func (a *App) Undo() {}

// Redo is reserved, see Undo.
func (a *App) Redo() {}

// --- Playback ---

func (a *App) Play()           { a.playback.Play() }
func (a *App) Pause()          { a.playback.Pause() }
func (a *App) TogglePlayback() { a.playback.TogglePlayback() }

func (a *App) SeekTo(frame int) { a.playback.SeekTo(frame) }
func (a *App) SeekBy(delta int) { a.playback.SeekBy(delta) }
func (a *App) Scrub(frame int)  { a.playback.Scrub(frame) }

func (a *App) OnPlayerFrame(frame int) { a.playback.OnPlayerFrame(frame) }
func (a *App) OnPlayerPlay()           { a.playback.OnPlayerPlay() }
func (a *App) OnPlayerPause()          { a.playback.OnPlayerPause() }

// --- Zoom ---

func (a *App) ZoomIn()  { a.setZoomClamped(a.store.State().Zoom * zoomStep) }
func (a *App) ZoomOut() { a.setZoomClamped(a.store.State().Zoom / zoomStep) }

func (a *App) SetZoom(zoom float64) { a.setZoomClamped(zoom) }

func (a *App) setZoomClamped(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	a.store.Dispatch(state.SetZoom{Zoom: zoom})
}

// --- Composition ---

func (a *App) SetCompositionSize(width, height int) {
	a.store.Dispatch(state.SetCompositionSize{Width: width, Height: height})
}

func (a *App) SetDuration(frames int) {
	a.store.Dispatch(state.SetDuration{Frames: frames})
}

// --- Canvas interaction ---

func (a *App) CanvasPointerDown(screen canvas.Point, container canvas.Rect, handle string) {
	a.transform.PointerDown(screen, container, handle)
}

func (a *App) CanvasPointerMove(screen canvas.Point, container canvas.Rect) {
	a.transform.PointerMove(screen, container)
}

func (a *App) CanvasPointerUp() {
	a.transform.PointerUp()
}

// ReportItemBounds lets the webview feed back the rendered bounds of an
// item, which beats rederiving them for hit-testing.
func (a *App) ReportItemBounds(itemID string, bounds canvas.RotatedRect) {
	a.bounds.Report(itemID, bounds)
}

func (a *App) ForgetItemBounds(itemID string) {
	a.bounds.Forget(itemID)
}

// --- Timeline drag and drop ---

func (a *App) BeginItemDrag(itemID string, pointerPx float64) {
	a.drag.BeginItemDrag(itemID, pointerPx)
}

func (a *App) DragItemOver(trackID string, pointerPx float64, disableSnap bool) {
	a.drag.DragItemOver(trackID, pointerPx, disableSnap)
}

func (a *App) DropItem(trackID string, pointerPx float64, disableSnap bool) {
	a.drag.DropItem(trackID, pointerPx, disableSnap)
}

func (a *App) BeginResize(itemID, edge string, pointerPx float64) {
	a.drag.BeginResize(itemID, edge, pointerPx)
}

func (a *App) ResizeMove(pointerPx float64) {
	a.drag.ResizeMove(pointerPx)
}

func (a *App) BeginAssetDrag(payloadJSON string) {
	a.drag.BeginAssetDrag(payloadJSON)
}

func (a *App) DropAsset(trackID string, pointerPx float64, payloadJSON string, disableSnap bool) {
	a.drag.DropAsset(trackID, pointerPx, payloadJSON, disableSnap)
}

func (a *App) EndDrag() {
	a.drag.End()
}

func (a *App) SetSnapEnabled(enabled bool) {
	a.drag.SetSnapEnabled(enabled)
}

func (a *App) GetSnapEnabled() bool {
	return a.drag.SnapEnabled()
}

// GetLastSnap tells the webview which guide line to light up.
func (a *App) GetLastSnap() timeline.SnapResult {
	return a.drag.LastSnap()
}
