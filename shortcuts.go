// shortcuts.go
package main

// KeyEvent mirrors the keyboard payload the webview forwards for global
// shortcuts. Key carries the DOM KeyboardEvent.key value; CtrlOrMeta is
// Ctrl on Windows/Linux and Cmd on macOS.
type KeyEvent struct {
	Key         string `json:"key"`
	Shift       bool   `json:"shift"`
	CtrlOrMeta  bool   `json:"ctrlOrMeta"`
	InTextInput bool   `json:"inTextInput"`
}

// Shortcut commands. CmdUndo and CmdRedo are resolved so the webview
// suppresses the browser defaults, even though history is not built yet.
const (
	CmdNone        = ""
	CmdDeleteItem  = "deleteItem"
	CmdTogglePlay  = "togglePlay"
	CmdSeekBack    = "seekBack"
	CmdSeekForward = "seekForward"
	CmdCopy        = "copy"
	CmdPaste       = "paste"
	CmdDuplicate   = "duplicate"
	CmdUndo        = "undo"
	CmdRedo        = "redo"
	CmdZoomIn      = "zoomIn"
	CmdZoomOut     = "zoomOut"
)

// resolveShortcut maps a key event to an editor command. Events originating
// from text inputs never resolve, so typing a space in a rename field does
// not toggle playback.
func resolveShortcut(ev KeyEvent) string {
	if ev.InTextInput {
		return CmdNone
	}

	if ev.CtrlOrMeta {
		switch ev.Key {
		case "c", "C":
			return CmdCopy
		case "v", "V":
			return CmdPaste
		case "d", "D":
			return CmdDuplicate
		case "z", "Z":
			if ev.Shift {
				return CmdRedo
			}
			return CmdUndo
		case "=", "+":
			return CmdZoomIn
		case "-", "_":
			return CmdZoomOut
		}
		return CmdNone
	}

	switch ev.Key {
	case "Delete", "Backspace":
		return CmdDeleteItem
	case " ", "Space":
		return CmdTogglePlay
	case "ArrowLeft":
		return CmdSeekBack
	case "ArrowRight":
		return CmdSeekForward
	}
	return CmdNone
}

// HandleKey runs the shortcut for a key event and reports whether it was
// consumed, so the webview knows when to preventDefault.
func (a *App) HandleKey(ev KeyEvent) bool {
	switch resolveShortcut(ev) {
	case CmdDeleteItem:
		a.DeleteSelectedItem()
	case CmdTogglePlay:
		a.playback.TogglePlayback()
	case CmdSeekBack:
		a.playback.SeekBy(-seekStep(ev))
	case CmdSeekForward:
		a.playback.SeekBy(seekStep(ev))
	case CmdCopy:
		a.CopySelectedItem()
	case CmdPaste:
		a.PasteItem()
	case CmdDuplicate:
		a.DuplicateSelectedItem()
	case CmdUndo:
		a.Undo()
	case CmdRedo:
		a.Redo()
	case CmdZoomIn:
		a.ZoomIn()
	case CmdZoomOut:
		a.ZoomOut()
	default:
		return false
	}
	return true
}

// seekStep is one frame normally, ten with Shift held.
func seekStep(ev KeyEvent) int {
	if ev.Shift {
		return 10
	}
	return 1
}
