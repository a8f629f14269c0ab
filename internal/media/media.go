// Package media implements the asset metadata provider: given a file on
// disk it determines the asset kind and extracts duration, waveform peaks
// and a thumbnail where the format allows. WAV files are decoded directly;
// everything else is delegated to ffprobe/ffmpeg when those binaries exist,
// and degrades to empty metadata when they do not. The engine only ever
// consumes the resulting Meta, never the decoding machinery.
package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cutroomapp/cutroom/internal/state"
)

// Meta is what probing one media file yields. Zero DurationFrames means the
// duration could not be determined and per-kind insertion defaults apply.
// Thumbnail is a data URL; Waveform holds normalized display peaks.
type Meta struct {
	Kind           string    `json:"kind"`
	Thumbnail      string    `json:"thumbnail,omitempty"`
	Waveform       []float64 `json:"waveform,omitempty"`
	DurationFrames int       `json:"durationInFrames,omitempty"`
}

// Provider turns media files into asset metadata. The fps is the
// composition frame rate; durations are converted to frames here, exactly
// once, so the rest of the engine never sees seconds. ProbeAll skips files
// that fail to probe instead of failing the batch.
type Provider interface {
	Probe(ctx context.Context, path string, fps float64) (*Meta, error)
	ProbeAll(ctx context.Context, paths []string, fps float64) map[string]*Meta
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true, ".mkv": true, ".avi": true, ".m4v": true,
}

var audioExtensions = map[string]bool{
	".wav": true, ".mp3": true, ".aac": true, ".m4a": true, ".flac": true, ".ogg": true,
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".bmp": true,
}

// KindForPath maps a file extension to an asset kind. Unsupported types
// return an error so the import can be skipped up front.
func KindForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case videoExtensions[ext]:
		return state.KindVideo, nil
	case audioExtensions[ext]:
		return state.KindAudio, nil
	case imageExtensions[ext]:
		return state.KindImage, nil
	default:
		return "", fmt.Errorf("unsupported media type %q", ext)
	}
}
