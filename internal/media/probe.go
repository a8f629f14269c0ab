package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cutroomapp/cutroom/internal/state"
	"github.com/cutroomapp/cutroom/internal/timeline"
)

// defaultWaveformBuckets is how many display peaks a probed WAV yields.
const defaultWaveformBuckets = 200

type probeKey struct {
	Path string
	Fps  float64
}

// DefaultProvider probes media files with a mix of native decoding (WAV)
// and ffprobe/ffmpeg. Missing tools degrade probing rather than failing it:
// the file still imports, just without duration or thumbnail.
type DefaultProvider struct {
	ffmpegPath      string
	ffprobePath     string
	waveformBuckets int

	cacheMutex sync.RWMutex
	probeCache map[probeKey]*Meta
}

// NewProvider locates ffmpeg and ffprobe on PATH and verifies they actually
// run. Either binary may be absent; the provider notes it and moves on.
func NewProvider() *DefaultProvider {
	p := &DefaultProvider{
		waveformBuckets: defaultWaveformBuckets,
		probeCache:      make(map[probeKey]*Meta),
	}

	if path, err := exec.LookPath("ffmpeg"); err == nil && binaryWorks(path) {
		p.ffmpegPath = path
	} else {
		log.Printf("Warning: ffmpeg not found, video thumbnails will be unavailable")
	}
	if path, err := exec.LookPath("ffprobe"); err == nil && binaryWorks(path) {
		p.ffprobePath = path
	} else {
		log.Printf("Warning: ffprobe not found, media durations will fall back to defaults")
	}
	return p
}

func binaryWorks(path string) bool {
	if path == "" {
		return false
	}
	cmd := execCommand(context.Background(), path, "-version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

// Probe extracts metadata for one media file. The only hard failures are an
// unreadable file or an unsupported extension; anything the tooling cannot
// deliver is logged and left zero so per-kind defaults apply downstream.
func (p *DefaultProvider) Probe(ctx context.Context, path string, fps float64) (*Meta, error) {
	kind, err := KindForPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot read media file '%s': %w", path, err)
	}

	key := probeKey{Path: path, Fps: fps}
	p.cacheMutex.RLock()
	cached, found := p.probeCache[key]
	p.cacheMutex.RUnlock()
	if found {
		return cached, nil
	}

	meta := &Meta{Kind: kind}
	switch kind {
	case state.KindImage:
		thumb, err := imageThumbnail(path)
		if err != nil {
			log.Printf("Warning: thumbnail generation failed for %s: %v", path, err)
		} else {
			meta.Thumbnail = thumb
		}

	case state.KindAudio:
		probed := false
		if strings.EqualFold(filepath.Ext(path), ".wav") {
			peaks, seconds, err := WavPeaks(path, p.waveformBuckets)
			if err != nil {
				log.Printf("Warning: waveform extraction failed for %s: %v", path, err)
			} else {
				meta.Waveform = peaks
				meta.DurationFrames = timeline.SecondsToFrames(seconds, fps)
				probed = true
			}
		}
		if !probed {
			if seconds, err := p.probeDuration(ctx, path); err != nil {
				log.Printf("Warning: duration probe failed for %s: %v", path, err)
			} else {
				meta.DurationFrames = timeline.SecondsToFrames(seconds, fps)
			}
		}

	case state.KindVideo:
		if seconds, err := p.probeDuration(ctx, path); err != nil {
			log.Printf("Warning: duration probe failed for %s: %v", path, err)
		} else {
			meta.DurationFrames = timeline.SecondsToFrames(seconds, fps)
		}
		if p.ffmpegPath != "" {
			thumb, err := videoThumbnail(ctx, p.ffmpegPath, path)
			if err != nil {
				log.Printf("Warning: thumbnail generation failed for %s: %v", path, err)
			} else {
				meta.Thumbnail = thumb
			}
		}
	}

	// Errors are never cached, so a failed import can simply be retried.
	p.cacheMutex.Lock()
	p.probeCache[key] = meta
	p.cacheMutex.Unlock()
	return meta, nil
}

// probeDuration asks ffprobe for the container duration in seconds.
func (p *DefaultProvider) probeDuration(ctx context.Context, path string) (float64, error) {
	if p.ffprobePath == "" {
		return 0, fmt.Errorf("ffprobe is not available")
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	cmd := execCommand(ctx, p.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w. Output: %s", err, stderr.String())
	}

	text := strings.TrimSpace(stdout.String())
	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse ffprobe duration %q: %w", text, err)
	}
	return seconds, nil
}

// ProbeAll probes several files concurrently, bounded by the CPU count.
// The result map only holds successful probes; per-file failures are
// logged and skipped so one bad file does not sink a whole import.
func (p *DefaultProvider) ProbeAll(ctx context.Context, paths []string, fps float64) map[string]*Meta {
	results := make([]*Meta, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			meta, err := p.Probe(ctx, path, fps)
			if err != nil {
				log.Printf("Warning: skipping %s: %v", path, err)
				return nil
			}
			results[i] = meta
			return nil
		})
	}
	// Per-file failures are swallowed above, so Wait only reports
	// cancellation.
	if err := g.Wait(); err != nil {
		log.Printf("Warning: media probing interrupted: %v", err)
	}

	metas := make(map[string]*Meta, len(paths))
	for i, path := range paths {
		if results[i] != nil {
			metas[path] = results[i]
		}
	}
	return metas
}
