package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
)

// thumbnailWidth is the target width for generated thumbnails. Height
// follows the source aspect ratio.
const thumbnailWidth = 160

// imageThumbnail decodes an image file and returns a scaled-down PNG as a
// data URL suitable for direct use in the webview.
func imageThumbnail(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image '%s': %w", path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image '%s': %w", path, err)
	}
	return encodeThumbnail(src)
}

// videoThumbnail extracts the first frame of a video with ffmpeg and returns
// it as a scaled PNG data URL.
func videoThumbnail(ctx context.Context, ffmpegPath, path string) (string, error) {
	cmd := execCommand(ctx, ffmpegPath,
		"-nostdin",
		"-v", "error",
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg frame extraction failed for '%s': %w (%s)", path, err, stderr.String())
	}

	src, err := png.Decode(&stdout)
	if err != nil {
		return "", fmt.Errorf("failed to decode extracted frame for '%s': %w", path, err)
	}
	return encodeThumbnail(src)
}

// encodeThumbnail scales the image down to thumbnailWidth and encodes it as
// a base64 PNG data URL. Images already narrower than the target are kept at
// their native size.
func encodeThumbnail(src image.Image) (string, error) {
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return "", fmt.Errorf("image has no pixels")
	}

	dstW := srcW
	if dstW > thumbnailWidth {
		dstW = thumbnailWidth
	}
	dstH := srcH * dstW / srcW
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
