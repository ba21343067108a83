package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	// DownsampleThreshold is the size above which images are down-sampled
	// before upload.
	DownsampleThreshold = 2 * 1024 * 1024

	// maxDimension caps the longest edge of a down-sampled image.
	maxDimension = 1920

	jpegQuality = 80
)

// ShouldDownsample reports whether an upload should be down-sampled before
// hitting storage. Only JPEG and PNG are re-encoded; other image formats
// pass through untouched to preserve their MIME type.
func ShouldDownsample(contentType string, size int64) bool {
	if size <= DownsampleThreshold {
		return false
	}
	return contentType == "image/jpeg" || contentType == "image/png"
}

// Downsample scales an image down so its longest edge is at most 1920px and
// re-encodes it in its original format. Images already within bounds are
// re-encoded as-is (the quality drop alone often recovers most of the size).
func Downsample(data []byte, contentType string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxDimension || h > maxDimension {
		scale := float64(maxDimension) / float64(w)
		if h > w {
			scale = float64(maxDimension) / float64(h)
		}
		dw := int(float64(w) * scale)
		dh := int(float64(h) * scale)

		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		if contentType == "image/png" {
			if err := png.Encode(&buf, img); err != nil {
				return nil, fmt.Errorf("encoding png: %w", err)
			}
			return buf.Bytes(), nil
		}
		fallthrough
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encoding jpeg: %w", err)
		}
		return buf.Bytes(), nil
	}
}
