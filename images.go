package newsroom

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1280
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
)

// processImage decodes an uploaded image, downscales it when wider than
// maxImageWidth, and re-encodes it as JPEG for object storage.
func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// imageKey builds the object-storage key for an upload: the current unix
// millisecond timestamp plus the slugified original filename. The timestamp
// prefix keeps keys unique without an existence check.
func imageKey(originalName string, now time.Time) string {
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	slug := Slugify(base)
	if slug == "" {
		slug = "image"
	}
	return fmt.Sprintf("%d-%s.jpg", now.UnixMilli(), slug)
}
