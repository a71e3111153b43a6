// Package texture decodes image files into tightly packed RGBA pixels
// ready for glTexImage2D.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ErrUnsupportedFormat is returned for files no registered decoder accepts.
var ErrUnsupportedFormat = errors.New("texture: unsupported format")

// Extensions lists the file suffixes Load accepts.
var Extensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp"}

// Supported reports whether path has one of the known image extensions.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads and decodes an image file.
func Load(path string) (*image.RGBA, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	return Decode(data, path)
}

// Decode decodes image data. The path is only used in error messages.
// Rows are flipped so the first row of Pix is the bottom of the image,
// matching GL texture coordinates.
func Decode(data []byte, path string) (*image.RGBA, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decoding %s: empty %s image", path, format)
	}
	return ImageToRGBA(img, true), nil
}

// ImageToRGBA copies img into a zero-origin RGBA image, optionally
// flipping it vertically.
func ImageToRGBA(img image.Image, flipY bool) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		dstY := y
		if flipY {
			dstY = h - 1 - y
		}
		for x := 0; x < w; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			rgba.SetRGBA(x, dstY, c)
		}
	}
	return rgba
}
