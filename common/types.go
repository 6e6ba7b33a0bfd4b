// package common contains plain data types and math helpers shared across the engine.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// TextureSource describes an image to decode, either from memory or from disk.
type TextureSource struct {
	// Name is an identifier for this texture (e.g., "door/color").
	Name string

	// Path is the file path for textures stored on disk.
	Path string

	// Data contains raw encoded image bytes (PNG/JPEG). Takes precedence over Path.
	Data []byte

	// Width is the texture width in pixels (populated after Decode).
	Width int

	// Height is the texture height in pixels (populated after Decode).
	Height int
}

// Decode decodes the texture to raw RGBA pixel data.
// Supports PNG and JPEG formats.
//
// Returns:
//   - []byte: raw RGBA pixel data (4 bytes per pixel, row-major order)
//   - uint32: texture width in pixels
//   - uint32: texture height in pixels
//   - error: error if decoding fails
func (t *TextureSource) Decode() ([]byte, uint32, uint32, error) {
	if t == nil {
		return nil, 0, 0, fmt.Errorf("texture is nil")
	}

	var img image.Image
	var err error

	switch {
	case len(t.Data) > 0:
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode embedded image: %w", err)
		}
	case t.Path != "":
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return nil, 0, 0, fmt.Errorf("failed to open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	default:
		return nil, 0, 0, fmt.Errorf("texture %q has neither data nor path", t.Name)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	t.Width = bounds.Dx()
	t.Height = bounds.Dy()

	return rgba.Pix, uint32(t.Width), uint32(t.Height), nil
}
