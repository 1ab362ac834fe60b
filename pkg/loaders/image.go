package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-sppm/pkg/material"
)

// TextureGamma is the display gamma undone when loading image textures. It
// matches the gamma applied when writing renders.
const TextureGamma = 2.0

// LoadImage loads a PNG or JPEG file as a texture with linear colors
func LoadImage(filename string) (*material.ImageTexture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode auto-detects the format from the file header
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	logger.Debugf("Loaded %s texture %s (%dx%d)", format, filename, bounds.Dx(), bounds.Dy())
	return material.NewImageTextureFromImage(img, TextureGamma), nil
}
