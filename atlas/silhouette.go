package atlas

import (
	"image"

	"polyatlas/raster"
)

// silhouette is a sprite cropped to its visible pixels.
type silhouette struct {
	crop *raster.Mat
	mask *raster.Mat
	trim image.Rectangle
}

// extractSilhouette crops the sprite and its visibility mask to the bounding
// box of the visible pixels. A sprite without visible pixels yields an empty
// crop.
func extractSilhouette(img *raster.Mat) silhouette {
	mask := visibilityMask(img)
	trim := raster.NonZeroBounds(mask)
	return silhouette{
		crop: raster.Crop(img, trim),
		mask: raster.Crop(mask, trim),
		trim: trim,
	}
}

func visibilityMask(img *raster.Mat) *raster.Mat {
	switch img.Channels {
	case 4:
		return raster.ExtractChannel(img, 3)
	case 2:
		return raster.ExtractChannel(img, 1)
	}
	return raster.Fill(raster.New(img.Width, img.Height, 1), 0xFF)
}

// isRectangle reports whether the cropped sprite is packed as its bounding
// rectangle: it is too small to gain from a tighter outline, or it has no
// transparency to take an outline from.
func isRectangle(crop *raster.Mat, cfg *Config) bool {
	if !crop.HasAlpha() {
		return true
	}
	return crop.Width < cfg.MaxWidth*3/100 && crop.Height < cfg.MaxHeight*3/100
}
