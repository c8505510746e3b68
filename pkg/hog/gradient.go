package hog

import (
	"image"
	"math"
)

// gradientField holds the per-pixel gradient magnitude and orientation of
// one image. Orientations are degrees in [0,360); magnitudes are >= 0.
// Both grids have the shape of the source image.
type gradientField struct {
	mag [][]float64
	ori [][]float64
}

// newGradientField convolves gray with the 1x3 horizontal and 3x1 vertical
// derivative kernels [-1,0,1] and converts the result to polar form.
// Border pixels use clamped (replicated) edge values.
func newGradientField(gray [][]float64) *gradientField {
	height := len(gray)
	width := len(gray[0])

	mag := make([][]float64, height)
	ori := make([][]float64, height)
	for y := 0; y < height; y++ {
		mag[y] = make([]float64, width)
		ori[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			dx := gray[y][clamp(x+1, 0, width-1)] - gray[y][clamp(x-1, 0, width-1)]
			dy := gray[clamp(y+1, 0, height-1)][x] - gray[clamp(y-1, 0, height-1)][x]

			mag[y][x] = math.Sqrt(dx*dx + dy*dy)

			deg := math.Atan2(dy, dx) * 180 / math.Pi
			if deg < 0 {
				deg += 360
			}
			// Rounding can land a tiny negative angle exactly on 360.
			if deg >= 360 {
				deg -= 360
			}
			ori[y][x] = deg
		}
	}
	return &gradientField{mag: mag, ori: ori}
}

// grayscale converts an image to a float64 luminance grid in [0,255] using
// ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
func grayscale(img image.Image) [][]float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)
			gray[y][x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}
	return gray
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in the derivative convolution.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
