package visual

import (
	"image"
	"image/color"
	"testing"

	"github.com/aclapes/hog/pkg/hog"
)

func grayImage(width, height int, value func(x, y int) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: value(x, y)})
		}
	}
	return img
}

func processed(t *testing.T, img image.Image) *hog.Extractor {
	t.Helper()
	ex, err := hog.New(hog.Config{BlockSize: 16, CellSize: 8, Stride: 8})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := ex.Process(img); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	return ex
}

func TestVectorMask_BeforeProcess(t *testing.T) {
	ex, err := hog.New(hog.Config{BlockSize: 16})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := VectorMask(ex, 1); err == nil {
		t.Error("VectorMask should fail before Process")
	}
}

func TestVectorMask_Dimensions(t *testing.T) {
	ex := processed(t, grayImage(48, 32, func(x, y int) uint8 { return uint8(x * 5) }))

	mask, err := VectorMask(ex, 1)
	if err != nil {
		t.Fatalf("VectorMask failed: %v", err)
	}
	if got := mask.Bounds(); got.Dx() != 48 || got.Dy() != 32 {
		t.Errorf("dimensions: got %dx%d, want 48x32", got.Dx(), got.Dy())
	}
}

func TestVectorMask_EdgeDrawsStrokes(t *testing.T) {
	// A vertical step edge: strokes must appear beyond the grid/background.
	ex := processed(t, grayImage(32, 32, func(x, y int) uint8 {
		if x < 16 {
			return 0
		}
		return 255
	}))

	mask, err := VectorMask(ex, 1)
	if err != nil {
		t.Fatalf("VectorMask failed: %v", err)
	}

	grid := color.RGBA{64, 64, 64, 255}
	background := color.RGBA{}
	strokes := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := mask.RGBAAt(x, y)
			if c != grid && c != background {
				strokes++
			}
		}
	}
	if strokes == 0 {
		t.Error("edge image produced no stroke pixels")
	}
}

func TestVectorMask_FlatImageHasNoStrokes(t *testing.T) {
	ex := processed(t, grayImage(32, 32, func(x, y int) uint8 { return 127 }))

	mask, err := VectorMask(ex, 2)
	if err != nil {
		t.Fatalf("VectorMask failed: %v", err)
	}

	grid := color.RGBA{64, 64, 64, 255}
	background := color.RGBA{}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if c := mask.RGBAAt(x, y); c != grid && c != background {
				t.Fatalf("unexpected stroke pixel at (%d,%d): %v", x, y, c)
			}
		}
	}
}
