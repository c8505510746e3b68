// Package visual renders a debug overlay of the cached cell histograms: one
// stroke per orientation bin, drawn through the cell center, with length
// proportional to the bin weight. It consumes the extractor's accessor
// snapshots only and plays no part in descriptor computation.
package visual

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/aclapes/hog/pkg/hog"
)

// VectorMask draws the orientation strokes of every cell of the last
// processed image onto a black canvas of the same size. Stroke length is the
// bin weight relative to the cell maximum; stroke color encodes the cell
// maximum relative to the image-wide maximum on a cold-to-warm ramp. Cells
// are outlined with a faint grid. In unsigned mode each stroke spans the
// full cell diameter (an orientation and its opposite are the same bin);
// in signed mode it is a half-ray from the center.
//
// Returns an error if the extractor has no processed image.
func VectorMask(ex *hog.Extractor, thickness int) (*image.RGBA, error) {
	bounds, err := ex.Bounds()
	if err != nil {
		return nil, err
	}
	cells, err := ex.CellHistograms()
	if err != nil {
		return nil, err
	}

	cfg := ex.Config()
	cellSize := cfg.CellSize
	binWidth := float64(cfg.Gradient.Range() / cfg.Bins)
	if thickness < 1 {
		thickness = 1
	}

	mask := image.NewRGBA(bounds)

	// Cell maxima scale stroke lengths; the global maximum scales colors.
	var globalMax float64
	cellMaxs := make([][]float64, len(cells))
	for i, row := range cells {
		cellMaxs[i] = make([]float64, len(row))
		for j, hist := range row {
			for _, w := range hist {
				if w > cellMaxs[i][j] {
					cellMaxs[i][j] = w
				}
			}
			if cellMaxs[i][j] > globalMax {
				globalMax = cellMaxs[i][j]
			}
		}
	}

	gridColor := color.RGBA{64, 64, 64, 255}
	for i, row := range cells {
		for j, hist := range row {
			x0 := j * cellSize
			y0 := i * cellSize
			drawCellBorder(mask, x0, y0, cellSize, gridColor)

			cellMax := cellMaxs[i][j]
			if cellMax == 0 {
				continue
			}
			stroke := rampColor(cellMax / globalMax)

			centerX := float64(x0) + float64(cellSize)/2
			centerY := float64(y0) + float64(cellSize)/2
			for bin, weight := range hist {
				length := (weight / cellMax) * float64(cellSize) / 2
				if length < 1 {
					continue
				}
				angle := float64(bin) * binWidth * math.Pi / 180
				tipX := centerX + math.Cos(angle)*length
				tipY := centerY + math.Sin(angle)*length

				tailX, tailY := centerX, centerY
				if cfg.Gradient == hog.Unsigned {
					tailX = centerX - math.Cos(angle)*length
					tailY = centerY - math.Sin(angle)*length
				}
				drawThickLine(mask, tailX, tailY, tipX, tipY, thickness, stroke)
			}
		}
	}
	return mask, nil
}

// rampColor maps a relative weight in [0,1] to a cold-to-warm color:
// weak cells come out dim blue, the strongest cell bright red.
func rampColor(t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	c := colorful.Hsv(240*(1-t), 1, 0.3+0.7*t)
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}

func drawCellBorder(img *image.RGBA, x0, y0, cellSize int, c color.RGBA) {
	bounds := img.Bounds()
	for x := x0; x < x0+cellSize && x < bounds.Max.X; x++ {
		img.SetRGBA(x, y0, c)
	}
	for y := y0; y < y0+cellSize && y < bounds.Max.Y; y++ {
		img.SetRGBA(x0, y, c)
	}
}

// drawThickLine draws parallel Bresenham lines offset along the
// perpendicular of the segment.
func drawThickLine(img *image.RGBA, x1, y1, x2, y2 float64, thickness int, c color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return
	}

	px := -dy / length
	py := dx / length
	halfThick := float64(thickness-1) / 2

	for t := -halfThick; t <= halfThick+1e-9; t++ {
		drawLine(img,
			int(x1+px*t), int(y1+py*t),
			int(x2+px*t), int(y2+py*t), c)
	}
}

// drawLine draws a line using Bresenham's algorithm, clipped to the image.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	bounds := img.Bounds()
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := -1
	if x1 < x2 {
		sx = 1
	}
	sy := -1
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= bounds.Min.X && x1 < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
