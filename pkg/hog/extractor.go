package hog

import (
	"image"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Extractor computes HOG descriptors for windows of an image. Process caches
// one orientation histogram per cell; Retrieve assembles descriptors from the
// cached histograms without touching pixels again.
//
// Process replaces the cache and must not overlap a Retrieve; the extractor
// serializes the two internally. Concurrent Retrieve calls are safe.
type Extractor struct {
	cfg Config

	binWidth   int // degrees per orientation bin
	blockCells int // cells per block side
	strideUnit int // block stride in cell units
	blockLen   int // components per block histogram

	mu    sync.RWMutex
	cells [][][]float64 // [row][col] cell histograms of the last Process
	field *gradientField
	imgW  int
	imgH  int
}

// New validates cfg, fills its defaults, and returns a ready extractor.
// Invalid parameters are reported as *ConfigError.
func New(cfg Config) (*Extractor, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	blockCells := cfg.BlockSize / cfg.CellSize
	return &Extractor{
		cfg:        cfg,
		binWidth:   cfg.Gradient.Range() / cfg.Bins,
		blockCells: blockCells,
		strideUnit: cfg.Stride / cfg.CellSize,
		blockLen:   cfg.Bins * blockCells * blockCells,
	}, nil
}

// Config returns the effective configuration, with defaults applied.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Process derives the gradient field of img, partitions it into the
// non-overlapping cell grid, and caches one histogram per cell. Any
// previously cached image is discarded. The image must be at least
// BlockSize pixels in both dimensions.
//
// This is the only pass over the pixels; its cost is proportional to the
// image area. Cell rows are histogrammed in parallel since distinct cells
// never share output slots.
func (e *Extractor) Process(img image.Image) error {
	if img == nil {
		return inputErrorf("process", "nil image")
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < e.cfg.BlockSize || height < e.cfg.BlockSize {
		return inputErrorf("process", "image %dx%d is smaller than blocksize %d",
			width, height, e.cfg.BlockSize)
	}

	field := newGradientField(grayscale(img))

	rows := height / e.cfg.CellSize
	cols := width / e.cfg.CellSize
	cells := make([][][]float64, rows)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < rows; i++ {
		i := i
		cells[i] = make([][]float64, cols)
		g.Go(func() error {
			for j := 0; j < cols; j++ {
				cells[i][j] = e.cellHistogram(field, i, j)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	e.mu.Lock()
	e.field = field
	e.cells = cells
	e.imgW = width
	e.imgH = height
	e.mu.Unlock()
	return nil
}

// cellHistogram bins the pixels of cell (row, col) into an orientation
// histogram weighted by gradient magnitude. Assignment is hard: each pixel
// votes into exactly the bin floor(orientation/binWidth). In unsigned mode
// the read orientation is folded into [0,180) before binning.
func (e *Extractor) cellHistogram(f *gradientField, row, col int) []float64 {
	hist := make([]float64, e.cfg.Bins)
	y0 := row * e.cfg.CellSize
	x0 := col * e.cfg.CellSize
	if e.cfg.Gradient == Signed {
		for y := y0; y < y0+e.cfg.CellSize; y++ {
			for x := x0; x < x0+e.cfg.CellSize; x++ {
				hist[int(f.ori[y][x])/e.binWidth] += f.mag[y][x]
			}
		}
		return hist
	}
	for y := y0; y < y0+e.cfg.CellSize; y++ {
		for x := x0; x < x0+e.cfg.CellSize; x++ {
			orientation := f.ori[y][x]
			if orientation >= 180 {
				orientation -= 180
			}
			hist[int(orientation)/e.binWidth] += f.mag[y][x]
		}
	}
	return hist
}

// Retrieve returns the HOG descriptor of a pixel-space window of the last
// processed image. The window must be at least BlockSize pixels in both
// dimensions and lie fully inside the image; calling Retrieve before a
// successful Process is an *InputError.
//
// Blocks are scanned row-major from the window origin, stepping by Stride.
// Each block's cell histograms are concatenated row-major into a fresh
// vector, normalized in place, and appended to the descriptor, so the
// returned slice never aliases the cache.
func (e *Extractor) Retrieve(window image.Rectangle) ([]float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.cells == nil {
		return nil, inputErrorf("retrieve", "no processed image")
	}
	width := window.Dx()
	height := window.Dy()
	if width < e.cfg.BlockSize || height < e.cfg.BlockSize {
		return nil, inputErrorf("retrieve", "window %dx%d is smaller than blocksize %d",
			width, height, e.cfg.BlockSize)
	}
	if window.Min.X < 0 || window.Min.Y < 0 || window.Max.X > e.imgW || window.Max.Y > e.imgH {
		return nil, inputErrorf("retrieve", "window %v goes outside the image bounds %dx%d",
			window, e.imgW, e.imgH)
	}

	// Work in cell units from here on.
	cellX := window.Min.X / e.cfg.CellSize
	cellY := window.Min.Y / e.cfg.CellSize
	cellW := width / e.cfg.CellSize
	cellH := height / e.cfg.CellSize

	descriptor := make([]float64, 0, e.DescriptorLen(width, height))
	for blockY := cellY; blockY+e.blockCells <= cellY+cellH; blockY += e.strideUnit {
		for blockX := cellX; blockX+e.blockCells <= cellX+cellW; blockX += e.strideUnit {
			block := make([]float64, 0, e.blockLen)
			for cy := blockY; cy < blockY+e.blockCells; cy++ {
				for cx := blockX; cx < blockX+e.blockCells; cx++ {
					block = append(block, e.cells[cy][cx]...)
				}
			}
			e.cfg.Norm.apply(block)
			descriptor = append(descriptor, block...)
		}
	}
	return descriptor, nil
}

// DescriptorLen returns the number of components Retrieve produces for a
// window of the given pixel size, or 0 if the window cannot hold a block.
func (e *Extractor) DescriptorLen(width, height int) int {
	nx := (width/e.cfg.CellSize-e.blockCells)/e.strideUnit + 1
	ny := (height/e.cfg.CellSize-e.blockCells)/e.strideUnit + 1
	if nx <= 0 || ny <= 0 {
		return 0
	}
	return nx * ny * e.blockLen
}

// Bounds returns the bounds of the last processed image, or an *InputError
// if Process has not succeeded yet.
func (e *Extractor) Bounds() (image.Rectangle, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.cells == nil {
		return image.Rectangle{}, inputErrorf("retrieve", "no processed image")
	}
	return image.Rect(0, 0, e.imgW, e.imgH), nil
}

// Magnitudes returns a copy of the gradient magnitude grid of the last
// processed image. Intended for visualization; the core never reads it back.
func (e *Extractor) Magnitudes() ([][]float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.field == nil {
		return nil, inputErrorf("retrieve", "no processed image")
	}
	return copyGrid(e.field.mag), nil
}

// Orientations returns a copy of the gradient orientation grid of the last
// processed image, in degrees in [0,360).
func (e *Extractor) Orientations() ([][]float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.field == nil {
		return nil, inputErrorf("retrieve", "no processed image")
	}
	return copyGrid(e.field.ori), nil
}

// CellHistograms returns a deep copy of the cached cell histogram grid,
// indexed [row][col][bin]. Intended for visualization.
func (e *Extractor) CellHistograms() ([][][]float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.cells == nil {
		return nil, inputErrorf("retrieve", "no processed image")
	}
	out := make([][][]float64, len(e.cells))
	for i, row := range e.cells {
		out[i] = make([][]float64, len(row))
		for j, hist := range row {
			out[i][j] = append([]float64(nil), hist...)
		}
	}
	return out, nil
}

func copyGrid(src [][]float64) [][]float64 {
	dst := make([][]float64, len(src))
	for i, row := range src {
		dst[i] = append([]float64(nil), row...)
	}
	return dst
}
