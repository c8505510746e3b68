package hog

import "fmt"

// Gradient selects the orientation range of the gradient.
type Gradient int

const (
	// Unsigned folds orientations into [0,180); opposite directions share a bin.
	Unsigned Gradient = iota
	// Signed keeps the full [0,360) orientation range.
	Signed
)

// Range returns the orientation range covered by the mode, in degrees.
func (g Gradient) Range() int {
	if g == Signed {
		return 360
	}
	return 180
}

func (g Gradient) String() string {
	switch g {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	default:
		return fmt.Sprintf("Gradient(%d)", int(g))
	}
}

// Config holds the extractor parameters. The zero value of every optional
// field selects its default, so Config{BlockSize: 32} is a complete
// configuration. A Config is validated once, by New, and is immutable
// afterwards.
type Config struct {
	// BlockSize is the block side in pixels. Required, at least 2, and a
	// multiple of CellSize.
	BlockSize int

	// CellSize is the cell side in pixels. Defaults to BlockSize/2.
	CellSize int

	// Stride is the pixel distance between consecutive block origins.
	// Must be a multiple of CellSize. Defaults to BlockSize/2.
	Stride int

	// Bins is the number of orientation bins per cell histogram. Must be at
	// least 2 and divide the gradient range evenly. Defaults to 9.
	Bins int

	// Gradient selects unsigned (180°) or signed (360°) orientations.
	Gradient Gradient

	// Norm is the block normalization scheme. Defaults to NormL2Hys.
	Norm Norm
}

// withDefaults fills the optional fields. BlockSize is left untouched so
// that validate can reject a missing value.
func (c Config) withDefaults() Config {
	if c.CellSize == 0 {
		c.CellSize = c.BlockSize / 2
	}
	if c.Stride == 0 {
		c.Stride = c.BlockSize / 2
	}
	if c.Bins == 0 {
		c.Bins = 9
	}
	return c
}

func (c Config) validate() error {
	if c.BlockSize < 2 {
		return configErrorf("blocksize must be at least 2 pixels, got %d", c.BlockSize)
	}
	if c.CellSize < 1 {
		return configErrorf("cellsize must be at least 1 pixel, got %d", c.CellSize)
	}
	// Go's % keeps the sign of the dividend, so a negative stride would slip
	// through the multiple-of-cellsize check and walk the cell grid backwards.
	if c.Stride < 1 {
		return configErrorf("stride must be at least 1 pixel, got %d", c.Stride)
	}
	if c.Bins < 2 {
		return configErrorf("binning must be at least 2, got %d", c.Bins)
	}
	if c.Gradient != Unsigned && c.Gradient != Signed {
		return configErrorf("unrecognized gradient mode %d", int(c.Gradient))
	}
	if !c.Norm.valid() {
		return configErrorf("unrecognized normalization %d", int(c.Norm))
	}
	if c.BlockSize%c.CellSize != 0 {
		return configErrorf("blocksize %d must be a multiple of cellsize %d", c.BlockSize, c.CellSize)
	}
	if c.Stride%c.CellSize != 0 {
		return configErrorf("stride %d must be a multiple of cellsize %d", c.Stride, c.CellSize)
	}
	// The histogram index is floor(orientation/binWidth) with an integer bin
	// width. If Bins does not divide the range, binWidth*Bins undershoots the
	// range and the top orientations would index past the last bin.
	if c.Gradient.Range()%c.Bins != 0 {
		return configErrorf("binning %d must divide the %s gradient range %d evenly",
			c.Bins, c.Gradient, c.Gradient.Range())
	}
	return nil
}
