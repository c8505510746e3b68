// Command hog-visual renders the orientation-arrow overlay of one image's
// cell histograms and saves it as a PNG.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/aclapes/hog/internal/imaging"
	"github.com/aclapes/hog/internal/visual"
	"github.com/aclapes/hog/pkg/hog"
)

func main() {
	var (
		inFile    = flag.String("in", "", "input image (required)")
		outFile   = flag.String("out", "mask.png", "output PNG")
		blockSize = flag.Int("blocksize", 32, "block side in pixels")
		cellSize  = flag.Int("cellsize", 16, "cell side in pixels")
		stride    = flag.Int("stride", 16, "block stride in pixels")
		bins      = flag.Int("bins", 9, "orientation bins per cell")
		signed    = flag.Bool("signed", false, "use the full 360-degree gradient range")
		thickness = flag.Int("thickness", 1, "stroke thickness in pixels")
	)
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	if *inFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	gradient := hog.Unsigned
	if *signed {
		gradient = hog.Signed
	}
	extractor, err := hog.New(hog.Config{
		BlockSize: *blockSize,
		CellSize:  *cellSize,
		Stride:    *stride,
		Bins:      *bins,
		Gradient:  gradient,
	})
	if err != nil {
		log.Fatalf("hog-visual: %v", err)
	}

	img, err := imaging.NewImageCache().Load(*inFile)
	if err != nil {
		log.Fatalf("hog-visual: %v", err)
	}
	if err := extractor.Process(img); err != nil {
		log.Fatalf("hog-visual: %v", err)
	}

	mask, err := visual.VectorMask(extractor, *thickness)
	if err != nil {
		log.Fatalf("hog-visual: %v", err)
	}
	if err := imgio.Save(*outFile, mask, imgio.PNGEncoder()); err != nil {
		log.Fatalf("hog-visual: %v", err)
	}
	log.Printf("wrote %s", *outFile)
}
