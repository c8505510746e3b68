// Package hog computes Histogram-of-Oriented-Gradients descriptors for
// rectangular windows of an image.
//
// The package separates the expensive per-pixel work from the per-window
// work. Extractor.Process runs once per image: it derives a gradient field,
// tiles the image into non-overlapping cells of CellSize pixels, and caches
// one magnitude-weighted orientation histogram per cell. After that,
// Extractor.Retrieve can be called any number of times; each call walks the
// overlapping blocks inside the requested window, concatenates the cached
// cell histograms, normalizes each block, and returns the concatenated
// descriptor. Retrieval touches only the cells under the window, so
// describing many overlapping windows of one image is cheap.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Orientations are in
// degrees, measured like image.Point angles: 0 points right, 90 points down.
//
// # Thread Safety
//
// An Extractor serializes Process against Retrieve internally. Any number
// of Retrieve calls may run concurrently once Process has completed.
//
// # Error Handling
//
// Invalid configurations are reported once, by New, as *ConfigError.
// Invalid images or windows are reported as *InputError. The package never
// logs and never retries.
//
// Reference: Dalal & Triggs, "Histograms of Oriented Gradients for Human
// Detection", CVPR 2005.
package hog
