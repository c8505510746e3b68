// Package export persists the descriptors of a batch run. A FeatureSet pairs
// every input filename with its descriptor; it can be written as JSON (one
// document) or CSV (one row per file: name followed by the components).
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FeatureSet holds the descriptors of one extraction run.
type FeatureSet struct {
	Filenames []string    `json:"filenames"`
	Features  [][]float64 `json:"features"`
}

// Append records one described file.
func (fs *FeatureSet) Append(filename string, descriptor []float64) {
	fs.Filenames = append(fs.Filenames, filename)
	fs.Features = append(fs.Features, descriptor)
}

// Len returns the number of described files.
func (fs *FeatureSet) Len() int {
	return len(fs.Filenames)
}

// Write stores fs at path, choosing the format by extension: ".csv" writes
// CSV, anything else JSON.
func Write(path string, fs *FeatureSet) error {
	if len(fs.Filenames) != len(fs.Features) {
		return fmt.Errorf("feature set is inconsistent: %d filenames, %d features",
			len(fs.Filenames), len(fs.Features))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return WriteCSV(f, fs)
	}
	return WriteJSON(f, fs)
}

// WriteJSON encodes fs as a single JSON document.
func WriteJSON(w io.Writer, fs *FeatureSet) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(fs); err != nil {
		return fmt.Errorf("failed to encode feature set: %w", err)
	}
	return nil
}

// ReadJSON decodes a feature set written by WriteJSON.
func ReadJSON(r io.Reader) (*FeatureSet, error) {
	var fs FeatureSet
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, fmt.Errorf("failed to decode feature set: %w", err)
	}
	if len(fs.Filenames) != len(fs.Features) {
		return nil, fmt.Errorf("feature set is inconsistent: %d filenames, %d features",
			len(fs.Filenames), len(fs.Features))
	}
	return &fs, nil
}

// WriteCSV writes one row per file: the filename followed by the descriptor
// components.
func WriteCSV(w io.Writer, fs *FeatureSet) error {
	cw := csv.NewWriter(w)
	for i, name := range fs.Filenames {
		record := make([]string, 0, 1+len(fs.Features[i]))
		record = append(record, name)
		for _, x := range fs.Features[i] {
			record = append(record, strconv.FormatFloat(x, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
