package store

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON export shape for a stored run.
type ExportData struct {
	Meta   RunMetadata          `json:"meta"`
	Times  []float64            `json:"times"`
	Series map[string][]float64 `json:"series"`
}

// ExportJSON writes a run's metadata and series as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, times []float64, series map[string][]float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: meta, Times: times, Series: series})
}

// ExportJSONFile writes the export to a file, or stdout for an empty
// path.
func ExportJSONFile(path string, meta RunMetadata, times []float64, series map[string][]float64) error {
	if path == "" {
		return ExportJSON(os.Stdout, meta, times, series)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return ExportJSON(f, meta, times, series)
}
