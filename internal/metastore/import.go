package metastore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Required metadata columns, as written by the corpus download step.
const (
	columnClipID      = "clip_id"
	columnSpeciesCode = "species_code"
	columnFilename    = "filename"
	columnDurationSec = "duration_s"
)

// ImportCSV loads the metadata table into the catalog, upserting by
// clip id. Returns the number of imported rows.
func (s *Store) ImportCSV(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening metadata table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading metadata header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{columnClipID, columnSpeciesCode, columnFilename, columnDurationSec} {
		if _, ok := columns[required]; !ok {
			return 0, fmt.Errorf("metadata table missing column %q", required)
		}
	}

	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("reading metadata row: %w", err)
		}

		duration, err := strconv.ParseFloat(strings.TrimSpace(record[columns[columnDurationSec]]), 64)
		if err != nil {
			return imported, fmt.Errorf("parsing duration for clip %s: %w",
				record[columns[columnClipID]], err)
		}

		clip := &Clip{
			ClipID:      strings.TrimSpace(record[columns[columnClipID]]),
			SpeciesCode: strings.TrimSpace(record[columns[columnSpeciesCode]]),
			Filename:    strings.TrimSpace(record[columns[columnFilename]]),
			DurationSec: duration,
		}
		if err := s.Save(clip); err != nil {
			return imported, err
		}
		imported++
	}

	s.log.Info("metadata imported", "path", path, "clips", imported)
	return imported, nil
}
