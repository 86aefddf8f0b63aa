package dataset

import (
	"log/slog"
	"sort"

	"github.com/aviaudio/chirpdata/internal/windowing"
)

// Row is one metadata record for a catalogued clip, as supplied by the
// clip catalog. The index builder treats rows as a read-only ordered
// table.
type Row struct {
	ClipID      string
	SpeciesCode string
	Filename    string
	DurationSec float64
}

// IndexEntry addresses one training window: a clip and the ordinal of
// the window within that clip's segmentation.
type IndexEntry struct {
	ClipID      string
	WindowIndex int
}

// IndexStats summarizes an index build. SkippedFiles counts rows whose
// backing audio was absent from storage; skips are never silent.
type IndexStats struct {
	Rows         int // metadata rows examined
	Clips        int // clips with audio present, contributing entries
	SkippedFiles int // rows skipped because their file was missing
	Windows      int // total index entries
}

// Storage is the read-only audio storage consumed by the pipeline.
type Storage interface {
	Exists(filename string) bool
	ReadWaveform(filename string) ([]float32, error)
}

// BuildIndex scans the metadata rows of one split and produces the flat
// window index. For each row whose file is present it appends one entry
// per predicted window, in row order then window order. The prediction
// comes from the clip's stored duration alone; audio is not decoded
// here. Rows with missing files are skipped whole and counted.
//
// With windowing disabled every present clip contributes exactly one
// entry with window index 0.
func BuildIndex(rows []Row, store Storage, p windowing.Params, useWindowing bool, log *slog.Logger) ([]IndexEntry, IndexStats) {
	var index []IndexEntry
	stats := IndexStats{Rows: len(rows)}

	for _, row := range rows {
		if !store.Exists(row.Filename) {
			stats.SkippedFiles++
			log.Warn("missing audio file, skipping clip",
				"clip_id", row.ClipID, "file", row.Filename)
			continue
		}
		stats.Clips++

		if !useWindowing {
			index = append(index, IndexEntry{ClipID: row.ClipID})
			continue
		}

		n := windowing.Count(row.DurationSec, p)
		for windowIdx := range n {
			index = append(index, IndexEntry{ClipID: row.ClipID, WindowIndex: windowIdx})
		}
	}

	stats.Windows = len(index)
	return index, stats
}

// Vocabulary is the stable species-label to class-id mapping for one
// split. Labels are sorted, so rebuilding from the same rows in any
// order yields identical ids.
type Vocabulary struct {
	classes []string
	codes   map[string]int
}

// BuildVocabulary collects the distinct species codes across all rows,
// including rows whose audio files are missing: the label space
// reflects the catalogued species, not the retrievable ones, so class
// ids stay stable across environments with differing file availability.
func BuildVocabulary(rows []Row) *Vocabulary {
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		seen[row.SpeciesCode] = true
	}

	classes := make([]string, 0, len(seen))
	for species := range seen {
		classes = append(classes, species)
	}
	sort.Strings(classes)

	codes := make(map[string]int, len(classes))
	for i, species := range classes {
		codes[species] = i
	}

	return &Vocabulary{classes: classes, codes: codes}
}

// Code returns the class id for a species label.
func (v *Vocabulary) Code(species string) (int, bool) {
	code, ok := v.codes[species]
	return code, ok
}

// Classes returns the sorted species labels. The returned slice is
// shared; callers must not modify it.
func (v *Vocabulary) Classes() []string {
	return v.classes
}

// NumClasses returns the number of species in the vocabulary.
func (v *Vocabulary) NumClasses() int {
	return len(v.classes)
}
