// Package dataset turns a catalogued audio split into a fixed-shape,
// index-addressable training set. Opening a split builds a flat window
// index and a stable species vocabulary once; samples and batches are
// then materialized lazily by position in that index.
package dataset

import (
	"fmt"
	"log/slog"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/aviaudio/chirpdata/internal/conf"
	"github.com/aviaudio/chirpdata/internal/errors"
	"github.com/aviaudio/chirpdata/internal/logging"
	"github.com/aviaudio/chirpdata/internal/windowing"
)

// Sample is one materialized training example.
type Sample struct {
	Waveform    []float32
	Label       int
	ClipID      string
	Species     string
	WindowIndex int
}

// Dataset is an opened split. The index and vocabulary are immutable
// after Open; sampling is read-only and safe for concurrent use.
type Dataset struct {
	params       windowing.Params
	useWindowing bool
	rows         map[string]Row
	index        []IndexEntry
	stats        IndexStats
	vocab        *Vocabulary
	store        Storage
	cache        *gocache.Cache
	workers      int
	log          *slog.Logger
}

// Open builds the window index and species vocabulary for one split's
// metadata rows and returns the dataset handle. Rows whose audio files
// are missing contribute to the vocabulary but not to the index.
func Open(settings *conf.Settings, rows []Row, store Storage) (*Dataset, error) {
	if err := conf.ValidateSettings(settings); err != nil {
		return nil, err
	}

	params, err := windowing.NewParams(
		settings.Audio.SampleRate,
		settings.Audio.WindowSeconds,
		settings.Audio.HopSeconds,
	)
	if err != nil {
		return nil, err
	}

	log := logging.ForService("dataset")

	index, stats := BuildIndex(rows, store, params, settings.Audio.UseWindowing, log)

	rowsByClip := make(map[string]Row, len(rows))
	for _, row := range rows {
		rowsByClip[row.ClipID] = row
	}

	d := &Dataset{
		params:       params,
		useWindowing: settings.Audio.UseWindowing,
		rows:         rowsByClip,
		index:        index,
		stats:        stats,
		vocab:        BuildVocabulary(rows),
		store:        store,
		workers:      settings.Dataset.BatchWorkers,
		log:          log,
	}
	if settings.Dataset.CacheWaveforms {
		d.cache = gocache.New(gocache.NoExpiration, 0)
	}

	log.Info("split opened",
		"rows", stats.Rows,
		"clips", stats.Clips,
		"skipped_files", stats.SkippedFiles,
		"windows", stats.Windows,
		"species", d.vocab.NumClasses())

	return d, nil
}

// Len returns the number of addressable samples in the split.
func (d *Dataset) Len() int {
	return len(d.index)
}

// Stats returns the index build summary, including the skip count.
func (d *Dataset) Stats() IndexStats {
	return d.stats
}

// Vocabulary returns the split's species vocabulary.
func (d *Dataset) Vocabulary() *Vocabulary {
	return d.vocab
}

// Entry returns the index entry at a position.
func (d *Dataset) Entry(position int) (IndexEntry, error) {
	if position < 0 || position >= len(d.index) {
		return IndexEntry{}, errors.New(errors.ErrWindowOutOfRange).
			Component("dataset").
			Category(errors.CategorySample).
			Context("position", position).
			Context("index_len", len(d.index)).
			Build()
	}
	return d.index[position], nil
}

// Sample materializes the training example at a position in the index:
// the clip is decoded, re-windowed with the same configuration used at
// index-build time, and the addressed window selected.
//
// A window index beyond the clip's actual segmentation means the count
// estimate and the windower have diverged; that is a defect, surfaced
// as ErrWindowOutOfRange and never retried.
func (d *Dataset) Sample(position int) (Sample, error) {
	entry, err := d.Entry(position)
	if err != nil {
		return Sample{}, err
	}
	return d.materialize(entry)
}

func (d *Dataset) materialize(entry IndexEntry) (Sample, error) {
	row, ok := d.rows[entry.ClipID]
	if !ok {
		return Sample{}, errors.New(errors.ErrClipNotFound).
			Component("dataset").
			Category(errors.CategorySample).
			ClipContext(entry.ClipID).
			Build()
	}

	waveform, err := d.loadWaveform(row)
	if err != nil {
		return Sample{}, err
	}

	if d.useWindowing {
		windows := windowing.Windows(waveform, d.params)
		if entry.WindowIndex >= len(windows) {
			return Sample{}, errors.New(errors.ErrWindowOutOfRange).
				Component("dataset").
				Category(errors.CategorySample).
				ClipContext(entry.ClipID).
				Context("window_index", entry.WindowIndex).
				Context("window_count", len(windows)).
				Build()
		}
		waveform = windows[entry.WindowIndex]
	}

	label, ok := d.vocab.Code(row.SpeciesCode)
	if !ok {
		return Sample{}, errors.New(errors.ErrUnknownSpecies).
			Component("dataset").
			Category(errors.CategorySample).
			ClipContext(entry.ClipID).
			Context("species", row.SpeciesCode).
			Build()
	}

	return Sample{
		Waveform:    waveform,
		Label:       label,
		ClipID:      row.ClipID,
		Species:     row.SpeciesCode,
		WindowIndex: entry.WindowIndex,
	}, nil
}

// loadWaveform decodes a clip, consulting the waveform cache when
// enabled. Cached waveforms are shared read-only; windows alias them.
func (d *Dataset) loadWaveform(row Row) ([]float32, error) {
	if d.cache != nil {
		if cached, found := d.cache.Get(row.ClipID); found {
			return cached.([]float32), nil
		}
	}

	waveform, err := d.store.ReadWaveform(row.Filename)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		d.cache.Set(row.ClipID, waveform, gocache.DefaultExpiration)
	}
	return waveform, nil
}

// Batch materializes the samples at the given index positions and
// stacks them. Materialization fans out across the configured worker
// count; assembly waits for every sample before stacking, and the first
// failure fails the whole batch.
func (d *Dataset) Batch(positions []int) (*Batch, error) {
	if len(positions) == 0 {
		return nil, errors.Newf("empty batch requested").
			Component("dataset").
			Category(errors.CategorySample).
			Build()
	}

	samples := make([]Sample, len(positions))
	sampleErrs := make([]error, len(positions))

	workers := d.workers
	if workers <= 1 {
		for i, position := range positions {
			samples[i], sampleErrs[i] = d.Sample(position)
		}
	} else {
		if workers > len(positions) {
			workers = len(positions)
		}

		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					samples[i], sampleErrs[i] = d.Sample(positions[i])
				}
			}()
		}
		for i := range positions {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	for i, err := range sampleErrs {
		if err != nil {
			return nil, fmt.Errorf("materializing batch position %d: %w", positions[i], err)
		}
	}

	return Assemble(samples)
}
