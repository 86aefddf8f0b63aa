package dataset

import (
	"github.com/aviaudio/chirpdata/internal/errors"
)

// Batch is an aligned group of materialized samples. All slices share
// the same ordering; position i across every field describes the same
// sample.
type Batch struct {
	Waveforms     [][]float32
	Labels        []int
	ClipIDs       []string
	Species       []string
	WindowIndices []int
}

// Len returns the batch size.
func (b *Batch) Len() int {
	return len(b.Waveforms)
}

// Assemble stacks materialized samples into a batch. Every waveform in
// a batch must have identical length; under one windowing configuration
// that holds by construction, so a mismatch means the configuration
// changed between index build and materialization and fails the batch.
func Assemble(samples []Sample) (*Batch, error) {
	batch := &Batch{
		Waveforms:     make([][]float32, len(samples)),
		Labels:        make([]int, len(samples)),
		ClipIDs:       make([]string, len(samples)),
		Species:       make([]string, len(samples)),
		WindowIndices: make([]int, len(samples)),
	}

	for i, sample := range samples {
		if i > 0 && len(sample.Waveform) != len(samples[0].Waveform) {
			return nil, errors.New(errors.ErrShapeMismatch).
				Component("dataset").
				Category(errors.CategorySample).
				ClipContext(sample.ClipID).
				Context("waveform_len", len(sample.Waveform)).
				Context("expected_len", len(samples[0].Waveform)).
				Build()
		}

		batch.Waveforms[i] = sample.Waveform
		batch.Labels[i] = sample.Label
		batch.ClipIDs[i] = sample.ClipID
		batch.Species[i] = sample.Species
		batch.WindowIndices[i] = sample.WindowIndex
	}

	return batch, nil
}
