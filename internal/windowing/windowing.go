// Package windowing converts variable-length waveforms into fixed-length
// overlapping segments and predicts segment counts from duration alone.
//
// The segment count must be computable cheaply from clip metadata so the
// split index can be built without decoding audio. Both the windower and
// the estimator therefore delegate to one shared count function; neither
// owns the boundary arithmetic.
package windowing

import (
	"math"

	"github.com/aviaudio/chirpdata/internal/errors"
)

// Params holds the windowing configuration resolved to sample counts.
// Construct with NewParams so the rounding from seconds happens in
// exactly one place.
type Params struct {
	SampleRate    int // Hz
	WindowSamples int // fixed segment length
	HopSamples    int // stride between segment starts
}

// NewParams resolves second-based configuration to sample counts.
// Returns a validation error if any resolved value is non-positive.
func NewParams(sampleRate int, windowSeconds, hopSeconds float64) (Params, error) {
	if sampleRate <= 0 {
		return Params{}, errors.New(errors.ErrInvalidConfig).
			Component("windowing").
			Category(errors.CategoryValidation).
			Context("sample_rate", sampleRate).
			Build()
	}

	windowSamples := int(math.Round(windowSeconds * float64(sampleRate)))
	hopSamples := int(math.Round(hopSeconds * float64(sampleRate)))

	if windowSamples <= 0 || hopSamples <= 0 {
		return Params{}, errors.New(errors.ErrInvalidConfig).
			Component("windowing").
			Category(errors.CategoryValidation).
			Context("window_samples", windowSamples).
			Context("hop_samples", hopSamples).
			Build()
	}

	return Params{
		SampleRate:    sampleRate,
		WindowSamples: windowSamples,
		HopSamples:    hopSamples,
	}, nil
}

// countSegments is the single segmentation law shared by Windows and
// Count. Given a total sample count it returns how many fixed-length
// segments the windower emits:
//
//   - shorter than one window: one zero-padded segment
//   - within half a hop of one window: one front-cropped segment
//   - longer: full windows at hop stride, plus a final tail-aligned
//     window whenever the last full window stops short of the end
func countSegments(totalSamples int, p Params) int {
	if totalSamples < p.WindowSamples {
		return 1
	}
	if totalSamples <= p.WindowSamples+p.HopSamples/2 {
		return 1
	}
	// ceil((total-window)/hop) strides past the first window, counting
	// the tail window when the division is inexact.
	return 1 + (totalSamples-p.WindowSamples+p.HopSamples-1)/p.HopSamples
}

// Windows slices a waveform into fixed-length segments of
// p.WindowSamples samples each. Segments other than the padded
// short-clip case alias the input waveform; callers must not mutate it
// while segments are live.
//
// The number of segments comes from countSegments, so the output length
// always equals Count for the equivalent duration.
func Windows(waveform []float32, p Params) [][]float32 {
	audioLength := len(waveform)

	// Shorter than one window: pad the tail with silence.
	if audioLength < p.WindowSamples {
		padded := make([]float32, p.WindowSamples)
		copy(padded, waveform)
		return [][]float32{padded}
	}

	n := countSegments(audioLength, p)
	windows := make([][]float32, 0, n)
	for i := range n {
		start := i * p.HopSamples
		// Only the final segment can overrun the end; it is realigned
		// to cover the last WindowSamples samples so the tail is never
		// dropped. It may overlap its predecessor by more than the hop.
		if start+p.WindowSamples > audioLength {
			start = audioLength - p.WindowSamples
		}
		windows = append(windows, waveform[start:start+p.WindowSamples])
	}

	return windows
}

// Count predicts len(Windows(w, p)) for any waveform w of the given
// duration, without touching audio data. The index builder relies on
// this matching the windower exactly; both call countSegments.
func Count(durationSeconds float64, p Params) int {
	audioSamples := int(math.Floor(durationSeconds * float64(p.SampleRate)))
	if audioSamples < 0 {
		audioSamples = 0
	}
	return countSegments(audioSamples, p)
}
