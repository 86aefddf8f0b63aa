package windowing

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviaudio/chirpdata/internal/errors"
)

func testParams(t *testing.T) Params {
	t.Helper()
	p, err := NewParams(32000, 5.0, 2.5)
	require.NoError(t, err)
	return p
}

func syntheticWaveform(n int) []float32 {
	rng := rand.New(rand.NewPCG(42, 0))
	w := make([]float32, n)
	for i := range w {
		w[i] = float32(rng.NormFloat64())
	}
	return w
}

func TestNewParams(t *testing.T) {
	p, err := NewParams(32000, 5.0, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 160000, p.WindowSamples)
	assert.Equal(t, 80000, p.HopSamples)
}

func TestNewParamsRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name          string
		sampleRate    int
		windowSeconds float64
		hopSeconds    float64
	}{
		{"zero_sample_rate", 0, 5.0, 2.5},
		{"negative_sample_rate", -32000, 5.0, 2.5},
		{"zero_window", 32000, 0, 2.5},
		{"negative_window", 32000, -5.0, 2.5},
		{"zero_hop", 32000, 5.0, 0},
		{"hop_rounds_to_zero", 32000, 5.0, 0.000001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParams(tt.sampleRate, tt.windowSeconds, tt.hopSeconds)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}
}

// The estimator must agree with the windower for any duration; both
// sides are exercised on the boundary durations where the count
// arithmetic is easiest to get wrong.
func TestCountMatchesWindows(t *testing.T) {
	p := testParams(t)

	durations := []float64{0.5, 3.0, 5.0, 5.2, 6.0, 15.0}
	for _, d := range durations {
		waveform := syntheticWaveform(int(d * 32000))
		windows := Windows(waveform, p)
		assert.Len(t, windows, Count(d, p), "duration %.1fs", d)
	}
}

func TestCountMatchesWindowsExhaustive(t *testing.T) {
	// Small params so every length around the case boundaries is cheap
	// to cover: window=100 samples, hop=40 samples.
	p, err := NewParams(1000, 0.1, 0.04)
	require.NoError(t, err)

	for samples := 0; samples <= 500; samples++ {
		windows := Windows(make([]float32, samples), p)
		count := countSegments(samples, p)
		require.Len(t, windows, count, "%d samples", samples)
		for i, w := range windows {
			require.Len(t, w, p.WindowSamples, "%d samples, window %d", samples, i)
		}
	}
}

func TestShortClipIsZeroPadded(t *testing.T) {
	p := testParams(t)
	waveform := syntheticWaveform(3 * 32000)

	windows := Windows(waveform, p)
	require.Len(t, windows, 1)
	require.Len(t, windows[0], 160000)

	assert.Equal(t, waveform, windows[0][:96000])
	for i := 96000; i < 160000; i++ {
		require.Zero(t, windows[0][i], "sample %d should be silence", i)
	}
}

func TestExactLengthClipIsUnchanged(t *testing.T) {
	p := testParams(t)
	waveform := syntheticWaveform(160000)

	windows := Windows(waveform, p)
	require.Len(t, windows, 1)
	assert.Equal(t, waveform, windows[0])
}

func TestNearExactClipIsCroppedFromFront(t *testing.T) {
	p := testParams(t)
	// 5.2s is within half a hop (1.25s) of the 5s window.
	waveform := syntheticWaveform(int(5.2 * 32000))

	windows := Windows(waveform, p)
	require.Len(t, windows, 1)
	assert.Equal(t, waveform[:160000], windows[0])
}

func TestTailIsNeverDropped(t *testing.T) {
	p := testParams(t)
	waveform := syntheticWaveform(15 * 32000)

	windows := Windows(waveform, p)
	require.NotEmpty(t, windows)

	last := windows[len(windows)-1]
	assert.Equal(t, waveform[len(waveform)-1], last[len(last)-1])
	assert.Equal(t, waveform[len(waveform)-160000:], last)
}

func TestAllWindowsFixedLength(t *testing.T) {
	p := testParams(t)

	for _, d := range []float64{0.5, 3.0, 5.0, 6.0, 7.4, 15.0, 61.3} {
		waveform := syntheticWaveform(int(d * 32000))
		for i, w := range Windows(waveform, p) {
			require.Len(t, w, 160000, "duration %.1fs, window %d", d, i)
		}
	}
}

func TestWindowStride(t *testing.T) {
	p := testParams(t)
	waveform := syntheticWaveform(15 * 32000)

	windows := Windows(waveform, p)
	// 15s at window=5s hop=2.5s: starts at 0, 2.5, 5, 7.5, 10 fit
	// fully, and the last full window already ends at the signal end.
	require.Len(t, windows, 5)
	for i, w := range windows {
		assert.Equal(t, waveform[i*80000:i*80000+160000], w, "window %d", i)
	}
}

func TestCountUsesFloorOfDuration(t *testing.T) {
	p := testParams(t)

	// 4.99997s floors to 159999 samples, still a single padded window.
	assert.Equal(t, 1, Count(4.99997, p))
	assert.Equal(t, 1, Count(0, p))
	assert.Equal(t, 1, Count(5.0, p))
	// Half-hop tolerance: up to 6.25s stays a single window.
	assert.Equal(t, 1, Count(6.25, p))
	assert.Equal(t, 2, Count(6.3, p))
	assert.Equal(t, 5, Count(15.0, p))
}
