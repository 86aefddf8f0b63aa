package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviaudio/chirpdata/internal/errors"
)

func TestAssemble(t *testing.T) {
	samples := []Sample{
		{Waveform: make([]float32, 100), Label: 0, ClipID: "XC1", Species: "amerob", WindowIndex: 0},
		{Waveform: make([]float32, 100), Label: 1, ClipID: "XC2", Species: "norcar", WindowIndex: 2},
		{Waveform: make([]float32, 100), Label: 0, ClipID: "XC1", Species: "amerob", WindowIndex: 1},
	}

	batch, err := Assemble(samples)
	require.NoError(t, err)

	assert.Equal(t, 3, batch.Len())
	assert.Equal(t, []int{0, 1, 0}, batch.Labels)
	assert.Equal(t, []string{"XC1", "XC2", "XC1"}, batch.ClipIDs)
	assert.Equal(t, []string{"amerob", "norcar", "amerob"}, batch.Species)
	assert.Equal(t, []int{0, 2, 1}, batch.WindowIndices)
}

func TestAssembleShapeMismatch(t *testing.T) {
	samples := []Sample{
		{Waveform: make([]float32, 100), ClipID: "XC1"},
		{Waveform: make([]float32, 99), ClipID: "XC2"},
	}

	_, err := Assemble(samples)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrShapeMismatch)
}

func TestAssembleEmpty(t *testing.T) {
	batch, err := Assemble(nil)
	require.NoError(t, err)
	assert.Zero(t, batch.Len())
}
