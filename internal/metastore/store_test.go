package metastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviaudio/chirpdata/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndGetClip(t *testing.T) {
	store := openTestStore(t)

	clip := &Clip{
		ClipID:      "XC405825",
		SpeciesCode: "norcar",
		Filename:    "norcar/405825_Mike_Ashby_9s.wav",
		DurationSec: 9.0,
	}
	require.NoError(t, store.Save(clip))

	got, err := store.GetClip("XC405825")
	require.NoError(t, err)
	assert.Equal(t, "norcar", got.SpeciesCode)
	assert.InDelta(t, 9.0, got.DurationSec, 1e-9)
}

func TestSaveUpsertsByClipID(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(&Clip{ClipID: "XC1", SpeciesCode: "amerob", DurationSec: 5}))
	require.NoError(t, store.Save(&Clip{ClipID: "XC1", SpeciesCode: "amerob", DurationSec: 7}))

	count, err := store.CountClips()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := store.GetClip("XC1")
	require.NoError(t, err)
	assert.InDelta(t, 7.0, got.DurationSec, 1e-9)
}

func TestGetClipNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetClip("XC404")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrClipNotFound)
}

func TestClipsForSplitPreservesOrder(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"XC3", "XC1", "XC2"} {
		require.NoError(t, store.Save(&Clip{ClipID: id, SpeciesCode: "sp", DurationSec: 5}))
	}

	clips, err := store.ClipsForSplit([]string{"XC2", "XC3", "XC9", "XC1"})
	require.NoError(t, err)
	require.Len(t, clips, 3)
	assert.Equal(t, "XC2", clips[0].ClipID)
	assert.Equal(t, "XC3", clips[1].ClipID)
	assert.Equal(t, "XC1", clips[2].ClipID)
}

func TestImportCSV(t *testing.T) {
	store := openTestStore(t)

	csvPath := filepath.Join(t.TempDir(), "metadata.csv")
	content := "clip_id,species_code,filename,duration_s\n" +
		"XC364119,amerob,amerob/364119.wav,10.0\n" +
		"XC405825,norcar,norcar/405825.wav,12.5\n" +
		"XC543338,amecro, amecro/543338.wav ,8.25\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	n, err := store.ImportCSV(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := store.GetClip("XC543338")
	require.NoError(t, err)
	assert.Equal(t, "amecro/543338.wav", got.Filename)
	assert.InDelta(t, 8.25, got.DurationSec, 1e-9)
}

func TestImportCSVMissingColumn(t *testing.T) {
	store := openTestStore(t)

	csvPath := filepath.Join(t.TempDir(), "metadata.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("clip_id,species_code\nXC1,sp\n"), 0o644))

	_, err := store.ImportCSV(csvPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration_s")
}

func TestLoadSplitIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.txt")
	require.NoError(t, os.WriteFile(path, []byte("364119\n\n405825\n543338\n"), 0o644))

	ids, err := LoadSplitIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"364119", "405825", "543338"}, ids)
}
