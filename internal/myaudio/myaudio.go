// Package myaudio decodes catalogued source recordings into mono
// float32 waveforms at the pipeline's configured sample rate. It is the
// storage side of the dataset: files in, samples out, nothing written.
package myaudio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aviaudio/chirpdata/internal/errors"
)

// AudioInfo holds header-level information about an audio file,
// obtained without decoding the sample data.
type AudioInfo struct {
	SampleRate   int
	TotalSamples int // per channel
	NumChannels  int
	BitDepth     int
}

// Duration returns the clip length in seconds.
func (a AudioInfo) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(a.TotalSamples) / float64(a.SampleRate)
}

// FileStore resolves catalogued filenames against a root directory and
// decodes them at a fixed target sample rate. It is safe for concurrent
// use; all state is set at construction.
type FileStore struct {
	root       string
	targetRate int
}

// NewFileStore creates a store rooted at dir decoding to targetRate Hz.
func NewFileStore(dir string, targetRate int) *FileStore {
	return &FileStore{root: dir, targetRate: targetRate}
}

// Path returns the absolute path of a catalogued filename.
func (s *FileStore) Path(filename string) string {
	return filepath.Join(s.root, filename)
}

// Exists reports whether the backing file for a catalogued filename is
// present on storage.
func (s *FileStore) Exists(filename string) bool {
	info, err := os.Stat(s.Path(filename))
	return err == nil && !info.IsDir()
}

// Info reads header information for a catalogued file without decoding
// its sample data.
func (s *FileStore) Info(filename string) (AudioInfo, error) {
	path := s.Path(filename)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return AudioInfo{}, errors.New(errors.ErrFileMissing).
				Component("myaudio").
				Category(errors.CategoryFileIO).
				FileContext(path).
				Build()
		}
		return AudioInfo{}, err
	}
	defer file.Close()

	switch ext(path) {
	case ".wav":
		return readWAVInfo(file)
	case ".flac":
		return readFLACInfo(file)
	default:
		return AudioInfo{}, errors.New(errors.ErrUnsupportedFormat).
			Component("myaudio").
			Category(errors.CategoryAudioDecode).
			FileContext(path).
			Build()
	}
}

// ReadWaveform decodes a catalogued file into a mono float32 waveform
// at the store's target sample rate. Multi-channel audio is downmixed
// by averaging; sample rates other than the target are resampled.
func (s *FileStore) ReadWaveform(filename string) ([]float32, error) {
	path := s.Path(filename)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrFileMissing).
				Component("myaudio").
				Category(errors.CategoryFileIO).
				FileContext(path).
				Build()
		}
		return nil, err
	}
	defer file.Close()

	var samples []float32
	var sourceRate int

	switch ext(path) {
	case ".wav":
		samples, sourceRate, err = readWAVWaveform(file)
	case ".flac":
		samples, sourceRate, err = readFLACWaveform(file)
	default:
		return nil, errors.New(errors.ErrUnsupportedFormat).
			Component("myaudio").
			Category(errors.CategoryAudioDecode).
			FileContext(path).
			Build()
	}
	if err != nil {
		return nil, errors.New(fmt.Errorf("decoding %s: %w", filename, err)).
			Component("myaudio").
			Category(errors.CategoryAudioDecode).
			FileContext(path).
			Build()
	}

	if sourceRate != s.targetRate {
		samples, err = ResampleAudio(samples, sourceRate, s.targetRate)
		if err != nil {
			return nil, err
		}
	}

	return samples, nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Divisor for converting integer PCM samples to float32 in [-1, 1).
func getAudioDivisor(bitDepth int) (float32, error) {
	switch bitDepth {
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	default:
		return 0, fmt.Errorf("unsupported audio file bit depth: %d", bitDepth)
	}
}

// downmix averages interleaved channels into a mono waveform. Mono
// input is returned unchanged.
func downmix(samples []float32, numChannels int) []float32 {
	if numChannels <= 1 {
		return samples
	}

	mono := make([]float32, len(samples)/numChannels)
	for i := range mono {
		var sum float32
		for c := 0; c < numChannels; c++ {
			sum += samples[i*numChannels+c]
		}
		mono[i] = sum / float32(numChannels)
	}
	return mono
}
