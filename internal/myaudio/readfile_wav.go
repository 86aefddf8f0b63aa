package myaudio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func readWAVInfo(file *os.File) (AudioInfo, error) {
	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()

	if !decoder.IsValidFile() {
		return AudioInfo{}, errors.New("invalid WAV file format")
	}

	if decoder.BitDepth != 16 && decoder.BitDepth != 24 && decoder.BitDepth != 32 {
		return AudioInfo{}, fmt.Errorf("unsupported bit depth: %d", decoder.BitDepth)
	}

	if decoder.NumChans != 1 && decoder.NumChans != 2 {
		return AudioInfo{}, fmt.Errorf("unsupported number of channels: %d", decoder.NumChans)
	}

	duration, err := decoder.Duration()
	if err != nil {
		return AudioInfo{}, err
	}
	totalSamples := int(duration.Seconds() * float64(decoder.SampleRate))

	return AudioInfo{
		SampleRate:   int(decoder.SampleRate),
		TotalSamples: totalSamples,
		NumChannels:  int(decoder.NumChans),
		BitDepth:     int(decoder.BitDepth),
	}, nil
}

// readWAVWaveform decodes the full PCM payload to mono float32 at the
// file's native rate.
func readWAVWaveform(file *os.File) ([]float32, int, error) {
	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, 0, errors.New("input is not a valid WAV audio file")
	}

	divisor, err := getAudioDivisor(int(decoder.BitDepth))
	if err != nil {
		return nil, 0, err
	}

	var samples []float32

	buf := &audio.IntBuffer{
		Data: make([]int, 65536),
		Format: &audio.Format{
			SampleRate:  int(decoder.SampleRate),
			NumChannels: int(decoder.NumChans),
		},
	}

	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			break
		}

		for _, sample := range buf.Data[:n] {
			samples = append(samples, float32(sample)/divisor)
		}
	}

	samples = downmix(samples, int(decoder.NumChans))

	return samples, int(decoder.SampleRate), nil
}
