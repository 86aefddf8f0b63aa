package myaudio

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/tphakala/flac"
)

func readFLACInfo(file *os.File) (AudioInfo, error) {
	decoder, err := flac.NewDecoder(file)
	if err != nil {
		return AudioInfo{}, err
	}

	return AudioInfo{
		SampleRate:   decoder.SampleRate,
		TotalSamples: int(decoder.TotalSamples),
		NumChannels:  decoder.NChannels,
		BitDepth:     decoder.BitsPerSample,
	}, nil
}

// readFLACWaveform decodes all FLAC frames to mono float32 at the
// file's native rate.
func readFLACWaveform(file *os.File) ([]float32, int, error) {
	decoder, err := flac.NewDecoder(file)
	if err != nil {
		return nil, 0, err
	}

	divisor, err := getAudioDivisor(decoder.BitsPerSample)
	if err != nil {
		return nil, 0, err
	}

	bytesPerSample := decoder.BitsPerSample / 8
	var samples []float32

	for {
		frame, err := decoder.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, 0, err
		}

		for i := 0; i+bytesPerSample <= len(frame); i += bytesPerSample {
			var sample int32
			switch decoder.BitsPerSample {
			case 16:
				sample = int32(int16(binary.LittleEndian.Uint16(frame[i:])))
			case 24:
				sample = int32(frame[i]) | int32(frame[i+1])<<8 | int32(frame[i+2])<<16
				// Sign-extend from 24 bits.
				if sample&0x800000 != 0 {
					sample |= ^int32(0xFFFFFF)
				}
			case 32:
				sample = int32(binary.LittleEndian.Uint32(frame[i:]))
			}
			samples = append(samples, float32(sample)/divisor)
		}
	}

	samples = downmix(samples, decoder.NChannels)

	return samples, decoder.SampleRate, nil
}
