package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviaudio/chirpdata/internal/errors"
)

func validSettings() *Settings {
	return &Settings{
		Audio: AudioSettings{
			SampleRate:    32000,
			WindowSeconds: 5.0,
			HopSeconds:    2.5,
			UseWindowing:  true,
		},
		Dataset: DatasetSettings{BatchWorkers: 1},
	}
}

func TestValidateSettings(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero_sample_rate", func(s *Settings) { s.Audio.SampleRate = 0 }},
		{"negative_sample_rate", func(s *Settings) { s.Audio.SampleRate = -1 }},
		{"zero_window", func(s *Settings) { s.Audio.WindowSeconds = 0 }},
		{"negative_hop", func(s *Settings) { s.Audio.HopSeconds = -2.5 }},
		{"negative_workers", func(s *Settings) { s.Dataset.BatchWorkers = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validSettings()
			tt.mutate(settings)

			err := ValidateSettings(settings)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}
}
