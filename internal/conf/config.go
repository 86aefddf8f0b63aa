// Package conf defines the settings for the dataset pipeline and loads
// them from the configuration file. Settings are passed explicitly into
// every component; nothing reads ambient state after load.
package conf

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/aviaudio/chirpdata/internal/errors"
)

// AudioSettings contains the windowing parameters shared by the
// estimator, the windower, and the storage decoder.
type AudioSettings struct {
	SampleRate    int     // target sample rate in Hz, decoder resamples to this
	WindowSeconds float64 // fixed window length in seconds
	HopSeconds    float64 // stride between overlapping windows in seconds
	UseWindowing  bool    // false emits one entry per clip regardless of duration
}

// DataSettings contains filesystem locations for the corpus.
type DataSettings struct {
	AudioDir    string // root directory of decoded source recordings
	MetadataCSV string // metadata table as exported by the download step
	CatalogDB   string // sqlite clip catalog path
	SplitsDir   string // directory of per-split clip id lists
}

// DatasetSettings contains sampling-time behavior.
type DatasetSettings struct {
	CacheWaveforms bool // cache decoded waveforms by clip id
	BatchWorkers   int  // concurrent materializations per batch, <=1 is sequential
}

// Settings is the root configuration value.
type Settings struct {
	Debug   bool // true to enable debug logging
	Audio   AudioSettings
	Data    DataSettings
	Dataset DatasetSettings
}

// Load reads the configuration file and returns validated settings.
func Load() (*Settings, error) {
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// initViper initializes viper with default values and reads the
// configuration file if one is present.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./conf")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !stderrors.As(err, &configFileNotFoundError) {
			return err
		}
		// No config file is fine, defaults apply.
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("debug", false)
	viper.SetDefault("audio.samplerate", 32000)
	viper.SetDefault("audio.windowseconds", 5.0)
	viper.SetDefault("audio.hopseconds", 2.5)
	viper.SetDefault("audio.usewindowing", true)
	viper.SetDefault("data.audiodir", "data/raw")
	viper.SetDefault("data.metadatacsv", "data/metadata.csv")
	viper.SetDefault("data.catalogdb", "data/catalog.db")
	viper.SetDefault("data.splitsdir", "data/splits")
	viper.SetDefault("dataset.cachewaveforms", false)
	viper.SetDefault("dataset.batchworkers", 1)
}

// ValidateSettings rejects configurations the windowing arithmetic
// cannot operate on. These are fatal, raised once at load time.
func ValidateSettings(s *Settings) error {
	if s.Audio.SampleRate <= 0 {
		return errors.New(errors.ErrInvalidConfig).
			Component("conf").
			Category(errors.CategoryValidation).
			Context("sample_rate", s.Audio.SampleRate).
			Build()
	}
	if s.Audio.WindowSeconds <= 0 {
		return errors.New(errors.ErrInvalidConfig).
			Component("conf").
			Category(errors.CategoryValidation).
			Context("window_seconds", s.Audio.WindowSeconds).
			Build()
	}
	if s.Audio.HopSeconds <= 0 {
		return errors.New(errors.ErrInvalidConfig).
			Component("conf").
			Category(errors.CategoryValidation).
			Context("hop_seconds", s.Audio.HopSeconds).
			Build()
	}
	if s.Dataset.BatchWorkers < 0 {
		return errors.New(errors.ErrInvalidConfig).
			Component("conf").
			Category(errors.CategoryValidation).
			Context("batch_workers", s.Dataset.BatchWorkers).
			Build()
	}
	return nil
}
