package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aviaudio/chirpdata/cmd/importcsv"
	"github.com/aviaudio/chirpdata/cmd/index"
	"github.com/aviaudio/chirpdata/cmd/validate"
	"github.com/aviaudio/chirpdata/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chirpdata",
		Short: "Windowed bioacoustic training datasets",
	}

	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		importcsv.Command(settings),
		index.Command(settings),
		validate.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Flags override the config file; re-validate the merged result.
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags configures the global flags for the root command.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().IntVar(&settings.Audio.SampleRate, "samplerate", viper.GetInt("audio.samplerate"), "Target sample rate in Hz")
	rootCmd.PersistentFlags().Float64VarP(&settings.Audio.WindowSeconds, "window", "w", viper.GetFloat64("audio.windowseconds"), "Window length in seconds")
	rootCmd.PersistentFlags().Float64Var(&settings.Audio.HopSeconds, "hop", viper.GetFloat64("audio.hopseconds"), "Hop between windows in seconds")
	rootCmd.PersistentFlags().StringVar(&settings.Data.AudioDir, "audiodir", viper.GetString("data.audiodir"), "Root directory of source recordings")
	rootCmd.PersistentFlags().StringVar(&settings.Data.CatalogDB, "catalog", viper.GetString("data.catalogdb"), "Path to the sqlite clip catalog")
	rootCmd.PersistentFlags().StringVar(&settings.Data.SplitsDir, "splitsdir", viper.GetString("data.splitsdir"), "Directory of per-split clip id lists")
}
