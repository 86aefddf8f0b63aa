// Package validate implements the configuration check subcommand.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaudio/chirpdata/internal/conf"
	"github.com/aviaudio/chirpdata/internal/windowing"
)

// Command creates the validate command, checking the windowing
// configuration and printing the resolved sample counts.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and print resolved windowing parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.ValidateSettings(settings); err != nil {
				return err
			}

			params, err := windowing.NewParams(
				settings.Audio.SampleRate,
				settings.Audio.WindowSeconds,
				settings.Audio.HopSeconds,
			)
			if err != nil {
				return err
			}

			fmt.Printf("Sample rate:  %d Hz\n", params.SampleRate)
			fmt.Printf("Window:       %.3fs (%d samples)\n", settings.Audio.WindowSeconds, params.WindowSamples)
			fmt.Printf("Hop:          %.3fs (%d samples)\n", settings.Audio.HopSeconds, params.HopSamples)
			fmt.Printf("Windowing:    %v\n", settings.Audio.UseWindowing)
			return nil
		},
	}

	return cmd
}
