// Package index implements the split index subcommand.
package index

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aviaudio/chirpdata/internal/conf"
	"github.com/aviaudio/chirpdata/internal/dataset"
	"github.com/aviaudio/chirpdata/internal/metastore"
	"github.com/aviaudio/chirpdata/internal/myaudio"
)

// Command creates the index command, building the window index for one
// split and reporting its composition.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [split]",
		Short: "Build the window index for a split and report its size",
		Long: `Build the window index for a named split (e.g. train, val, test_ood)
from the clip catalog and report window, clip, and skip counts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(settings, args[0])
		},
	}

	return cmd
}

func runIndex(settings *conf.Settings, splitName string) error {
	store, err := metastore.Open(settings.Data.CatalogDB)
	if err != nil {
		return err
	}
	defer store.Close()

	ids, err := metastore.LoadSplitIDs(metastore.SplitPath(settings.Data.SplitsDir, splitName))
	if err != nil {
		return err
	}

	clips, err := store.ClipsForSplit(ids)
	if err != nil {
		return err
	}

	rows := make([]dataset.Row, len(clips))
	for i, clip := range clips {
		rows[i] = dataset.Row{
			ClipID:      clip.ClipID,
			SpeciesCode: clip.SpeciesCode,
			Filename:    clip.Filename,
			DurationSec: clip.DurationSec,
		}
	}

	audioStore := myaudio.NewFileStore(settings.Data.AudioDir, settings.Audio.SampleRate)
	d, err := dataset.Open(settings, rows, audioStore)
	if err != nil {
		return err
	}

	stats := d.Stats()
	fmt.Printf("%s split:\n", splitName)
	fmt.Printf("  Split ids:     %d\n", len(ids))
	fmt.Printf("  Metadata rows: %d\n", stats.Rows)
	fmt.Printf("  Clips indexed: %d\n", stats.Clips)
	fmt.Printf("  Skipped files: %d\n", stats.SkippedFiles)
	fmt.Printf("  Total windows: %d\n", stats.Windows)
	fmt.Printf("  Species (%d):  %s\n", d.Vocabulary().NumClasses(),
		strings.Join(d.Vocabulary().Classes(), ", "))

	return nil
}
