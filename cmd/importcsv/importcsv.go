// Package importcsv implements the metadata import subcommand.
package importcsv

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aviaudio/chirpdata/internal/conf"
	"github.com/aviaudio/chirpdata/internal/metastore"
)

// Command creates the import command, loading the metadata table into
// the clip catalog.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [metadata.csv]",
		Short: "Import the metadata table into the clip catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := settings.Data.MetadataCSV
			if len(args) == 1 {
				path = args[0]
			}

			store, err := metastore.Open(settings.Data.CatalogDB)
			if err != nil {
				return err
			}
			defer store.Close()

			imported, err := store.ImportCSV(path)
			if err != nil {
				return err
			}

			total, err := store.CountClips()
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d clips from %s (catalog now holds %d)\n", imported, path, total)
			return nil
		},
	}

	return cmd
}
