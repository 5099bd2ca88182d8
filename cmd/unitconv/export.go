package main

import (
	"unitconv"

	"github.com/spf13/cobra"
)

func newExportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the unit catalog to a SQLite database",
		Long: `Write every category, unit and alias of the built-in table to a SQLite
database, replacing any catalog already stored there. Front ends can
populate their selection widgets from the categories and units tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := requireString(a, "db")
			if err != nil {
				return err
			}
			db, err := unitconv.OpenSQLite(path)
			if err != nil {
				return err
			}
			defer db.Close()

			table := unitconv.DefaultTable()
			if err := table.ExportSQLite(db); err != nil {
				return err
			}
			a.log.WithField("db", path).Infof("exported %d categories", len(table.Categories()))
			return nil
		},
	}
	cmd.Flags().String("db", "unitconv.db", "Path to the SQLite database")
	return cmd
}
