package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/db"
)

var importCmd = &cobra.Command{
	Use:   "import <performances.json>",
	Short: "Store a performances document in the catalog",
	Long: `Store every performance of a performances JSON document in the catalog
database. Performances already in the catalog are replaced with the new
setlist and videos. Dates given with --pending are recorded as known shows
whose recordings are not in yet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pending, _ := cmd.Flags().GetStringSlice("pending")
		note, _ := cmd.Flags().GetString("note")
		drop, _ := cmd.Flags().GetStringSlice("drop-pending")
		if len(args) == 0 && len(pending) == 0 && len(drop) == 0 {
			return fmt.Errorf("nothing to import: give a performances file or --pending dates")
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		if len(args) == 1 {
			a, err := archive.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}
			n, err := db.ImportArchive(database, a)
			if err != nil {
				return fmt.Errorf("failed to import: %w", err)
			}
			fmt.Printf("Imported %d performances from %s\n", n, args[0])
		}

		for _, date := range pending {
			if err := db.AddPendingDate(database, date, note); err != nil {
				return fmt.Errorf("failed to add pending date %s: %w", date, err)
			}
			fmt.Printf("Pending date %s recorded\n", date)
		}
		for _, date := range drop {
			if err := db.DeletePendingDate(database, date); err != nil {
				return fmt.Errorf("failed to remove pending date %s: %w", date, err)
			}
			fmt.Printf("Pending date %s removed\n", date)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringSlice("pending", nil, "Dates (YYYYMMDD) known to have a show without recordings yet")
	importCmd.Flags().String("note", "", "Note stored with the --pending dates")
	importCmd.Flags().StringSlice("drop-pending", nil, "Pending dates to remove")
	rootCmd.AddCommand(importCmd)
}
