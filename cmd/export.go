package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/setlist-archive-cli/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the performances document",
	Long: `Write the performances held in the catalog (or --data) as a performances
JSON document, the same format import reads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		a, _, err := loadArchive()
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := export.WriteJSON(&buf, a); err != nil {
			return err
		}
		if output == "" || output == "-" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		if err := export.WriteFile(output, buf.Bytes()); err != nil {
			return err
		}
		fmt.Printf("Exported %d performances to %s\n", len(a.Performances), output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
