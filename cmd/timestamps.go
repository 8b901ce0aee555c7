package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/pkg/timestamps"
)

var timestampsCmd = &cobra.Command{
	Use:   "timestamps <description.html> [video-id]",
	Short: "Turn a video description into setlist items",
	Long: `Read a YouTube description saved as HTML and print the setlist items its
timestamp links describe, as JSON ready to paste into a performance. The
video id, when given, is set on every item.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		videoID := ""
		if len(args) == 2 {
			videoID = args[1]
		}
		items, err := timestamps.Parse(f, videoID)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		if items == nil {
			items = []archive.SetlistItem{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	},
}

func init() {
	rootCmd.AddCommand(timestampsCmd)
}
