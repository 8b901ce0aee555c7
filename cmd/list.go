package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/user/setlist-archive-cli/archive"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the performances",
	Long:  `List every performance with its venue, song and recording counts. Pending dates are shown at the end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, pending, err := loadArchive()
		if err != nil {
			return err
		}
		writePerformanceTable(cmd.OutOrStdout(), a, pending)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// writePerformanceTable prints one row per tab, newest last.
func writePerformanceTable(w io.Writer, a *archive.Archive, pending []string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Date", "Venue", "Location", "Songs", "Linked", "Videos", "Complete"})

	for _, tab := range a.Tabs(pending) {
		if tab.Disabled {
			tw.AppendRow(table.Row{tab.Date, "(pending)", "", "", "", "", ""})
			continue
		}
		p := a.Performances[tab.Date]
		linked := 0
		for _, item := range p.Setlist {
			if item.VideoID != "" && item.Start != nil {
				linked++
			}
		}
		location := p.City
		if p.State != "" {
			location += ", " + p.State
		}
		location += ", " + p.Country
		complete := ""
		if p.Complete {
			complete = "yes"
		}
		tw.AppendRow(table.Row{
			tab.Date, p.Venue, location,
			strconv.Itoa(len(p.Setlist)), strconv.Itoa(linked), strconv.Itoa(len(p.Videos)),
			complete,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	tw.AppendFooter(table.Row{"", "", "", "", "", "", fmt.Sprintf("%d shows", len(a.Performances))})
	tw.Render()
}
