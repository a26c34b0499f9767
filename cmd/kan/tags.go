package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/donghojung/kan/internal/kanban"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags used in the boards file, most used first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := a.LoadBoards(); err != nil {
			return err
		}
		return printTags(cmd.OutOrStdout(), a.Boards.CalculateTags())
	},
}

func printTags(w io.Writer, tags []kanban.TagCount) error {
	if len(tags) == 0 {
		_, err := fmt.Fprintln(w, "no tags")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tCARDS")
	for _, tc := range tags {
		fmt.Fprintf(tw, "%s\t%d\n", tc.Tag, tc.Count)
	}
	return tw.Flush()
}
