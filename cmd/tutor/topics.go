package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aprenda/tutor/pkg/lessonspec"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the available grammar topics",
	Run: func(cmd *cobra.Command, args []string) {
		topicsPath, _ := cmd.Flags().GetString("topics")

		var catalog *lessonspec.Catalog
		var err error
		if topicsPath != "" {
			catalog, err = lessonspec.LoadCatalog(topicsPath)
		} else {
			catalog, err = lessonspec.NewCatalog()
		}
		if err != nil {
			fmt.Printf("Error loading topic catalog: %v\n", err)
			os.Exit(1)
		}

		for _, topic := range catalog.Topics() {
			fmt.Printf("%-16s %s (%s)\n", topic.ID, topic.Title, topic.Level)
		}
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.Flags().String("topics", "", "Path to a topic catalog file (default: embedded catalog)")
}
