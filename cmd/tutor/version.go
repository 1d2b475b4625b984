package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aprenda/tutor"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tutor",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tutor version %s\n", strings.TrimSpace(tutor.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
