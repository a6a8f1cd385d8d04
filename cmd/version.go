package cmd

import (
	"fmt"

	"github.com/inovacc/shelfr/internal/application"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", application.AppName, application.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
