package cmd

import (
	"fmt"
	"time"

	"github.com/inovacc/shelfr/internal/model"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the console configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := model.ConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", path)
		fmt.Printf("Server URL:  %s\n", cfg.ServerURL)
		fmt.Printf("Page size:   %d\n", cfg.PageSize)
		fmt.Printf("Timeout:     %s\n", cfg.Timeout)

		return nil
	},
}

var (
	setServer   string
	setPageSize int
	setTimeout  int
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update and persist configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := model.ConfigPath()
		if err != nil {
			return err
		}

		stored, err := model.LoadConfig(path)
		if err != nil {
			return err
		}

		if setServer != "" {
			stored.ServerURL = setServer
		}

		if setPageSize > 0 {
			stored.PageSize = setPageSize
		}

		if setTimeout > 0 {
			stored.Timeout = time.Duration(setTimeout) * time.Second
		}

		if err := stored.Save(path); err != nil {
			return err
		}

		fmt.Printf("Saved %s\n", path)

		return nil
	},
}

func init() {
	configSetCmd.Flags().StringVar(&setServer, "server", "", "Record store base URL")
	configSetCmd.Flags().IntVar(&setPageSize, "page-size", 0, "Rows per list page")
	configSetCmd.Flags().IntVar(&setTimeout, "timeout", 0, "Request timeout in seconds")

	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
