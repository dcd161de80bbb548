package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sercanarga/pciconf/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pciconf %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
