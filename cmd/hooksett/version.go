package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/hooksett"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hooksett",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hooksett version %s\n", strings.TrimSpace(hooksett.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
