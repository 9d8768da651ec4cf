package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/hooksett/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hooksett",
	Short: "Hooksett inspects and reports tracked variables",
	Long:  `Hooksett routes role-tagged variables through handler chains. This tool scans Go source for tracked local declarations.`,
}

// logger builds the CLI logger honoring --verbose.
func logger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
