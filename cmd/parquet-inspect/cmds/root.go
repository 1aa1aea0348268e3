package cmds

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parquet-inspect",
	Short: "parquet-inspect examines Parquet files without decoding them into typed records",
}

// Execute runs the requested subcommand, logging and exiting non-zero on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("parquet-inspect: %v", err)
	}
}
