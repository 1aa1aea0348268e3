package cmds

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	goparquet "github.com/pqcore/parquet-core"
)

func init() {
	rootCmd.AddCommand(rowCountCmd)
}

var rowCountCmd = &cobra.Command{
	Use:   "rowcount file-name.parquet",
	Short: "Print the total row count in a Parquet file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			_ = cmd.Usage()
			os.Exit(1)
		}
		fl, err := os.Open(args[0])
		if err != nil {
			fatalf("open %s: %v", args[0], err)
		}
		defer fl.Close()

		reader, err := goparquet.OpenFileReader(context.Background(), fl)
		if err != nil {
			fatalf("read footer: %v", err)
		}

		fmt.Println("total rowcount:", reader.NumRows())
	},
}
