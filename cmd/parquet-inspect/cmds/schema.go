package cmds

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	goparquet "github.com/pqcore/parquet-core"
)

func init() {
	schemaCmd.Flags().StringVar(&schemaDefinitionFile, "definition", "", "print the schema parsed from a textual schema definition file instead of a Parquet file's footer")
	rootCmd.AddCommand(schemaCmd)
}

var schemaDefinitionFile string

var schemaCmd = &cobra.Command{
	Use:   "schema [file-name.parquet]",
	Short: "Print a Parquet file's flattened leaf schema, or validate a textual schema definition",
	Run: func(cmd *cobra.Command, args []string) {
		if schemaDefinitionFile != "" {
			printParsedSchemaDefinition(schemaDefinitionFile)
			return
		}
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

		printSchemaColumns(reader.Schema().Columns())
	},
}

// printParsedSchemaDefinition parses a schema definition file through the
// same textual DSL as ParseSchemaDefinition and prints its flattened
// leaves, letting a schema be sanity-checked without a Parquet file at
// hand.
func printParsedSchemaDefinition(path string) {
	text, err := os.ReadFile(path)
	if err != nil {
		fatalf("open %s: %v", path, err)
	}
	sd, err := goparquet.ParseSchemaDefinition(string(text))
	if err != nil {
		fatalf("parse schema definition: %v", err)
	}
	printSchemaColumns(sd.Columns())
}

func printSchemaColumns(cols []*goparquet.ColumnDescriptor) {
	for _, col := range cols {
		fmt.Printf("%s:\t%s %s R:%d D:%d\n",
			col.FlatName(), col.Repetition, col.PhysicalType, col.MaxRepetitionLevel, col.MaxDefinitionLevel)
	}
}
