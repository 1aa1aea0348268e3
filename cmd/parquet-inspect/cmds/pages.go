package cmds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	goparquet "github.com/pqcore/parquet-core"
)

var (
	pagesRowGroup int
	pagesColumn   string
)

func init() {
	pagesCmd.Flags().IntVar(&pagesRowGroup, "row-group", 0, "row group index to inspect")
	pagesCmd.Flags().StringVar(&pagesColumn, "column", "", "dotted leaf column name to inspect")
	rootCmd.AddCommand(pagesCmd)
}

var pagesCmd = &cobra.Command{
	Use:   "pages file-name.parquet",
	Short: "List the pages of one column chunk: kind, value count, sizes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 || pagesColumn == "" {
			_ = cmd.Usage()
			os.Exit(1)
		}
		if err := runPages(os.Stdout, args[0], pagesRowGroup, pagesColumn); err != nil {
			fatalf("%v", err)
		}
	},
}

func runPages(w io.Writer, path string, rgIdx int, columnName string) error {
	fl, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer fl.Close()

	ctx := context.Background()
	reader, err := goparquet.OpenFileReader(ctx, fl)
	if err != nil {
		return fmt.Errorf("read footer: %w", err)
	}

	col := reader.Schema().ColumnByName(columnName)
	if col == nil {
		return fmt.Errorf("no such column: %s", columnName)
	}
	colIdx := -1
	for i, c := range reader.Schema().Columns() {
		if c == col {
			colIdx = i
			break
		}
	}

	cr, err := reader.ColumnChunkReader(rgIdx, colIdx)
	if err != nil {
		return err
	}

	n := 0
	for {
		page, err := cr.ReadPage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}
		fmt.Fprintf(w, "page %d: kind=%v num_values=%d values_bytes=%d\n", n, page.Kind, page.NumValues, len(page.Values))
		n++
	}
	fmt.Fprintf(w, "%d pages total\n", n)
	return nil
}
