package cmds

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	goparquet "github.com/pqcore/parquet-core"
	"github.com/pqcore/parquet-core/parquet"
)

var (
	whereColumn string
	whereAfter  string
	whereBefore string
)

func init() {
	whereDateCmd.Flags().StringVar(&whereColumn, "column", "", "dotted INT64-millis timestamp column to filter on")
	whereDateCmd.Flags().StringVar(&whereAfter, "after", "", "only pages that could contain rows at or after this time")
	whereDateCmd.Flags().StringVar(&whereBefore, "before", "", "only pages that could contain rows at or before this time")
	rootCmd.AddCommand(whereDateCmd)
}

var whereDateCmd = &cobra.Command{
	Use:   "where-date file-name.parquet",
	Short: "Use a column's page index to find which pages a date range could touch",
	Long: "where-date reads a column chunk's ColumnIndex/OffsetIndex sidecars, if present, " +
		"and reports which pages might hold rows inside [--after, --before] without decoding any page bodies.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 || whereColumn == "" || (whereAfter == "" && whereBefore == "") {
			_ = cmd.Usage()
			os.Exit(1)
		}
		if err := runWhereDate(os.Stdout, args[0], whereColumn, whereAfter, whereBefore); err != nil {
			fatalf("%v", err)
		}
	},
}

func runWhereDate(w io.Writer, path, columnName, after, before string) error {
	afterMillis, beforeMillis := int64(minInt64), int64(maxInt64)
	if after != "" {
		t, err := dateparse.ParseAny(after)
		if err != nil {
			return fmt.Errorf("--after: %w", err)
		}
		afterMillis = t.UnixMilli()
	}
	if before != "" {
		t, err := dateparse.ParseAny(before)
		if err != nil {
			return fmt.Errorf("--before: %w", err)
		}
		beforeMillis = t.UnixMilli()
	}

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
	if col.PhysicalType != parquet.Type_INT64 {
		return fmt.Errorf("column %s is not INT64, where-date needs an INT64-millis timestamp column", columnName)
	}

	for rgIdx, rg := range reader.RowGroups() {
		for _, chunk := range rg.Columns {
			m := chunk.MetaData
			if m == nil || joinPath(m.PathInSchema) != columnName {
				continue
			}
			if chunk.ColumnIndexOffset == nil || chunk.OffsetIndexOffset == nil {
				fmt.Fprintf(w, "row group %d: no page index for %s, cannot narrow\n", rgIdx, columnName)
				continue
			}
			colIdx, offIdx, err := readIndexSidecars(ctx, fl, chunk)
			if err != nil {
				return err
			}
			pages, err := goparquet.SelectPages(colIdx, offIdx, m.NumValues, func(min, max []byte, nullPage bool, nullCount int64) bool {
				if nullPage || len(min) < 8 || len(max) < 8 {
					return false
				}
				minV := int64(binary.LittleEndian.Uint64(min))
				maxV := int64(binary.LittleEndian.Uint64(max))
				return maxV >= afterMillis && minV <= beforeMillis
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "row group %d: %d of %d pages could match\n", rgIdx, len(pages), len(offIdx.PageLocations))
			for _, p := range pages {
				fmt.Fprintf(w, "  offset=%d length=%d first_row=%d row_count=%d\n", p.Start, p.Length, p.FirstRow, p.RowCount)
			}
		}
	}
	return nil
}

func readIndexSidecars(ctx context.Context, r io.ReadSeeker, chunk *parquet.ColumnChunk) (*parquet.ColumnIndex, *parquet.OffsetIndex, error) {
	if _, err := r.Seek(*chunk.ColumnIndexOffset, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seek to column index: %w", err)
	}
	colIdx := &parquet.ColumnIndex{}
	if err := parquet.ReadThrift(ctx, io.LimitReader(r, int64(*chunk.ColumnIndexLength)), colIdx); err != nil {
		return nil, nil, fmt.Errorf("read column index: %w", err)
	}
	if _, err := r.Seek(*chunk.OffsetIndexOffset, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seek to offset index: %w", err)
	}
	offIdx := &parquet.OffsetIndex{}
	if err := parquet.ReadThrift(ctx, io.LimitReader(r, int64(*chunk.OffsetIndexLength)), offIdx); err != nil {
		return nil, nil, fmt.Errorf("read offset index: %w", err)
	}
	return colIdx, offIdx, nil
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)
