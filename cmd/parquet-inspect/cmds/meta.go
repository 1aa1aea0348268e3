package cmds

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	goparquet "github.com/pqcore/parquet-core"
)

func init() {
	rootCmd.AddCommand(metaCmd)
}

var metaCmd = &cobra.Command{
	Use:   "meta file-name.parquet",
	Short: "Print a Parquet file's footer metadata: row groups, columns, codecs, sizes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			_ = cmd.Usage()
			os.Exit(1)
		}
		if err := runMeta(os.Stdout, args[0]); err != nil {
			fatalf("%v", err)
		}
	},
}

func runMeta(w io.Writer, path string) error {
	fl, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer fl.Close()

	reader, err := goparquet.OpenFileReader(context.Background(), fl)
	if err != nil {
		return fmt.Errorf("read footer: %w", err)
	}

	fmt.Fprintf(w, "num rows: %d\n", reader.NumRows())
	fmt.Fprintf(w, "row groups: %d\n", len(reader.RowGroups()))
	for _, kv := range reader.KeyValueMetadata() {
		val := ""
		if kv.Value != nil {
			val = *kv.Value
		}
		fmt.Fprintf(w, "kv: %s = %s\n", kv.Key, val)
	}

	for i, rg := range reader.RowGroups() {
		fmt.Fprintf(w, "\nrow group %d: %d rows, %d bytes\n", i, rg.NumRows, rg.TotalByteSize)
		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "column\ttype\tcodec\tencodings\tnum values\tcompressed\tuncompressed")
		for _, col := range rg.Columns {
			m := col.MetaData
			if m == nil {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%d\t%d\t%d\n",
				joinPath(m.PathInSchema), m.Type, m.Codec, m.Encodings, m.NumValues,
				m.TotalCompressedSize, m.TotalUncompressedSize)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
