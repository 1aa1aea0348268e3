// Command parquet-inspect reads Parquet files and prints their metadata,
// schema, and page layout without materializing any typed records.
package main

import "github.com/pqcore/parquet-core/cmd/parquet-inspect/cmds"

func main() {
	cmds.Execute()
}
