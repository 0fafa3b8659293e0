// Command cdtcli drives the CDT engine from YAML scenario files: build an
// incremental triangulation, bulk-load one, or render either to a PNG for
// visual inspection.
package main

import "github.com/latticecdt/cdt/cmd/cdtcli/cmd"

func main() {
	cmd.Execute()
}
