// Command tabular runs the grouped statistics of the tabular module on data files.
//
//	tabular count trips.csv --x vendor --hue passengers
//	tabular rmsd trips.csv.lz4 --x fare --groups vendor,passengers -o rmsd.xlsx
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
