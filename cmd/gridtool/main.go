// Command gridtool renders CSV files as bordered text tables.
//
//	gridtool render people.csv --align C
//	gridtool render people.csv --style ascii -o output.txt
//	gridtool csv people.csv
//	gridtool info people.csv
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorText(err))
		os.Exit(1)
	}
}
