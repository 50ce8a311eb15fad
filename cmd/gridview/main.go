// Package main provides the gridview CLI: a terminal front end for the
// tabular-view engine over JSONL datasets.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
