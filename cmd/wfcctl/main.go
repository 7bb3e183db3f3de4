// Package main is the entry point for the wfcctl CLI binary.
package main

import (
	"os"

	"wfc-portal/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
