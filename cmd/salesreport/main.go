package main

import (
	"os"

	_ "salesreport/internal/storage/all" // register database backends

	"salesreport/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
