package main

import (
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/stevemurr/jsonrecords/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
