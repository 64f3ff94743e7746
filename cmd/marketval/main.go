// main is the entry point for the marketval CLI.
package main

import (
	"fmt"
	"os"

	"github.com/valuewise/marketval/cmd"
	"github.com/valuewise/marketval/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Stores are lazily initialized by the commands that need them.
	iocache.CloseStores()

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
