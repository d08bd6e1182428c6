// Command hroller computes a rolling-maintenance reboot plan for a
// Ganeti-style cluster snapshot and prints it to stdout.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
