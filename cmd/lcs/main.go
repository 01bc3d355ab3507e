// Command lcs inspects and maintains rule population checkpoints.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lcs:", err)
		os.Exit(1)
	}
}
