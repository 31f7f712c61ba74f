// Command pioneers runs the Paxi Pioneers collection against a local state
// database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pioneers failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
