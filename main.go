// ABOUTME: Entry point for the shopctl storefront client
// ABOUTME: Terminal UI and scripting commands for the shop API

package main

import (
	"fmt"
	"os"

	"github.com/dontuty123/shopctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
