package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, pterm.Red(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
