// Package main implements the entry point for the tasks API server, a small
// HTTP service for creating, reading, updating and deleting tasks.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
