package main

import (
	"log"
	"os"
)

// Default values for flags - used when commands are not invoked via CLI (e.g., tests)
var defaultVerbose = false

// Package-level verbose flag; the logging round tripper reads it.
var verbose = &defaultVerbose

func main() {
	if err := RunCLI(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
