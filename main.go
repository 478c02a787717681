// Package main implements the combined entry point for the TIC-80 cartridge asset tools
package main

import (
	"fmt"
	"os"

	"github.com/tic80kit/tic80kit/internal/app"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	build := app.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "map":
		os.Exit(app.RunMap(os.Args[2:], build))
	case "transpose":
		os.Exit(app.RunTranspose(os.Args[2:], build))
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("usage: tic80kit <command> [options]\n\n")
	fmt.Println("commands:")
	fmt.Println("  map        render the map of a cartridge as image")
	fmt.Println("  transpose  transpose music patterns of a cartridge")
}
