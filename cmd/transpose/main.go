// Package main implements a music pattern transposer for TIC-80 text cartridges
package main

import (
	"os"

	"github.com/tic80kit/tic80kit/internal/app"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(app.RunTranspose(os.Args[1:], app.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}))
}
