// Package app provides the main application helpers shared by the command line tools.
package app

import (
	"errors"

	"github.com/retroenv/retrogolib/log"
	"github.com/tic80kit/tic80kit/internal/cli"
	"github.com/tic80kit/tic80kit/internal/config"
	"github.com/tic80kit/tic80kit/internal/fileprocessor"
)

// BuildInfo contains the version information set at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// RunMap runs the map rendering tool with the given arguments and returns the
// process exit code.
func RunMap(args []string, build BuildInfo) int {
	opts, err := cli.ParseMapFlags(args)
	if err != nil {
		return handleParseError(err, opts.Debug, opts.Quiet, "mapify", build)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, "mapify", opts.Quiet, build.Version, build.Commit, build.Date)

	if _, err := fileprocessor.ProcessMap(logger, opts); err != nil {
		logger.Error("Rendering map failed", log.Err(err))
		return 1
	}
	return 0
}

// RunTranspose runs the pattern transposition tool with the given arguments and
// returns the process exit code.
func RunTranspose(args []string, build BuildInfo) int {
	opts, err := cli.ParseTransposeFlags(args)
	if err != nil {
		return handleParseError(err, opts.Debug, opts.Quiet, "transpose", build)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, "transpose", opts.Quiet, build.Version, build.Commit, build.Date)

	if _, err := fileprocessor.ProcessTranspose(logger, opts); err != nil {
		logger.Error("Transposing failed", log.Err(err))
		return 1
	}
	return 0
}

func handleParseError(err error, debug, quiet bool, name string, build BuildInfo) int {
	logger := config.CreateLogger(debug, quiet)
	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) {
		fileprocessor.PrintBanner(logger, name, quiet, build.Version, build.Commit, build.Date)
		if msg := usageErr.Error(); msg != "" {
			logger.Error(msg)
		}
		usageErr.ShowUsage()
	} else {
		logger.Error(err.Error())
	}
	return 1
}
