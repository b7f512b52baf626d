package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/hledger-fmt/cli"
)

var app struct {
	Version kong.VersionFlag `help:"Show version information"`
	cli.Commands
}

func main() {
	options := []kong.Option{
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("hledger-fmt"),
		kong.Description("An opinionated hledger journal formatter."),
		kong.UsageOnError(),
		kong.Bind(&app.Globals),
	}

	ctx := kong.Parse(&app, append(options, cli.Configuration()...)...)

	err := ctx.Run()

	var cmdErr *cli.CommandError
	if errors.As(err, &cmdErr) {
		os.Exit(cmdErr.ExitCode())
	}
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	version := cli.Version
	if version == "" {
		version = "dev"
	}
	if cli.CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, cli.CommitSHA)
}
