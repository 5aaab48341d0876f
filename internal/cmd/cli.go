package cmd

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/tmplgen/internal/log"
)

// CLI is the root command line of tmplgen. Without arguments it runs generate.
type CLI struct {
	Config  string           `help:"Configuration file (json, yaml or toml)" placeholder:"FILE"`
	Log     log.Config       `embed:"" prefix:"log."`
	Version kong.VersionFlag `help:"Print the version and exit"`

	Generate Generate      `cmd:"" default:"withargs" help:"Generate the template registry (default)"`
	Check    Check         `cmd:"" help:"Verify that the generated registry is up to date"`
	Cfg      ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
