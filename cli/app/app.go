package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/tallylabs/tally-go/cli/ledgercli"
	"github.com/tallylabs/tally-go/cli/vmcli"
	"github.com/tallylabs/tally-go/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "Tally\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a Tally instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "tally"
	ctl.Version = config.Version
	ctl.Usage = "Accumulator machine and token ledger tooling"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, vmcli.NewCommands()...)
	ctl.Commands = append(ctl.Commands, ledgercli.NewCommands()...)
	return ctl
}
