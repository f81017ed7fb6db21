// Package vmcli contains the machine-related CLI commands.
package vmcli

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tallylabs/tally-go/pkg/vm"
	"github.com/urfave/cli"
)

// NewCommands returns the 'vm' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "vm",
		Usage: "evaluate and inspect programs",
		Subcommands: []cli.Command{
			{
				Name:      "run",
				Usage:     "evaluate a program and print the accumulator",
				UsageText: "tally vm run [--hex <program>] [file]",
				Action:    run,
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:  "hex",
						Usage: "hex-encoded binary program instead of a file",
					},
				},
			},
			{
				Name:      "parse",
				Usage:     "print the instructions of a program",
				UsageText: "tally vm parse [--hex <program>] [file]",
				Action:    parse,
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:  "hex",
						Usage: "hex-encoded binary program instead of a file",
					},
				},
			},
		},
	}}
}

// readProgram loads a program from the --hex flag or the file argument.
// JSON files (by extension or leading '[') hold the JSON program form,
// anything else is the binary form.
func readProgram(ctx *cli.Context) (vm.Program, error) {
	if h := ctx.String("hex"); h != "" {
		b, err := hex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("invalid hex program: %w", err)
		}
		return vm.ParseProgram(b)
	}
	if ctx.NArg() != 1 {
		return nil, errors.New("a program file or --hex is required")
	}
	name := ctx.Args().Get(0)
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read program: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasSuffix(name, ".json") || strings.HasPrefix(trimmed, "[") {
		var prog vm.Program
		if err := json.Unmarshal([]byte(trimmed), &prog); err != nil {
			return nil, fmt.Errorf("invalid program: %w", err)
		}
		return prog, nil
	}
	return vm.ParseProgram(data)
}

func run(ctx *cli.Context) error {
	prog, err := readProgram(ctx)
	if err != nil {
		return exitErr(ctx, err)
	}
	res, err := vm.Evaluate(prog)
	if err != nil {
		return exitErr(ctx, err)
	}
	fmt.Fprintln(ctx.App.Writer, res)
	return nil
}

func parse(ctx *cli.Context) error {
	prog, err := readProgram(ctx)
	if err != nil {
		return exitErr(ctx, err)
	}
	for i, instr := range prog {
		fmt.Fprintf(ctx.App.Writer, "%d: %s\n", i, instr)
	}
	return nil
}

// exitErr maps faults to a bare fault code on stderr with a non-zero
// exit status so that scripts can distinguish violation classes.
func exitErr(ctx *cli.Context, err error) error {
	var f *vm.Fault
	if errors.As(err, &f) {
		fmt.Fprintln(ctx.App.Writer, byte(f.Code))
		return cli.NewExitError(f.Error(), 1)
	}
	return cli.NewExitError(err.Error(), 1)
}
