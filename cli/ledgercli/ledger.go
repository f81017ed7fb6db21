// Package ledgercli contains the token ledger CLI commands.
package ledgercli

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/tallylabs/tally-go/pkg/config"
	"github.com/tallylabs/tally-go/pkg/encoding/address"
	"github.com/tallylabs/tally-go/pkg/ledger"
	"github.com/tallylabs/tally-go/pkg/ledger/storage"
	"github.com/tallylabs/tally-go/pkg/util"
	"github.com/urfave/cli"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "path to the YAML configuration",
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Usage: "token id (hex or address)",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "decimal token amount",
	}
)

// NewCommands returns the 'ledger' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "ledger",
		Usage: "token accounting operations",
		Subcommands: []cli.Command{
			{
				Name:   "mint",
				Usage:  "credit an account increasing the total supply",
				Action: mint,
				Flags: []cli.Flag{
					configFlag, tokenFlag, amountFlag,
					cli.StringFlag{Name: "to", Usage: "account to credit"},
				},
			},
			{
				Name:   "burn",
				Usage:  "debit an account decreasing the total supply",
				Action: burn,
				Flags: []cli.Flag{
					configFlag, tokenFlag, amountFlag,
					cli.StringFlag{Name: "from", Usage: "account to debit"},
				},
			},
			{
				Name:   "transfer",
				Usage:  "move an exact amount between two accounts",
				Action: transfer,
				Flags: []cli.Flag{
					configFlag, tokenFlag, amountFlag,
					cli.StringFlag{Name: "from", Usage: "account to debit"},
					cli.StringFlag{Name: "to", Usage: "account to credit"},
				},
			},
			{
				Name:   "balance",
				Usage:  "print the balance of an account",
				Action: balance,
				Flags: []cli.Flag{
					configFlag, tokenFlag,
					cli.StringFlag{Name: "owner", Usage: "account to query"},
				},
			},
		},
	}}
}

// parseUint160 accepts both the base58check address form and the raw
// hex form of an id.
func parseUint160(s string) (util.Uint160, error) {
	if u, err := address.StringToUint160(s); err == nil {
		return u, nil
	}
	return util.Uint160DecodeString(s)
}

func getUint160(ctx *cli.Context, flag string) (util.Uint160, error) {
	s := ctx.String(flag)
	if s == "" {
		return util.Uint160{}, fmt.Errorf("missing --%s", flag)
	}
	u, err := parseUint160(s)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return u, nil
}

func getAmount(ctx *cli.Context) (*uint256.Int, error) {
	s := ctx.String("amount")
	if s == "" {
		return nil, fmt.Errorf("missing --amount")
	}
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --amount: %w", err)
	}
	return amount, nil
}

func openLedger(ctx *cli.Context) (*ledger.Ledger, func(), error) {
	cfg, err := config.LoadFile(ctx.String("config"))
	if err != nil {
		return nil, nil, err
	}
	log, err := config.HandleLoggingParams(false, cfg.ApplicationConfiguration)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewStore(cfg.ApplicationConfiguration.DBConfiguration)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		_ = store.Close()
		_ = log.Sync()
	}
	return ledger.New(store, log), closer, nil
}

func printReceipt(ctx *cli.Context, r *ledger.Receipt) {
	fmt.Fprintf(ctx.App.Writer, "%s %s %s id=%s\n", r.Op, r.Token, r.Amount.Dec(), r.ID)
}

func mint(ctx *cli.Context) error {
	token, err := getUint160(ctx, "token")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	to, err := getUint160(ctx, "to")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	amount, err := getAmount(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	l, closer, err := openLedger(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closer()
	r, err := l.Mint(token, to, amount)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	printReceipt(ctx, r)
	return nil
}

func burn(ctx *cli.Context) error {
	token, err := getUint160(ctx, "token")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	from, err := getUint160(ctx, "from")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	amount, err := getAmount(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	l, closer, err := openLedger(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closer()
	r, err := l.Burn(token, from, amount)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	printReceipt(ctx, r)
	return nil
}

func transfer(ctx *cli.Context) error {
	token, err := getUint160(ctx, "token")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	from, err := getUint160(ctx, "from")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	to, err := getUint160(ctx, "to")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	amount, err := getAmount(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	l, closer, err := openLedger(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closer()
	r, err := l.ForceTransfer(token, amount, from, to)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	printReceipt(ctx, r)
	return nil
}

func balance(ctx *cli.Context) error {
	token, err := getUint160(ctx, "token")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	owner, err := getUint160(ctx, "owner")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	l, closer, err := openLedger(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closer()
	fmt.Fprintln(ctx.App.Writer, l.BalanceOf(token, owner).Dec())
	return nil
}
