package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:  "balance",
	Usage: "query the token balance of an account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "address of the account to query",
			Required: true,
		},
	},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	amount, err := walletSvc.Balance(context.Background(), ctx.String("address"))
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{"balance": amount})

	return nil
}
