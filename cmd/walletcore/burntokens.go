package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var burntokens = cli.Command{
	Name:  "burntokens",
	Usage: "burn an amount held by a token account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "account",
			Usage:    "address of the account burning the tokens",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "amount in token units, eg. 1.5",
			Required: true,
		},
	},
	Action: burnTokensAction,
}

func burnTokensAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := walletSvc.BurnTokens(
		context.Background(), ctx.String("account"), ctx.String("amount"),
	)
	if err != nil {
		return err
	}

	printRespJSON(res)

	return nil
}
