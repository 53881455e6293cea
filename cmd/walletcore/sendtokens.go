package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var sendtokens = cli.Command{
	Name:  "sendtokens",
	Usage: "transfer tokens between accounts",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "from",
			Usage:    "address of the sending account",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "address of the receiving account",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "amount in token units, eg. 1.5",
			Required: true,
		},
	},
	Action: sendTokensAction,
}

func sendTokensAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := walletSvc.SendTokens(
		context.Background(),
		ctx.String("from"), ctx.String("to"), ctx.String("amount"),
	)
	if err != nil {
		return err
	}

	printRespJSON(res)

	return nil
}
