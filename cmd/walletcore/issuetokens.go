package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var issuetokens = cli.Command{
	Name:  "issuetokens",
	Usage: "mint an amount of a custom token to a recipient",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "token",
			Usage:    "url of the custom token",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "recipient",
			Usage:    "address of the receiving token account",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "amount in token units, eg. 1.5",
			Required: true,
		},
	},
	Action: issueTokensAction,
}

func issueTokensAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := walletSvc.IssueTokens(
		context.Background(),
		ctx.String("token"), ctx.String("recipient"), ctx.String("amount"),
	)
	if err != nil {
		return err
	}

	printRespJSON(res)

	return nil
}
