package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var newaccount = cli.Command{
	Name:  "newaccount",
	Usage: "generate a key pair and a new lite token account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "display name of the account",
		},
	},
	Action: newAccountAction,
}

func newAccountAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	account, err := walletSvc.CreateLiteAccount(
		context.Background(), ctx.String("name"),
	)
	if err != nil {
		return err
	}

	printRespJSON(account)

	return nil
}
