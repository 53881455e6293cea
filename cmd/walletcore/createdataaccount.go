package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var createdataaccount = cli.Command{
	Name:  "createdataaccount",
	Usage: "create a data account under an identity",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "identity",
			Usage:    "url of the owning identity",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "name",
			Usage:    "name of the new account",
			Required: true,
		},
	},
	Action: createDataAccountAction,
}

func createDataAccountAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	account, res, err := walletSvc.CreateDataAccount(
		context.Background(), ctx.String("identity"), ctx.String("name"),
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"account": account,
		"result":  res,
	})

	return nil
}
