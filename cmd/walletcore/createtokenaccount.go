package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var createtokenaccount = cli.Command{
	Name:  "createtokenaccount",
	Usage: "create a token account under an identity",
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
		&cli.StringFlag{
			Name:  "token",
			Usage: "url of the token the account denominates (defaults to the native token)",
		},
	},
	Action: createTokenAccountAction,
}

func createTokenAccountAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	account, res, err := walletSvc.CreateTokenAccount(
		context.Background(),
		ctx.String("identity"), ctx.String("name"), ctx.String("token"),
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
