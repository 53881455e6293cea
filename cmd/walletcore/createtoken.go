package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var createtoken = cli.Command{
	Name:  "createtoken",
	Usage: "issue a new custom token from an identity",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "identity",
			Usage:    "url of the issuing identity",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "name",
			Usage:    "name of the token",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "symbol",
			Usage:    "ticker symbol of the token, eg. MYT",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "precision",
			Usage: "number of decimal places",
			Value: 8,
		},
	},
	Action: createTokenAction,
}

func createTokenAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	token, res, err := walletSvc.CreateCustomToken(
		context.Background(),
		ctx.String("identity"), ctx.String("name"), ctx.String("symbol"),
		ctx.Int("precision"),
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"token":  token,
		"result": res,
	})

	return nil
}
