package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var addcredits = cli.Command{
	Name:  "addcredits",
	Usage: "buy credits for a recipient at the current oracle rate",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "from",
			Usage:    "address of the paying token account",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "recipient",
			Usage:    "url of the account or key page receiving the credits",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "credits",
			Usage:    "number of credits to buy",
			Required: true,
		},
	},
	Action: addCreditsAction,
}

func addCreditsAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	preview, res, err := walletSvc.AddCredits(
		context.Background(),
		ctx.String("from"), ctx.String("recipient"), ctx.Uint64("credits"),
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"preview": preview,
		"result":  res,
	})

	return nil
}
