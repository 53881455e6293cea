package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var createkeybook = cli.Command{
	Name:  "createkeybook",
	Usage: "create a new key book under an identity",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "identity",
			Usage:    "url of the owning identity",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "name",
			Usage:    "name of the new key book",
			Required: true,
		},
	},
	Action: createKeyBookAction,
}

func createKeyBookAction(ctx *cli.Context) error {
	walletSvc, cleanup, err := appServices()
	if err != nil {
		return err
	}
	defer cleanup()

	book, res, err := walletSvc.CreateKeyBook(
		context.Background(), ctx.String("identity"), ctx.String("name"),
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"keyBook": book,
		"result":  res,
	})

	return nil
}
